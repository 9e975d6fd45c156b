package sun_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"twentyfour/sun"
)

func TestEventsFor(t *testing.T) {
	pst := time.FixedZone("PST", -8*60*60)
	date := time.Date(2024, 1, 1, 9, 30, 0, 0, pst)
	events := sun.EventsFor(date, 37.3229978, -122.0321823)

	assert.WithinDuration(t, time.Date(2024, 1, 1, 7, 22, 13, 0, pst), events.Sunrise, time.Second)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 17, 0, 33, 0, pst), events.Sunset, time.Second)
	assert.Equal(t, pst, events.Sunrise.Location())

	ordered := []time.Time{
		events.NauticalDawn, events.Dawn, events.Sunrise, events.SolarNoon,
		events.Sunset, events.Dusk, events.NauticalDusk,
	}
	for i, ev := range ordered {
		assert.False(t, ev.IsZero(), "event %d missing", i)
		if i > 0 {
			assert.True(t, ordered[i-1].Before(ev), "event %d out of order", i)
		}
	}
	assert.InDelta(t, (9*time.Hour + 38*time.Minute).Minutes(), events.DayLength().Minutes(), 2)
}

func TestEventsPolarNight(t *testing.T) {
	events := sun.EventsFor(time.Date(2023, 12, 21, 0, 0, 0, 0, time.UTC), 80, 13.4)
	assert.True(t, events.Sunrise.IsZero())
	assert.True(t, events.Sunset.IsZero())
	assert.Zero(t, events.DayLength())
}

func TestSeasons(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	assert.Equal(t, date(2024, 12, 21), sun.SeasonsOf(2024).DecemberSolstice)
	assert.Equal(t, date(1900, 3, 21), sun.SeasonsOf(1900).MarchEquinox)
	assert.Equal(t, date(2022, 6, 21), sun.SeasonsOf(2022).JuneSolstice)
	assert.Equal(t, date(2023, 9, 23), sun.SeasonsOf(2023).SeptemberEquinox)

	name, at := sun.SeasonsOf(2023).Next(date(2023, 9, 23))
	assert.Equal(t, "September equinox", name)
	assert.Equal(t, date(2023, 9, 23), at)

	name, at = sun.SeasonsOf(2023).Next(date(2023, 12, 30))
	assert.Equal(t, "March equinox", name)
	assert.Equal(t, 2024, at.Year())
}

func TestMoonIllumination(t *testing.T) {
	newMoon := time.Date(2000, 1, 6, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 0, sun.MoonIllumination(newMoon), 1e-6)

	fullMoon := newMoon.Add(time.Duration(29.53059 / 2 * float64(24*time.Hour)))
	assert.InDelta(t, 100, sun.MoonIllumination(fullMoon), 0.01)

	quarter := newMoon.Add(time.Duration(29.53059 / 4 * float64(24*time.Hour)))
	assert.InDelta(t, 50, sun.MoonIllumination(quarter), 0.01)
}
