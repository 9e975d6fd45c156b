package sun

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
)

// Events are the named moments of a local day, in the location of the date
// they were computed for. A zero time means the event does not happen that
// day, e.g. there is no sunrise during polar night.
type Events struct {
	Dawn         time.Time
	NauticalDawn time.Time
	Sunrise      time.Time
	SolarNoon    time.Time
	Sunset       time.Time
	Dusk         time.Time
	NauticalDusk time.Time
}

// EventsFor returns the events of the local calendar day of date.
// Sunrise and sunset come from go-sunrise, twilight and noon from suncalc.
func EventsFor(date time.Time, latitude, longitude float64) Events {
	loc := date.Location()
	rise, set := sunrise.SunriseSunset(latitude, longitude, date.Year(), date.Month(), date.Day())

	// suncalc works on the UTC day around the instant it is given, local noon
	// keeps that day aligned with the local one.
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)
	times := suncalc.GetTimes(noon, latitude, longitude)
	pick := func(name suncalc.DayTimeName) time.Time {
		t, ok := times[name]
		if !ok || !sameDay(t.Value.In(loc), noon) {
			return time.Time{}
		}
		return t.Value.In(loc)
	}

	return Events{
		Dawn:         pick(suncalc.Dawn),
		NauticalDawn: pick(suncalc.NauticalDawn),
		Sunrise:      inLocation(rise, loc),
		SolarNoon:    pick(suncalc.SolarNoon),
		Sunset:       inLocation(set, loc),
		Dusk:         pick(suncalc.Dusk),
		NauticalDusk: pick(suncalc.NauticalDusk),
	}
}

// DayLength is the time between sunrise and sunset, zero when either is missing.
func (e Events) DayLength() time.Duration {
	if e.Sunrise.IsZero() || e.Sunset.IsZero() {
		return 0
	}
	return e.Sunset.Sub(e.Sunrise)
}

// Seasons holds the dates of the equinoxes and solstices of a year.
type Seasons struct {
	MarchEquinox     time.Time
	JuneSolstice     time.Time
	SeptemberEquinox time.Time
	DecemberSolstice time.Time
}

// SeasonsOf returns the equinoxes and solstices of year as UTC dates.
func SeasonsOf(year int) Seasons {
	return Seasons{
		MarchEquinox:     jdeToDate(solstice.March(year)),
		JuneSolstice:     jdeToDate(solstice.June(year)),
		SeptemberEquinox: jdeToDate(solstice.September(year)),
		DecemberSolstice: jdeToDate(solstice.December(year)),
	}
}

// Next() returns the first equinox or solstice on or after date, and its name
func (s Seasons) Next(date time.Time) (string, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	for _, season := range []struct {
		name string
		at   time.Time
	}{
		{"March equinox", s.MarchEquinox},
		{"June solstice", s.JuneSolstice},
		{"September equinox", s.SeptemberEquinox},
		{"December solstice", s.DecemberSolstice},
	} {
		if !season.at.Before(day) {
			return season.name, season.at
		}
	}
	next := SeasonsOf(date.Year() + 1)
	return "March equinox", next.MarchEquinox
}

func jdeToDate(jde float64) time.Time {
	y, m, d := julian.JDToCalendar(jde)
	return time.Date(y, time.Month(m), int(d), 0, 0, 0, 0, time.UTC)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(loc)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
