package sun_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twentyfour/sun"
)

var (
	cest = time.FixedZone("CEST", 2*60*60)
	cet  = time.FixedZone("CET", 1*60*60)
)

func equinox(t *testing.T) sun.Sun {
	s, err := sun.New(0, 0, time.Date(2023, 3, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return s
}

func TestNewRejectsInvalidCoordinates(t *testing.T) {
	for _, tc := range []struct {
		lon, lat float64
	}{
		{181, 0},
		{-180.5, 0},
		{0, 90.1},
		{0, -91},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	} {
		_, err := sun.New(tc.lon, tc.lat, time.Now())
		assert.ErrorIs(t, err, sun.ErrInvalidCoordinates, "lon %v lat %v", tc.lon, tc.lat)
	}

	_, err := sun.New(-180, 90, time.Now())
	assert.NoError(t, err)
}

func TestSolarTerms(t *testing.T) {
	s := equinox(t)

	assert.Equal(t, 80, s.DayOfYear())
	assert.InDelta(t, -7.8428, s.EquationOfTime(), 1e-3)
	assert.InDelta(t, -0.403, s.Declination()*180/math.Pi, 1e-3)

	noon := s.At(12)
	assert.InDelta(t, 11.8693, noon.LocalSolarTime(), 1e-3)
	assert.InDelta(t, 87.998, noon.ElevationDegrees(), 1e-2)
	assert.InDelta(t, -87.998, s.At(0).ElevationDegrees(), 1e-2)
}

func TestRoundingFollowsHalfUp(t *testing.T) {
	// 112.5°W is exactly half way between two solar time zones.
	s, err := sun.New(-112.5, 40, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, -7.0, s.SolarTimeZoneOffset())
	assert.Equal(t, -105.0, s.LocalSolarTimeMeridian())
}

func TestLocalTimeUsesZoneOffset(t *testing.T) {
	s, err := sun.New(13.4, 52.5, time.Date(2023, 6, 21, 0, 0, 0, 0, cest))
	require.NoError(t, err)
	// 12:00 CEST is 10:00 UTC, one solar zone east of Greenwich.
	assert.InDelta(t, 11.0, s.At(12).LocalTime(), 1e-9)
}

func TestState(t *testing.T) {
	s := equinox(t)
	for _, tc := range []struct {
		hours float64
		want  sun.State
	}{
		{0, sun.Night},
		{6, sun.Dawn},
		{12, sun.Day},
		{18, sun.Day},
		{18 + 20.0/60, sun.Dusk},
		{21, sun.Night},
	} {
		assert.Equal(t, tc.want, s.At(tc.hours).State(sun.CivilTwilight), "at %v", tc.hours)
	}

	// With a deeper twilight the evening stays in dusk for longer.
	assert.Equal(t, sun.Dusk, s.At(18+40.0/60).State(sun.NauticalTwilight))
	assert.Equal(t, sun.Night, s.At(18+40.0/60).State(sun.CivilTwilight))
}

func TestSegments(t *testing.T) {
	berlin := func(date time.Time) sun.Sun {
		s, err := sun.New(13.4, 52.5, date)
		require.NoError(t, err)
		return s
	}

	for _, tc := range []struct {
		name string
		sun  sun.Sun
		want []sun.Segment
	}{
		{
			name: "equator equinox",
			sun:  equinox(t),
			want: []sun.Segment{
				{State: sun.Night, Start: 0, End: 5*time.Hour + 45*time.Minute},
				{State: sun.Dawn, Start: 5*time.Hour + 45*time.Minute, End: 6*time.Hour + 10*time.Minute},
				{State: sun.Day, Start: 6*time.Hour + 10*time.Minute, End: 18*time.Hour + 10*time.Minute},
				{State: sun.Dusk, Start: 18*time.Hour + 10*time.Minute, End: 18*time.Hour + 35*time.Minute},
				{State: sun.Night, Start: 18*time.Hour + 35*time.Minute, End: 24 * time.Hour},
			},
		},
		{
			name: "berlin midsummer",
			sun:  berlin(time.Date(2023, 6, 21, 0, 0, 0, 0, cest)),
			want: []sun.Segment{
				{State: sun.Night, Start: 0, End: 3*time.Hour + 55*time.Minute},
				{State: sun.Dawn, Start: 3*time.Hour + 55*time.Minute, End: 4*time.Hour + 55*time.Minute},
				{State: sun.Day, Start: 4*time.Hour + 55*time.Minute, End: 21*time.Hour + 30*time.Minute},
				{State: sun.Dusk, Start: 21*time.Hour + 30*time.Minute, End: 22*time.Hour + 25*time.Minute},
				{State: sun.Night, Start: 22*time.Hour + 25*time.Minute, End: 24 * time.Hour},
			},
		},
		{
			name: "berlin midwinter",
			sun:  berlin(time.Date(2023, 12, 21, 0, 0, 0, 0, cet)),
			want: []sun.Segment{
				{State: sun.Night, Start: 0, End: 7*time.Hour + 35*time.Minute},
				{State: sun.Dawn, Start: 7*time.Hour + 35*time.Minute, End: 8*time.Hour + 25*time.Minute},
				{State: sun.Day, Start: 8*time.Hour + 25*time.Minute, End: 15*time.Hour + 50*time.Minute},
				{State: sun.Dusk, Start: 15*time.Hour + 50*time.Minute, End: 16*time.Hour + 40*time.Minute},
				{State: sun.Night, Start: 16*time.Hour + 40*time.Minute, End: 24 * time.Hour},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.sun.Segments(sun.CivilTwilight, sun.DefaultStep)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPolarSegments(t *testing.T) {
	night, err := sun.New(13.4, 80, time.Date(2023, 12, 21, 0, 0, 0, 0, cet))
	require.NoError(t, err)
	assert.Equal(t, []sun.Segment{{State: sun.Night, Start: 0, End: 24 * time.Hour}},
		night.Segments(sun.CivilTwilight, sun.DefaultStep))

	day, err := sun.New(13.4, 80, time.Date(2023, 6, 21, 0, 0, 0, 0, cest))
	require.NoError(t, err)
	assert.Equal(t, sun.AllDay(), day.Segments(sun.CivilTwilight, sun.DefaultStep))
}

func TestSegmentsCoverTheDay(t *testing.T) {
	s := equinox(t)
	for _, step := range []time.Duration{time.Minute, 5 * time.Minute, 7 * time.Minute, 0} {
		segments := s.Segments(sun.CivilTwilight, step)
		require.NotEmpty(t, segments)
		assert.Equal(t, time.Duration(0), segments[0].Start)
		assert.Equal(t, 24*time.Hour, segments[len(segments)-1].End)
		for i := 1; i < len(segments); i++ {
			assert.Equal(t, segments[i-1].End, segments[i].Start)
			assert.NotEqual(t, segments[i-1].State, segments[i].State)
		}
	}
}

func TestSegmentString(t *testing.T) {
	seg := sun.Segment{State: sun.Dusk, Start: 18*time.Hour + 10*time.Minute, End: 18*time.Hour + 35*time.Minute}
	assert.Equal(t, "dusk 18:10-18:35", seg.String())
}
