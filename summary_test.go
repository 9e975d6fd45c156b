package main

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twentyfour/clock"
)

func TestSummarize(t *testing.T) {
	face, err := clock.New(
		clock.WithDatetime(time.Date(2023, 6, 21, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))),
		clock.WithLocation(13.4, 52.5))
	require.NoError(t, err)

	summary := summarize(face, "Berlin")
	assert.Equal(t, "Berlin", summary.Place)
	assert.Equal(t, "WED", summary.Day)
	assert.Equal(t, "UTC+02:00", summary.UTCOffset)
	require.NotNil(t, summary.Longitude)
	assert.Equal(t, 13.4, *summary.Longitude)

	want := []SegmentView{
		{State: "night", Start: "00:00", End: "03:55"},
		{State: "dawn", Start: "03:55", End: "04:55"},
		{State: "day", Start: "04:55", End: "21:30"},
		{State: "dusk", Start: "21:30", End: "22:25"},
		{State: "night", Start: "22:25", End: "24:00"},
	}
	if diff := cmp.Diff(want, summary.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}

	require.NotNil(t, summary.Events)
	require.NotNil(t, summary.Events.Sunrise)
	require.NotNil(t, summary.Events.Sunset)
	assert.True(t, summary.Events.Sunrise.Before(*summary.Events.Sunset))
	assert.Equal(t, "CEST", summary.Events.Sunrise.Location().String())
	assert.Equal(t, "June solstice", summary.NextSeason)
	assert.Equal(t, "2023-06-21", summary.NextSeasonAt.Format(time.DateOnly))
}

func TestSummarizeWithoutLocation(t *testing.T) {
	face, err := clock.New(clock.WithDatetime(time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	summary := summarize(face, "")
	assert.Nil(t, summary.Longitude)
	assert.Nil(t, summary.Events)
	assert.Equal(t, []SegmentView{{State: "day", Start: "00:00", End: "24:00"}}, summary.Segments)
	assert.Equal(t, "March equinox", summary.NextSeason)
	assert.Equal(t, 2025, summary.NextSeasonAt.Year())
}

func TestSummaryPrint(t *testing.T) {
	face, err := clock.New(
		clock.WithDatetime(equinoxNoon),
		clock.WithLocation(0, 0))
	require.NoError(t, err)

	out := summarize(face, "Null Island").Print()
	lines := strings.Split(out, "\n")
	assert.Equal(t, "Null Island", lines[0])
	assert.Equal(t, "TUE 2023-03-21 UTC+00:00", lines[1])
	assert.Equal(t, "lon 0.0000 lat 0.0000", lines[2])
	assert.Contains(t, out, "night 00:00-05:45\n")
	assert.Contains(t, out, "dawn  05:45-06:10\n")
	assert.Contains(t, out, "day   06:10-18:10\n")
	assert.Contains(t, out, "sunrise ")
	assert.Contains(t, out, "June solstice ")
	assert.NotContains(t, out, "\x1b[")
}

func TestSummaryColored(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	face, err := clock.New(clock.WithDatetime(equinoxNoon), clock.WithLocation(0, 0))
	require.NoError(t, err)

	out := summarize(face, "").Colored()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, color.New(color.FgCyan).Sprint("dawn "))
}

func TestHHMM(t *testing.T) {
	assert.Equal(t, "00:00", hhmm(0))
	assert.Equal(t, "09:38", hhmm(9*time.Hour+38*time.Minute+20*time.Second))
	assert.Equal(t, "24:00", hhmm(24*time.Hour))
}
