package sun

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
)

const (
	synodicMonth     = 29.53059  // Average length of a synodic month in days
	newMoonReference = 2451549.5 // Julian date for a known new moon (Jan 6, 2000 18:14 UTC)
)

// MoonIllumination calculates the Moon's illumination percentage for a given date.
func MoonIllumination(date time.Time) float64 {
	// Calculate days since known new moon
	daysSinceNewMoon := julianDate(date) - newMoonReference

	// Normalize to the Moon phase cycle (0 to 1)
	moonPhase := math.Mod(daysSinceNewMoon/synodicMonth, 1.0)
	if moonPhase < 0 {
		moonPhase += 1.0
	}

	return (1.0 - math.Cos(2.0*math.Pi*moonPhase)) / 2.0 * 100.0
}

// julianDate converts a time.Time to Julian Date, the fractional day
// includes the time of day in UTC.
func julianDate(date time.Time) float64 {
	date = date.UTC()
	year, month, day := date.Date()
	hour, min, sec := date.Clock()
	fracDay := (float64(hour) + float64(min)/60.0 + float64(sec)/3600.0) / 24.0
	return julian.CalendarGregorianToJD(year, int(month), float64(day)+fracDay)
}
