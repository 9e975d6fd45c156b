// Package sun approximates the position of the sun for a place and a local
// time of day and classifies it as day, night or twilight.
//
// The formulas are the usual low precision ones (equation of time, solar
// declination, hour angle and elevation), see
// https://www.pveducation.org/pvcdrom/properties-of-sunlight/the-suns-position
package sun

import (
	"errors"
	"fmt"
	"math"
	"time"
)

type State string

const (
	Day   State = "day"
	Night State = "night"
	Dusk  State = "dusk"
	Dawn  State = "dawn"
)

// Twilight presets in degrees of solar elevation.
const (
	CivilTwilight        = -6.0
	NauticalTwilight     = -12.0
	AstronomicalTwilight = -18.0
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Sun holds everything needed to place the sun in the sky. Date is the
// observer's wall clock date, its location decides the UTC offset.
// LocalHours is the time of day on that wall clock, in hours.
type Sun struct {
	Longitude  float64
	Latitude   float64
	Date       time.Time
	LocalHours float64
}

// New returns a Sun for the given longitude and latitude, evaluated at local midnight of date.
func New(longitude, latitude float64, date time.Time) (Sun, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || math.Abs(longitude) > 180 {
		return Sun{}, fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, longitude)
	}
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || math.Abs(latitude) > 90 {
		return Sun{}, fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, latitude)
	}
	return Sun{Longitude: longitude, Latitude: latitude, Date: date}, nil
}

// At() returns a copy of s evaluated at localHours on the same date
func (s Sun) At(localHours float64) Sun {
	s.LocalHours = localHours
	return s
}

// SolarTimeZoneOffset is the time zone the longitude would have if zones
// followed the sun, in hours.
func (s Sun) SolarTimeZoneOffset() float64 {
	return roundHalfUp(s.Longitude / 180 * 12)
}

func (s Sun) DayOfYear() int {
	return s.Date.YearDay()
}

// LocalTime in hours.
func (s Sun) LocalTime() float64 {
	_, offset := s.Date.Zone()
	return s.LocalHours + s.SolarTimeZoneOffset() - float64(offset)/3600
}

// LocalSolarTimeMeridian in degrees.
func (s Sun) LocalSolarTimeMeridian() float64 {
	return roundHalfUp(s.Longitude/15) * 15
}

// EquationOfTime in minutes.
func (s Sun) EquationOfTime() float64 {
	b := 2 * math.Pi / 365 * float64(s.DayOfYear()-81)
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// TimeCorrectionFactor in minutes.
func (s Sun) TimeCorrectionFactor() float64 {
	return 4*(s.Longitude-s.LocalSolarTimeMeridian()) + s.EquationOfTime()
}

// LocalSolarTime in hours, within [0, 24).
func (s Sun) LocalSolarTime() float64 {
	lst := math.Mod(s.LocalTime()+s.TimeCorrectionFactor()/60+24, 24)
	if lst < 0 {
		lst += 24
	}
	return lst
}

// HourAngle in radians, zero at solar noon.
func (s Sun) HourAngle() float64 {
	return 2.0 / 24 * math.Pi * (s.LocalSolarTime() - 12)
}

// Declination in radians.
func (s Sun) Declination() float64 {
	delta := 23.45 * math.Sin(2*math.Pi/365*float64(s.DayOfYear()-81))
	return delta / 180 * math.Pi
}

// ElevationAngle in radians.
func (s Sun) ElevationAngle() float64 {
	delta := s.Declination()
	phi := s.Latitude / 180 * math.Pi
	return math.Asin(math.Sin(delta)*math.Sin(phi) + math.Cos(delta)*math.Cos(phi)*math.Cos(s.HourAngle()))
}

// ElevationDegrees is ElevationAngle in degrees.
func (s Sun) ElevationDegrees() float64 {
	return s.ElevationAngle() / math.Pi * 180
}

// State classifies the sun for the given twilight degree, for example
// CivilTwilight. The sun is up at or above the horizon and it is night at or
// below twilightDegree; in between it is dawn before solar noon and dusk after.
func (s Sun) State(twilightDegree float64) State {
	elevation := s.ElevationDegrees()
	switch {
	case elevation >= 0:
		return Day
	case elevation <= twilightDegree:
		return Night
	case s.LocalSolarTime() < 12:
		return Dawn
	default:
		return Dusk
	}
}

// roundHalfUp rounds halves towards positive infinity, so -7.5 becomes -7.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
