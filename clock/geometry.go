package clock

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Point struct {
	X, Y float64
}

func (f *Face) Center() Point {
	return Point{X: f.width / 2, Y: f.height / 2}
}

func (f *Face) Radius() float64 {
	return math.Min(f.width, f.height) / 2
}

func (f *Face) RadiusMinutes() float64 {
	return round(f.Radius() * 0.95)
}

func (f *Face) RadiusHours() float64 {
	return round(f.Radius() * 0.7)
}

// LengthStroke is the base unit of the face: tick length, stroke widths and
// font sizes derive from it.
func (f *Face) LengthStroke() float64 {
	return math.Max(2.5, round(f.Radius()*0.05))
}

func (f *Face) LengthStrokePrimary() float64 {
	return round(f.Radius() * 0.1)
}

// AngleHours is the rotation of the hour hand in degrees, pointing down at midnight.
func (f *Face) AngleHours() float64 {
	return hoursAngle(f.datetime.Clock())
}

// AngleHoursUTC is the rotation of the UTC marker on the hour ring.
func (f *Face) AngleHoursUTC() float64 {
	return hoursAngle(f.datetime.UTC().Clock())
}

func hoursAngle(h, m, s int) float64 {
	return (float64(h)+float64(m)/60+float64(s)/3600)*15 + 180
}

func (f *Face) AngleMinutes() float64 {
	_, m, s := f.datetime.Clock()
	return (float64(m) + float64(s)/60) * 6
}

// AngleSeconds moves in whole seconds at one tick per second and in steps
// of the interval otherwise.
func (f *Face) AngleSeconds() float64 {
	sub := 0.0
	if f.interval > 0 && f.interval != time.Second {
		ms := float64(f.datetime.Nanosecond()) / 1e6
		step := float64(f.interval) / float64(time.Millisecond)
		sub = round(ms/step) * step / 1000
	}
	return (float64(f.datetime.Second()) + sub) * 6
}

// circlePoint returns the point at angle degrees on a circle of radius r
// around the center, angle zero being straight down and growing clockwise.
func (f *Face) circlePoint(angle, r float64) Point {
	c := f.Center()
	rad := angle / 180 * math.Pi
	return Point{
		X: math.Sin(-rad)*r + c.X,
		Y: math.Cos(rad)*r + c.Y,
	}
}

// LongitudeString formats the longitude as E013°24.00′, empty without one.
func (f *Face) LongitudeString() string {
	if f.longitude == nil || math.IsNaN(*f.longitude) {
		return ""
	}
	hemisphere := "W"
	if *f.longitude > 0 {
		hemisphere = "E"
	}
	return hemisphere + degreesMinutes(*f.longitude, 3)
}

// LatitudeString formats the latitude as N52°30.00′, empty without one.
func (f *Face) LatitudeString() string {
	if f.latitude == nil || math.IsNaN(*f.latitude) {
		return ""
	}
	hemisphere := "S"
	if *f.latitude > 0 {
		hemisphere = "N"
	}
	return hemisphere + degreesMinutes(*f.latitude, 2)
}

func degreesMinutes(v float64, width int) string {
	deg := int(math.Floor(math.Abs(v)))
	minutes := math.Abs(math.Mod(v, 1) * 60)
	return fmt.Sprintf("%0*d°%05.2f′", width, deg, minutes)
}

// DateString is the local date as YYYY-MM-DD.
func (f *Face) DateString() string {
	return f.datetime.Format(time.DateOnly)
}

// DayString is the upper case three letter weekday.
func (f *Face) DayString() string {
	return strings.ToUpper(f.datetime.Weekday().String()[:3])
}

// UTCOffsetString formats the zone offset of the face as UTC±HH:MM.
func (f *Face) UTCOffsetString() string {
	_, offset := f.datetime.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, offset/3600, offset%3600/60)
}

// round rounds halves up.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
