// Package clock renders a 24-hour analog clock face as SVG. Midnight is at
// the bottom and noon at the top; a disc behind the hands shows when the sun
// is up, down or in twilight at the face's location.
package clock

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"twentyfour/sun"
)

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrInvalidAttribute = errors.New("invalid attribute value")
)

// Attribute names understood by SetAttribute.
const (
	AttrDatetime       = "datetime"
	AttrLongitude      = "longitude"
	AttrLatitude       = "latitude"
	AttrFrequency      = "frequency"
	AttrTwilightDegree = "twilight-degree"
	AttrWidth          = "width"
	AttrHeight         = "height"
)

// Auto as longitude or latitude asks for the location to be resolved elsewhere.
const Auto = "auto"

const (
	defaultSize      = 256
	defaultFrequency = 1
)

// ObservedAttributes lists the attributes a face reacts to.
func ObservedAttributes() []string {
	return []string{AttrDatetime, AttrLongitude, AttrLatitude, AttrFrequency, AttrTwilightDegree, AttrWidth, AttrHeight}
}

// Face is a single clock. It is not safe for concurrent use.
type Face struct {
	width          float64
	height         float64
	twilightDegree float64
	datetime       time.Time
	longitude      *float64
	latitude       *float64
	autoLocation   bool
	frequency      float64
	interval       time.Duration
	lastTick       time.Time
	segments       []sun.Segment
	attributes     map[string]string
}

type Option func(f *Face) error

func WithSize(width, height float64) Option {
	return func(f *Face) error {
		if err := f.setWidth(width); err != nil {
			return err
		}
		return f.setHeight(height)
	}
}

func WithLocation(longitude, latitude float64) Option {
	return func(f *Face) error {
		if _, err := sun.New(longitude, latitude, f.datetime); err != nil {
			return err
		}
		f.longitude, f.latitude = &longitude, &latitude
		f.autoLocation = false
		return nil
	}
}

func WithTwilightDegree(degree float64) Option {
	return func(f *Face) error {
		return f.setTwilightDegree(degree)
	}
}

// WithDatetime sets the time shown; its location is the wall clock of the face.
func WithDatetime(t time.Time) Option {
	return func(f *Face) error {
		f.datetime = t
		return nil
	}
}

func WithFrequency(frequency float64) Option {
	return func(f *Face) error {
		return f.setFrequency(frequency)
	}
}

// New returns a 256x256 face showing the current local time, ticking once a
// second, with civil twilight and no location until options say otherwise.
func New(opts ...Option) (*Face, error) {
	now := time.Now()
	f := &Face{
		width:          defaultSize,
		height:         defaultSize,
		twilightDegree: sun.CivilTwilight,
		datetime:       now,
		lastTick:       now,
		attributes:     map[string]string{},
	}
	if err := f.setFrequency(defaultFrequency); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	f.drawNewDay()
	return f, nil
}

// SetAttribute applies a string attribute the way an element attribute
// change would. Setting an attribute to the value it already has is a no-op.
func (f *Face) SetAttribute(name, value string) error {
	if old, ok := f.attributes[name]; ok && old == value {
		return nil
	}
	var err error
	switch name {
	case AttrDatetime:
		var t time.Time
		if t, err = ParseDatetime(value, f.datetime.Location()); err == nil {
			f.SetDatetime(t)
		}
	case AttrLongitude, AttrLatitude:
		if strings.EqualFold(strings.TrimSpace(value), Auto) {
			f.forget(AttrLongitude, AttrLatitude)
			f.longitude, f.latitude = nil, nil
			f.autoLocation = true
			f.drawNewDay()
			break
		}
		var v float64
		if v, err = parseNumber(name, value); err == nil {
			if name == AttrLongitude {
				err = f.SetLongitude(v)
			} else {
				err = f.SetLatitude(v)
			}
		}
	case AttrFrequency:
		var v float64
		if v, err = parseNumber(name, value); err == nil {
			err = f.SetFrequency(v)
		}
	case AttrTwilightDegree:
		var v float64
		if v, err = parseNumber(name, value); err == nil {
			err = f.SetTwilightDegree(v)
		}
	case AttrWidth:
		var v float64
		if v, err = parseNumber(name, value); err == nil {
			err = f.SetWidth(v)
		}
	case AttrHeight:
		var v float64
		if v, err = parseNumber(name, value); err == nil {
			err = f.SetHeight(v)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	if err != nil {
		return err
	}
	f.attributes[name] = value
	return nil
}

// ParseDatetime accepts RFC 3339 and the zone-less forms
// 2006-01-02T15:04:05, 2006-01-02T15:04 and 2006-01-02, which are read in loc.
func ParseDatetime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: datetime %q", ErrInvalidAttribute, value)
}

// forget drops the remembered string values of attributes changed by
// other means, so setting them again is applied.
func (f *Face) forget(names ...string) {
	for _, name := range names {
		delete(f.attributes, name)
	}
}

func parseNumber(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidAttribute, name, value)
	}
	return v, nil
}

func (f *Face) Datetime() time.Time {
	return f.datetime
}

// SetDatetime jumps to t and redraws the day.
func (f *Face) SetDatetime(t time.Time) {
	f.forget(AttrDatetime)
	f.datetime = t
	f.drawNewDay()
}

// SetTimezone shows the same instant on the wall clock of loc.
func (f *Face) SetTimezone(loc *time.Location) {
	f.SetDatetime(f.datetime.In(loc))
}

func (f *Face) Frequency() float64 {
	return f.frequency
}

// Interval is the time between ticks, zero when the face does not tick.
func (f *Face) Interval() time.Duration {
	return f.interval
}

// SetFrequency sets how many times per second the hands move. Frequencies of
// one or more are rounded to whole ticks per second; below one the seconds
// hand is hidden; zero or less stops the clock.
func (f *Face) SetFrequency(frequency float64) error {
	f.forget(AttrFrequency)
	return f.setFrequency(frequency)
}

func (f *Face) setFrequency(frequency float64) error {
	if math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("%w: frequency %v", ErrInvalidAttribute, frequency)
	}
	f.frequency = frequency
	switch {
	case frequency <= 0:
		f.interval = 0
	case frequency < 1:
		f.interval = time.Duration(float64(time.Second) / frequency)
	default:
		f.interval = time.Second / time.Duration(math.Floor(frequency+0.5))
	}
	return nil
}

// SecondsHidden reports whether the seconds hand is hidden.
func (f *Face) SecondsHidden() bool {
	return f.frequency < 1
}

func (f *Face) TwilightDegree() float64 {
	return f.twilightDegree
}

func (f *Face) SetTwilightDegree(degree float64) error {
	f.forget(AttrTwilightDegree)
	if err := f.setTwilightDegree(degree); err != nil {
		return err
	}
	f.drawNewDay()
	return nil
}

func (f *Face) setTwilightDegree(degree float64) error {
	if math.IsNaN(degree) || degree > 0 || degree < -90 {
		return fmt.Errorf("%w: twilight degree %v must be within [-90, 0]", ErrInvalidAttribute, degree)
	}
	f.twilightDegree = degree
	return nil
}

// Longitude returns the longitude and whether one is set.
func (f *Face) Longitude() (float64, bool) {
	if f.longitude == nil {
		return 0, false
	}
	return *f.longitude, true
}

func (f *Face) SetLongitude(longitude float64) error {
	if math.IsNaN(longitude) || math.Abs(longitude) > 180 {
		return fmt.Errorf("%w: longitude %v", sun.ErrInvalidCoordinates, longitude)
	}
	f.forget(AttrLongitude)
	f.longitude = &longitude
	f.autoLocation = false
	f.drawNewDay()
	return nil
}

// Latitude returns the latitude and whether one is set.
func (f *Face) Latitude() (float64, bool) {
	if f.latitude == nil {
		return 0, false
	}
	return *f.latitude, true
}

func (f *Face) SetLatitude(latitude float64) error {
	if math.IsNaN(latitude) || math.Abs(latitude) > 90 {
		return fmt.Errorf("%w: latitude %v", sun.ErrInvalidCoordinates, latitude)
	}
	f.forget(AttrLatitude)
	f.latitude = &latitude
	f.autoLocation = false
	f.drawNewDay()
	return nil
}

// AutoLocation reports whether the face waits for ResolveLocation.
func (f *Face) AutoLocation() bool {
	return f.autoLocation
}

// ResolveLocation sets both coordinates at once, typically after an auto
// location has been looked up.
func (f *Face) ResolveLocation(longitude, latitude float64) error {
	if _, err := sun.New(longitude, latitude, f.datetime); err != nil {
		return err
	}
	f.forget(AttrLongitude, AttrLatitude)
	f.longitude, f.latitude = &longitude, &latitude
	f.autoLocation = false
	f.drawNewDay()
	return nil
}

func (f *Face) Width() float64 {
	return f.width
}

func (f *Face) SetWidth(width float64) error {
	f.forget(AttrWidth)
	return f.setWidth(width)
}

func (f *Face) setWidth(width float64) error {
	if math.IsNaN(width) || width <= 0 {
		return fmt.Errorf("%w: width %v", ErrInvalidAttribute, width)
	}
	f.width = width
	return nil
}

func (f *Face) Height() float64 {
	return f.height
}

func (f *Face) SetHeight(height float64) error {
	f.forget(AttrHeight)
	return f.setHeight(height)
}

func (f *Face) setHeight(height float64) error {
	if math.IsNaN(height) || height <= 0 {
		return fmt.Errorf("%w: height %v", ErrInvalidAttribute, height)
	}
	f.height = height
	return nil
}

// Segments are the sun states of the current day as drawn on the disc.
func (f *Face) Segments() []sun.Segment {
	return f.segments
}

// Sun returns the solar model for the current day, false without a location.
func (f *Face) Sun() (sun.Sun, bool) {
	if f.longitude == nil || f.latitude == nil {
		return sun.Sun{}, false
	}
	s, err := sun.New(*f.longitude, *f.latitude, f.datetime)
	if err != nil {
		return sun.Sun{}, false
	}
	return s, true
}

// Reset restarts elapsed time accounting from now, as when a stopped face
// is started again.
func (f *Face) Reset(now time.Time) {
	f.lastTick = now
}

// Tick advances the shown time by the wall clock time since the previous
// tick and reports whether the local date changed, in which case the day
// has been redrawn.
func (f *Face) Tick(now time.Time) bool {
	oldDate := f.DateString()
	f.forget(AttrDatetime)
	f.datetime = f.datetime.Add(now.Sub(f.lastTick))
	f.lastTick = now
	if oldDate != f.DateString() {
		f.drawNewDay()
		return true
	}
	return false
}

func (f *Face) drawNewDay() {
	s, ok := f.Sun()
	if !ok {
		f.segments = sun.AllDay()
		return
	}
	f.segments = s.Segments(f.twilightDegree, sun.DefaultStep)
}
