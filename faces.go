package main

import (
	"fmt"
	"time"

	"twentyfour/clock"
	"twentyfour/config"
)

// tzAttribute selects the wall clock time zone of a face by IANA name.
const tzAttribute = "tz"

// newFace() returns a face for place showing now, sized and ticking as configured
func newFace(cfg config.Config, place Place, now time.Time) (*clock.Face, error) {
	loc := place.Location
	if loc == nil {
		loc = time.Local
	}
	opts := []clock.Option{
		clock.WithDatetime(now.In(loc)),
		clock.WithSize(cfg.Width, cfg.Height),
		clock.WithTwilightDegree(cfg.TwilightDegree),
		clock.WithFrequency(cfg.Frequency),
	}
	if place.Known {
		opts = append(opts, clock.WithLocation(place.Longitude, place.Latitude))
	}
	face, err := clock.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid clock configuration: %w", err)
	}
	return face, nil
}

// applyAttributes() sets the attributes found in get on face. The time zone
// goes first so a zone-less datetime is read on the right wall clock, and an
// "auto" location falls back to place.
func applyAttributes(face *clock.Face, place Place, get func(string) string) error {
	if tz := get(tzAttribute); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("%w: tz %q", clock.ErrInvalidAttribute, tz)
		}
		face.SetTimezone(loc)
	}
	for _, name := range clock.ObservedAttributes() {
		if value := get(name); value != "" {
			if err := face.SetAttribute(name, value); err != nil {
				return err
			}
		}
	}
	if face.AutoLocation() && place.Known {
		return face.ResolveLocation(place.Longitude, place.Latitude)
	}
	return nil
}
