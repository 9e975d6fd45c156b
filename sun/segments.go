package sun

import (
	"fmt"
	"time"
)

// DefaultStep is the sampling interval used for the day/night disc.
const DefaultStep = 5 * time.Minute

const fullDay = 24 * time.Hour

// Segment is a run of equal sun state on the local day, as offsets since
// local midnight. End is exclusive except for the last segment, which ends
// at 24h.
type Segment struct {
	State State
	Start time.Duration
	End   time.Duration
}

func (s Segment) String() string {
	return fmt.Sprintf("%s %s-%s", s.State, clockString(s.Start), clockString(s.End))
}

// Segments samples the local day of s every step and groups consecutive
// samples with equal state. A transition is reported at the first sample
// showing the new state. step must divide 24h; DefaultStep is used when it
// does not.
func (s Sun) Segments(twilightDegree float64, step time.Duration) []Segment {
	if step <= 0 || fullDay%step != 0 {
		step = DefaultStep
	}
	var segments []Segment
	current := Segment{State: s.At(0).State(twilightDegree)}
	for offset := step; offset < fullDay; offset += step {
		state := s.At(offset.Hours()).State(twilightDegree)
		if state == current.State {
			continue
		}
		current.End = offset
		segments = append(segments, current)
		current = Segment{State: state, Start: offset}
	}
	current.End = fullDay
	return append(segments, current)
}

// AllDay returns the segments of a place without a known location, which is
// treated as daylight around the clock.
func AllDay() []Segment {
	return []Segment{{State: Day, Start: 0, End: fullDay}}
}

func clockString(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}
