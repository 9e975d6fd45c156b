package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"twentyfour/clock"
	"twentyfour/sun"
)

// DaySummary describes the day drawn on a face
type DaySummary struct {
	Place          string        `json:"place,omitempty"`
	Date           string        `json:"date"`
	Day            string        `json:"day"`
	UTCOffset      string        `json:"utc_offset"`
	Longitude      *float64      `json:"longitude,omitempty"`
	Latitude       *float64      `json:"latitude,omitempty"`
	TwilightDegree float64       `json:"twilight_degree"`
	Segments       []SegmentView `json:"segments"`
	Events         *EventsView   `json:"events,omitempty"`
	NextSeason     string        `json:"next_season"`
	NextSeasonAt   time.Time     `json:"next_season_at"` // UTC date
	MoonIllum      int64         `json:"moon_illumination"`
}

type SegmentView struct {
	State string `json:"state"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type EventsView struct {
	Dawn         *time.Time `json:"dawn,omitempty"`
	NauticalDawn *time.Time `json:"nautical_dawn,omitempty"`
	Sunrise      *time.Time `json:"sunrise,omitempty"`
	SolarNoon    *time.Time `json:"solar_noon,omitempty"`
	Sunset       *time.Time `json:"sunset,omitempty"`
	Dusk         *time.Time `json:"dusk,omitempty"`
	NauticalDusk *time.Time `json:"nautical_dusk,omitempty"`
	DayLength    string     `json:"day_length"`
}

// summarize() collects what the face shows plus the named events of its day
func summarize(face *clock.Face, place string) DaySummary {
	date := face.Datetime()
	summary := DaySummary{
		Place:          place,
		Date:           face.DateString(),
		Day:            face.DayString(),
		UTCOffset:      face.UTCOffsetString(),
		TwilightDegree: face.TwilightDegree(),
		MoonIllum:      int64(sun.MoonIllumination(date)),
	}
	for _, segment := range face.Segments() {
		summary.Segments = append(summary.Segments, SegmentView{
			State: string(segment.State),
			Start: hhmm(segment.Start),
			End:   hhmm(segment.End),
		})
	}

	if s, ok := face.Sun(); ok {
		lon, lat := s.Longitude, s.Latitude
		summary.Longitude, summary.Latitude = &lon, &lat
		summary.Events = eventsView(sun.EventsFor(date, lat, lon))
	}

	summary.NextSeason, summary.NextSeasonAt = sun.SeasonsOf(date.Year()).Next(date)
	return summary
}

func eventsView(e sun.Events) *EventsView {
	opt := func(t time.Time) *time.Time {
		if t.IsZero() {
			return nil
		}
		return &t
	}
	return &EventsView{
		Dawn:         opt(e.Dawn),
		NauticalDawn: opt(e.NauticalDawn),
		Sunrise:      opt(e.Sunrise),
		SolarNoon:    opt(e.SolarNoon),
		Sunset:       opt(e.Sunset),
		Dusk:         opt(e.Dusk),
		NauticalDusk: opt(e.NauticalDusk),
		DayLength:    hhmm(e.DayLength()),
	}
}

func hhmm(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// Print() returns the summary as plain text
func (s DaySummary) Print() string {
	return s.print(func(_ string, text string) string { return text })
}

// Colored() returns the summary with states painted for a terminal
func (s DaySummary) Colored() string {
	paints := map[string]*color.Color{
		string(sun.Night): color.New(color.FgBlue),
		string(sun.Dawn):  color.New(color.FgCyan),
		string(sun.Dusk):  color.New(color.FgCyan),
		string(sun.Day):   color.New(color.FgYellow, color.Bold),
	}
	return s.print(func(state, text string) string {
		if c, ok := paints[state]; ok {
			return c.Sprint(text)
		}
		return text
	})
}

func (s DaySummary) print(paint func(state, text string) string) string {
	var b strings.Builder
	if s.Place != "" {
		fmt.Fprintf(&b, "%s\n", s.Place)
	}
	fmt.Fprintf(&b, "%s %s %s\n", s.Day, s.Date, s.UTCOffset)
	if s.Longitude != nil && s.Latitude != nil {
		fmt.Fprintf(&b, "lon %.4f lat %.4f\n", *s.Longitude, *s.Latitude)
	}
	b.WriteString("\n")
	for _, segment := range s.Segments {
		fmt.Fprintf(&b, "%s %s-%s\n", paint(segment.State, fmt.Sprintf("%-5s", segment.State)), segment.Start, segment.End)
	}

	if e := s.Events; e != nil {
		b.WriteString("\n")
		line := func(name string, t *time.Time) {
			if t != nil {
				fmt.Fprintf(&b, "%-13s %s\n", name, t.Format("15:04"))
			}
		}
		line("nautical dawn", e.NauticalDawn)
		line("dawn", e.Dawn)
		line("sunrise", e.Sunrise)
		line("solar noon", e.SolarNoon)
		line("sunset", e.Sunset)
		line("dusk", e.Dusk)
		line("nautical dusk", e.NauticalDusk)
		fmt.Fprintf(&b, "%-13s %s\n", "day length", e.DayLength)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-13s %3d%%\n", "moon", s.MoonIllum)
	if !s.NextSeasonAt.IsZero() {
		fmt.Fprintf(&b, "%-13s %s\n", s.NextSeason, s.NextSeasonAt.Format("Mon - Jan 02"))
	}
	return b.String()
}
