package clock

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"twentyfour/sun"
)

// Style returns the stylesheet of the face, scoped to svg.twentyfour.
// Colours are CSS custom properties pages embedding the face can override.
func (f *Face) Style() string {
	unit := f.LengthStroke()
	hideSecondary, hideTertiary := "", ""
	if unit <= 2.5 {
		hideSecondary = "display: none;"
	}
	if unit <= 3.5 {
		hideTertiary = "display: none;"
	}
	return fmt.Sprintf(`
svg.twentyfour {
  --font-family: sans-serif;
  --color-background: black;
  --color-foreground: white;
  --color-watchhand: orange;
  --color-night: #0f396c;
  --color-twilight: #1d6fd3;
  --color-day: #a1c5f2;
  --stroke-width: %[1]spx;
  --stroke-width-watchhand: %[2]spx;
  --stroke-width-daylight: %[2]spx;
  display: inline-block;
  fill: var(--color-background);
  color: var(--color-foreground);
  stroke-linecap: round;
  stroke-linejoin: round;
}
svg.twentyfour line, svg.twentyfour polyline, svg.twentyfour circle {
  stroke: currentColor;
  stroke-width: var(--stroke-width);
  fill: transparent;
}
svg.twentyfour .light {
  stroke-width: var(--stroke-width-daylight);
  stroke-linecap: butt;
}
svg.twentyfour .light-night { stroke: var(--color-night); }
svg.twentyfour .light-dusk, svg.twentyfour .light-dawn { stroke: var(--color-twilight); }
svg.twentyfour .light-day { stroke: var(--color-day); }
svg.twentyfour #watchhand-hours, svg.twentyfour #watchhand-minutes,
svg.twentyfour #watchhand-hours-utc {
  color: var(--color-watchhand);
  stroke-width: var(--stroke-width-watchhand);
}
svg.twentyfour #watchhand-hours-utc {
  stroke: none;
  fill: currentColor;
}
svg.twentyfour text, svg.twentyfour polygon {
  fill: currentColor;
  paint-order: stroke;
  stroke-width: var(--stroke-width-watchhand);
  stroke: var(--color-background);
  stroke-opacity: 0.5;
  font-size: %[3]spx;
  font-family: var(--font-family);
}
svg.twentyfour text.small {
  font-size: %[4]spx;
}
svg.twentyfour .secondary {
  %[5]s
}
svg.twentyfour .tertiary {
  %[6]s
}
`, num(unit/5), num(unit/2.5), num(unit*2), num(unit*1.5), hideSecondary, hideTertiary)
}

// SVG returns the complete markup of the face, stylesheet included.
func (f *Face) SVG() string {
	var b strings.Builder
	f.writeSVG(&b)
	return b.String()
}

// Render writes the SVG markup of the face to w.
func (f *Face) Render(w io.Writer) error {
	_, err := io.WriteString(w, f.SVG())
	return err
}

func (f *Face) writeSVG(b *strings.Builder) {
	c := f.Center()
	cx, cy := num(c.X), num(c.Y)
	stroke := f.LengthStroke()
	primary := f.LengthStrokePrimary()
	radiusMinutes := c.Y - f.RadiusMinutes()
	radiusHours := c.Y - f.RadiusHours()
	w, h := num(f.width), num(f.height)

	fmt.Fprintf(b, `<svg width="%s" height="%s" version="1.1" viewBox="0 0 %s %s" class="twentyfour" xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">`, w, h, w, h)
	fmt.Fprintf(b, `<style>%s</style>`, f.Style())
	fmt.Fprintf(b, `<rect x="0" y="0" width="%s" height="%s"></rect>`, w, h)

	b.WriteString(`<g inkscape:groupmode="layer" inkscape:label="Sun state disc" id="sunstate">`)
	b.WriteString(f.sunStateDisc())
	b.WriteString(`</g>`)

	b.WriteString(`<g inkscape:groupmode="layer" inkscape:label="Watchhands">`)
	secondsStyle := ""
	if f.SecondsHidden() {
		secondsStyle = ` style="opacity: 0"`
	}
	fmt.Fprintf(b, `<line id="watchhand-seconds" x1="%s" y1="%s" x2="%s" y2="%s" transform="rotate(%s %s %s)"%s />`,
		cx, cy, cx, num(radiusMinutes+stroke*1.5), num(f.AngleSeconds()), cx, cy, secondsStyle)
	fmt.Fprintf(b, `<line id="watchhand-minutes" x1="%s" y1="%s" x2="%s" y2="%s" transform="rotate(%s %s %s)" />`,
		cx, cy, cx, num(radiusMinutes+stroke*2.4), num(f.AngleMinutes()), cx, cy)
	fmt.Fprintf(b, `<line id="watchhand-hours" x1="%s" y1="%s" x2="%s" y2="%s" transform="rotate(%s %s %s)" />`,
		cx, cy, cx, num(radiusHours+stroke*2.4), num(f.AngleHours()), cx, cy)
	fmt.Fprintf(b, `<circle id="watchhand-hours-utc" cx="%s" cy="%s" r="%s" transform="rotate(%s %s %s)" />`,
		cx, num(radiusHours+stroke*2.4), num(stroke/2.5), num(f.AngleHoursUTC()), cx, cy)
	b.WriteString(`</g>`)

	b.WriteString(`<g inkscape:groupmode="layer" inkscape:label="Minutes">`)
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" />`, cx, cy, num(f.RadiusMinutes()))
	for minutes := 0; minutes < 60; minutes++ {
		angle := num(float64(minutes * 6))
		isPrimary := minutes%5 == 0
		length, class := stroke, "secondary"
		if isPrimary {
			length, class = primary, "primary"
		}
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" transform="rotate(%s %s %s)" class="%s" />`,
			cx, num(radiusMinutes), cx, num(radiusMinutes+length), angle, cx, cy, class)
		switch {
		case minutes == 0:
			fmt.Fprintf(b, `<polygon points="%s,%s %s,%s %s,%s" />`,
				num(c.X-primary*0.66), num(radiusMinutes+primary),
				cx, num(radiusMinutes+primary*2),
				num(c.X+primary*0.66), num(radiusMinutes+primary))
		case isPrimary:
			textClass := "secondary"
			if minutes%15 == 0 {
				textClass = ""
			}
			fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" transform="rotate(%s %s %s)" class="%s">%02d</text>`,
				cx, num(radiusMinutes+primary*2), angle, cx, cy, textClass, minutes)
		}
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g inkscape:groupmode="layer" inkscape:label="Hours">`)
	for hours := 0; hours < 24; hours++ {
		angle := num(float64(hours*15 + 180))
		isPrimary := hours%3 == 0
		length, class := stroke, ""
		if isPrimary {
			length, class = primary, "primary"
		}
		// noon reaches into the minutes ring
		y1 := radiusHours
		if hours == 12 {
			y1 -= 7
		}
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" transform="rotate(%s %s %s)" class="%s" />`,
			cx, num(y1), cx, num(radiusHours+length), angle, cx, cy, class)
		if isPrimary {
			textClass := "secondary"
			if hours%6 == 0 {
				textClass = ""
			}
			fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" transform="rotate(%s %s %s)" class="%s">%02d</text>`,
				cx, num(radiusHours+primary*2), angle, cx, cy, textClass, hours)
		}
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g inkscape:groupmode="layer" inkscape:label="Extra information">`)
	fmt.Fprintf(b, `<text id="lon" class="tertiary small" x="%s" y="%s" text-anchor="middle">%s</text>`,
		cx, num(c.Y-primary), f.LongitudeString())
	fmt.Fprintf(b, `<text id="lat" class="tertiary small" x="%s" y="%s" text-anchor="middle">%s</text>`,
		cx, num(c.Y-primary*2), f.LatitudeString())
	fmt.Fprintf(b, `<text id="date" class="tertiary" x="%s" y="%s" text-anchor="middle">%s</text>`,
		cx, num(c.Y+primary*2), f.DateString())
	fmt.Fprintf(b, `<text id="day" class="tertiary" x="%s" y="%s" text-anchor="middle">%s</text>`,
		cx, num(c.Y+primary*3.25), f.DayString())
	b.WriteString(`</g>`)

	b.WriteString(`</svg>`)
}

// sunStateDisc draws one polyline per sun segment on the hours radius. Each
// line runs up to and including the first point of the next segment so the
// disc has no gaps.
func (f *Face) sunStateDisc() string {
	var b strings.Builder
	r := f.RadiusHours()
	for _, seg := range f.segments {
		var points []string
		for offset := seg.Start; offset <= seg.End; offset += sun.DefaultStep {
			p := f.circlePoint(offset.Hours()*15, r)
			points = append(points, num(p.X)+","+num(p.Y))
		}
		fmt.Fprintf(&b, `<polyline class="light light-%s" points="%s" />`, seg.State, strings.Join(points, " "))
	}
	return b.String()
}

// num formats v with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // no negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
