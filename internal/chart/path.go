// Package chart turns aggregate series into drawable SVG path data.
// It only does geometry; the consuming UI decides styling and axes.
package chart

import (
	"fmt"
	"strings"
)

// Point is a mapped pixel coordinate.
type Point struct {
	X float64
	Y float64
}

// Plot describes the target drawing area. MaxScale is the value that maps to
// the top of the plot; values above it are clamped.
type Plot struct {
	Width    float64
	Height   float64
	PaddingX float64
	PaddingY float64
	MaxScale float64
}

// DefaultPlot is the layout used by the trend charts.
func DefaultPlot() Plot {
	return Plot{Width: 320, Height: 140, PaddingX: 16, PaddingY: 12, MaxScale: 10}
}

// MapSeries maps an ordered value series onto the plot: indices spread evenly
// across the X axis, values linearly on the Y axis (inverted, since screen Y
// grows downward). A single value is centered horizontally.
func (p Plot) MapSeries(values []float64) []Point {
	if len(values) == 0 {
		return nil
	}

	plotW := p.Width - 2*p.PaddingX
	plotH := p.Height - 2*p.PaddingY

	points := make([]Point, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > p.MaxScale {
			v = p.MaxScale
		}

		x := p.PaddingX + plotW/2
		if len(values) > 1 {
			x = p.PaddingX + float64(i)*plotW/float64(len(values)-1)
		}
		y := p.PaddingY + plotH - v/p.MaxScale*plotH

		points[i] = Point{X: x, Y: y}
	}
	return points
}

// stubHalfWidth is the half-length of the flat stub drawn for a
// single-point series.
const stubHalfWidth = 6.0

// SmoothPath renders the points as an SVG path using Catmull-Rom derived
// cubic Bezier segments: each control point is offset by 1/6 of the vector
// between the segment's outer neighbors, with sequence boundaries clamped to
// the nearest endpoint. A single point degrades to a short flat stub
// centered on its value; an empty series renders nothing.
func SmoothPath(points []Point) string {
	switch len(points) {
	case 0:
		return ""
	case 1:
		p := points[0]
		return fmt.Sprintf("M %s %s L %s %s",
			coord(p.X-stubHalfWidth), coord(p.Y), coord(p.X+stubHalfWidth), coord(p.Y))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", coord(points[0].X), coord(points[0].Y))

	for i := 0; i < len(points)-1; i++ {
		p0 := points[clampIndex(i-1, len(points))]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[clampIndex(i+2, len(points))]

		c1 := Point{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := Point{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}

		fmt.Fprintf(&b, " C %s %s, %s %s, %s %s",
			coord(c1.X), coord(c1.Y), coord(c2.X), coord(c2.Y), coord(p2.X), coord(p2.Y))
	}

	return b.String()
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func coord(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
