// Package chart maps a price series onto pixel coordinates and draws it.
package chart

import (
	"errors"
	"image/color"

	"GiftChart/internal/calculator"
	"GiftChart/internal/model"
)

// Trend colours.
var (
	Green = color.RGBA{46, 204, 113, 255}
	Red   = color.RGBA{231, 76, 60, 255}
)

// markerMinPoints is the series length from which quartile markers are added.
const markerMinPoints = 8

// Canvas describes the chart raster and its reserved margins.
type Canvas struct {
	Width  int
	Height int
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultCanvas is the 1500x220 chart used on the card.
func DefaultCanvas() Canvas {
	return Canvas{Width: 1500, Height: 220, Left: 80, Right: 150, Top: 50, Bottom: 25}
}

// UsableWidth is the horizontal span available to the curve.
func (c Canvas) UsableWidth() float64 { return float64(c.Width) - c.Left - c.Right }

// UsableHeight is the vertical span available to the curve.
func (c Canvas) UsableHeight() float64 { return float64(c.Height) - c.Top - c.Bottom }

// Point is a pixel coordinate.
type Point struct {
	X, Y float64
}

// Geometry is the read-only layout of one series on one canvas.
type Geometry struct {
	Canvas   Canvas
	Points   []Point
	Trend    color.RGBA
	Rising   bool
	MinIndex int
	MaxIndex int
	MinPrice float64
	MaxPrice float64
	AdjMin   float64
	AdjMax   float64
	Markers  []int
}

// Layout computes pixel coordinates, trend colour, marker indices and the
// min/max anchors for s.
func Layout(s model.Series, c Canvas) (*Geometry, error) {
	n := len(s)
	if n == 0 {
		return nil, errors.New("layout: empty series")
	}
	if c.UsableWidth() <= 0 || c.UsableHeight() <= 0 {
		return nil, errors.New("layout: canvas smaller than its padding")
	}

	minP, maxP, minIdx, maxIdx, err := calculator.PriceRange(s)
	if err != nil {
		return nil, err
	}
	adjMin, adjMax := calculator.PaddedRange(minP, maxP)

	g := &Geometry{
		Canvas:   c,
		Points:   make([]Point, n),
		MinIndex: minIdx,
		MaxIndex: maxIdx,
		MinPrice: minP,
		MaxPrice: maxP,
		AdjMin:   adjMin,
		AdjMax:   adjMax,
		Markers:  markerIndices(n),
	}

	usableH := c.UsableHeight()
	floor := float64(c.Height) - c.Bottom - 2
	for i, p := range s {
		y := usableH - calculator.Position(p.Price, adjMin, adjMax)*usableH
		g.Points[i] = Point{X: xAt(i, n, c), Y: clamp(y, 2, floor)}
	}

	g.Rising = s.Last().Price-s.First().Price >= 0
	g.Trend = Red
	if g.Rising {
		g.Trend = Green
	}
	return g, nil
}

func xAt(i, n int, c Canvas) float64 {
	if n == 1 {
		return c.Left
	}
	return float64(i)*(c.UsableWidth()/float64(n-1)) + c.Left
}

func markerIndices(n int) []int {
	idx := []int{0}
	if n >= markerMinPoints {
		idx = append(idx, n/4, n/2, (n*3)/4)
	}
	if last := n - 1; last != idx[len(idx)-1] {
		idx = append(idx, last)
	}
	return idx
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
