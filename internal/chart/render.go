package chart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"GiftChart/internal/model"
)

// Drawing parameters.
const (
	PriceFontSize = 20
	TimeFontSize  = 16

	lineWidth          = 7
	markerRadius       = 7
	innerMarkerRadius  = markerRadius / 2
	fillOpacity        = 15
	markerOuterOpacity = 220
	priceLabelGap      = 10
	timeLabelGap       = 5
	timeLabelEdgeGap   = 10
	cheapPriceCutoff   = 20
)

// LabelColor is used for axis and price labels.
var LabelColor = color.NRGBA{0x7C, 0x7C, 0x7C, 0xFF}

// Chart is a rendered chart image with the geometry it was drawn from.
type Chart struct {
	Image       image.Image
	Geometry    *Geometry
	Placeholder bool
}

// Renderer draws a series onto a transparent raster.
type Renderer struct {
	Canvas Canvas
	Fonts  *FontBook
	Rand   model.RandSource
	Now    func() time.Time
}

// NewRenderer creates a Renderer on the default canvas.
func NewRenderer(fonts *FontBook, rnd model.RandSource) *Renderer {
	return &Renderer{Canvas: DefaultCanvas(), Fonts: fonts, Rand: rnd, Now: time.Now}
}

// Render draws, back to front, the translucent area under the curve, the
// curve, the markers, the time-axis labels and the min/max price labels.
// An empty series is replaced by a placeholder so the output is still a
// chart; callers must already have reported the missing data.
func (r *Renderer) Render(s model.Series) (*Chart, error) {
	if r.Fonts == nil {
		return nil, fmt.Errorf("%w: no font loaded", model.ErrRenderUnavailable)
	}
	priceFace, err := r.Fonts.Face(PriceFontSize)
	if err != nil {
		return nil, err
	}
	defer priceFace.Close()
	timeFace, err := r.Fonts.Face(TimeFontSize)
	if err != nil {
		return nil, err
	}
	defer timeFace.Close()

	placeholder := len(s) == 0
	if placeholder {
		if r.Rand == nil {
			return nil, errors.New("render: placeholder needs a random source")
		}
		s = PlaceholderSeries(r.Rand, r.Now())
	}

	g, err := Layout(s, r.Canvas)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(r.Canvas.Width, r.Canvas.Height)
	drawFill(dc, g)
	drawCurve(dc, g)
	drawMarkers(dc, g)
	if !placeholder {
		drawTimeLabels(dc, timeFace, AxisLabels(s, r.Canvas, DefaultLabelCount), r.Canvas)
	}
	drawPriceLabels(dc, priceFace, g)

	return &Chart{Image: dc.Image(), Geometry: g, Placeholder: placeholder}, nil
}

func drawFill(dc *gg.Context, g *Geometry) {
	pts := g.Points
	floor := float64(g.Canvas.Height)
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.LineTo(pts[len(pts)-1].X, floor)
	dc.LineTo(pts[0].X, floor)
	dc.ClosePath()
	dc.SetColor(withAlpha(g.Trend, fillOpacity))
	dc.Fill()
}

func drawCurve(dc *gg.Context, g *Geometry) {
	if len(g.Points) < 2 {
		return
	}
	dc.SetLineWidth(lineWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(g.Points[0].X, g.Points[0].Y)
	for _, p := range g.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.SetColor(g.Trend)
	dc.Stroke()
}

func drawMarkers(dc *gg.Context, g *Geometry) {
	for _, idx := range g.Markers {
		if idx >= len(g.Points) {
			continue
		}
		p := g.Points[idx]

		dc.DrawCircle(p.X, p.Y, markerRadius)
		dc.SetColor(color.NRGBA{255, 255, 255, markerOuterOpacity})
		dc.FillPreserve()
		dc.SetLineWidth(1)
		dc.SetColor(g.Trend)
		dc.Stroke()

		dc.DrawCircle(p.X, p.Y, innerMarkerRadius)
		dc.SetColor(g.Trend)
		dc.Fill()
	}
}

func drawTimeLabels(dc *gg.Context, face font.Face, labels []AxisLabel, c Canvas) {
	dc.SetFontFace(face)
	dc.SetColor(LabelColor)
	top := float64(c.Height) - c.Bottom + timeLabelGap
	right := float64(c.Width) - c.Right
	for _, l := range labels {
		w, _ := dc.MeasureString(l.Text)
		x := l.X - w/2
		if x < c.Left {
			x = c.Left
		} else if x+w > right {
			x = right - w
		}
		DrawTextTop(dc, face, l.Text, x, top)
	}
}

func drawPriceLabels(dc *gg.Context, face font.Face, g *Geometry) {
	dc.SetFontFace(face)
	dc.SetColor(LabelColor)
	x := float64(g.Canvas.Width) - g.Canvas.Right + priceLabelGap
	anchors := []struct {
		idx   int
		price float64
	}{
		{g.MaxIndex, g.MaxPrice},
		{g.MinIndex, g.MinPrice},
	}
	for _, a := range anchors {
		DrawTextMiddle(dc, face, FormatPriceLabel(a.price), x, g.Points[a.idx].Y)
	}
}

// FormatPriceLabel keeps two decimals for cheap gifts and one otherwise.
func FormatPriceLabel(price float64) string {
	if price < cheapPriceCutoff {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.1f", price)
}

// DrawTextTop draws text with its ascender line at y.
func DrawTextTop(dc *gg.Context, face font.Face, text string, x, y float64) {
	m := face.Metrics()
	dc.DrawString(text, x, y+float64(m.Ascent.Ceil()))
}

// DrawTextMiddle draws text vertically centred on y.
func DrawTextMiddle(dc *gg.Context, face font.Face, text string, x, y float64) {
	m := face.Metrics()
	ascent := float64(m.Ascent.Ceil())
	descent := float64(m.Descent.Ceil())
	dc.DrawString(text, x, y+(ascent-descent)/2)
}

func withAlpha(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
