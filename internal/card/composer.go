// Package card lays a rendered chart and the price summary onto the final
// shareable image.
package card

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	_ "golang.org/x/image/webp"

	"GiftChart/internal/chart"
	"GiftChart/internal/model"
)

// Card geometry.
const (
	BackgroundWidth  = 1280
	BackgroundHeight = 800
	CardWidth        = 1119
	CardHeight       = 645
	cardRadius       = 69

	giftIconSize = 120
	tonIconSize  = 130

	chartMargin       = 120
	chartHeight       = 180
	chartBottomMargin = 220

	frameWidth  = 140
	frameHeight = 50
	frameMargin = 30
	frameRadius = 15
)

// Font sizes.
const (
	titleFontSize     = 70
	tonFontSize       = 100
	unitFontSize      = 40
	timeFontSize      = 18
	percentFontSize   = 36
	watermarkFontSize = 50
)

var (
	titleColor = color.NRGBA{0x3B, 0x3B, 0x3B, 0xFF}
	priceColor = color.NRGBA{20, 20, 20, 255}
	white      = color.NRGBA{255, 255, 255, 255}

	giftIconPos = image.Pt(40, 40)
	titlePos    = image.Pt(180, 60)
	tonIconPos  = image.Pt(70, 165)
	tonPricePos = image.Pt(190, 170)
	usdPos      = image.Pt(120, 290)
	starsPos    = image.Pt(375, 290)
	chartPos    = image.Pt(60, CardHeight-chartBottomMargin)
)

// DefaultWatermark is drawn above the card unless configured otherwise.
const DefaultWatermark = "@GiftChartBot"

// Composer draws the final card.
type Composer struct {
	Fonts     *chart.FontBook
	AssetDir  string
	Watermark string

	tonIcon image.Image
}

// NewComposer creates a Composer. The TON icon is read from assetDir once;
// a missing icon is logged and left out of every card.
func NewComposer(fonts *chart.FontBook, assetDir, watermark string) *Composer {
	c := &Composer{Fonts: fonts, AssetDir: assetDir, Watermark: watermark}
	icon, err := loadImage(filepath.Join(assetDir, "ton.png"))
	if err != nil {
		log.Printf("[WARN] ton icon unavailable: %v", err)
	} else {
		c.tonIcon = icon
	}
	return c
}

// LocalIcon returns the bundled icon for a gift, or nil if there is none.
func (c *Composer) LocalIcon(giftName string) image.Image {
	if c.AssetDir == "" || giftName == "" {
		return nil
	}
	icon, err := loadImage(filepath.Join(c.AssetDir, "gifts", giftName+".png"))
	if err != nil {
		return nil
	}
	return icon
}

// Input is everything one card needs.
type Input struct {
	Card  model.CardModel
	Chart image.Image
	Icon  image.Image // optional
}

type faces struct {
	title, ton, unit, time, percent, watermark font.Face
}

func (f *faces) close() {
	for _, face := range []font.Face{f.title, f.ton, f.unit, f.time, f.percent, f.watermark} {
		if face != nil {
			face.Close()
		}
	}
}

func (c *Composer) loadFaces() (*faces, error) {
	if c.Fonts == nil {
		return nil, fmt.Errorf("%w: no font loaded", model.ErrRenderUnavailable)
	}
	f := &faces{}
	for _, slot := range []struct {
		dst  *font.Face
		size float64
	}{
		{&f.title, titleFontSize},
		{&f.ton, tonFontSize},
		{&f.unit, unitFontSize},
		{&f.time, timeFontSize},
		{&f.percent, percentFontSize},
		{&f.watermark, watermarkFontSize},
	} {
		face, err := c.Fonts.Face(slot.size)
		if err != nil {
			f.close()
			return nil, err
		}
		*slot.dst = face
	}
	return f, nil
}

// Compose draws the backdrop, the white card and its contents.
func (c *Composer) Compose(in Input) (image.Image, error) {
	if in.Chart == nil {
		return nil, fmt.Errorf("%w: no chart image", model.ErrRenderUnavailable)
	}
	f, err := c.loadFaces()
	if err != nil {
		return nil, err
	}
	defer f.close()

	bg := gg.NewContext(BackgroundWidth, BackgroundHeight)
	grad := gg.NewLinearGradient(0, 0, 0, BackgroundHeight)
	grad.AddColorStop(0, in.Card.Backdrop.Center)
	grad.AddColorStop(1, in.Card.Backdrop.Edge)
	bg.SetFillStyle(grad)
	bg.DrawRectangle(0, 0, BackgroundWidth, BackgroundHeight)
	bg.Fill()

	if c.Watermark != "" {
		bg.SetFontFace(f.watermark)
		bg.SetColor(white)
		w, _ := bg.MeasureString(c.Watermark)
		chart.DrawTextTop(bg, f.watermark, c.Watermark, (BackgroundWidth-w)/2, 10)
	}

	bg.DrawImage(c.drawCard(in, f), (BackgroundWidth-CardWidth)/2, (BackgroundHeight-CardHeight)/2)
	return bg.Image(), nil
}

func (c *Composer) drawCard(in Input, f *faces) image.Image {
	dc := gg.NewContext(CardWidth, CardHeight)
	dc.DrawRoundedRectangle(0, 0, CardWidth, CardHeight, cardRadius)
	dc.SetColor(white)
	dc.Fill()

	if in.Icon != nil {
		dc.DrawImage(Scale(in.Icon, giftIconSize, giftIconSize), giftIconPos.X, giftIconPos.Y)
	}

	dc.SetFontFace(f.title)
	dc.SetColor(titleColor)
	chart.DrawTextTop(dc, f.title, DisplayName(in.Card.GiftName), float64(titlePos.X), float64(titlePos.Y))

	if c.tonIcon != nil {
		dc.DrawImage(Scale(c.tonIcon, tonIconSize, tonIconSize), tonIconPos.X, tonIconPos.Y)
	}
	dc.SetColor(priceColor)
	dc.SetFontFace(f.ton)
	chart.DrawTextTop(dc, f.ton, FormatTON(in.Card.PriceTON), float64(tonPricePos.X), float64(tonPricePos.Y))
	dc.SetFontFace(f.unit)
	chart.DrawTextTop(dc, f.unit, FormatUSD(in.Card.PriceUSD), float64(usdPos.X), float64(usdPos.Y))
	chart.DrawTextTop(dc, f.unit, FormatStars(in.Card.PriceStars), float64(starsPos.X), float64(starsPos.Y))

	dc.DrawImage(Scale(in.Chart, CardWidth-chartMargin, chartHeight), chartPos.X, chartPos.Y)

	stamp := in.Card.Timestamp.UTC().Format(TimestampLayout)
	dc.SetFontFace(f.time)
	dc.SetColor(chart.LabelColor)
	w, _ := dc.MeasureString(stamp)
	chart.DrawTextTop(dc, f.time, stamp, float64(int(CardWidth-w)/2), CardHeight-30)

	drawBadge(dc, f.percent, PercentBadge(in.Card.PercentChange))
	return dc.Image()
}

func drawBadge(dc *gg.Context, face font.Face, badge Badge) {
	x := float64(CardWidth - frameWidth - frameMargin)
	y := float64(frameMargin)
	dc.DrawRoundedRectangle(x, y, frameWidth, frameHeight, frameRadius)
	dc.SetColor(white)
	dc.Fill()

	dc.SetFontFace(face)
	dc.SetColor(badge.Color)
	w, _ := dc.MeasureString(badge.Text)
	chart.DrawTextMiddle(dc, face, badge.Text, x+(frameWidth-w)/2, y+frameHeight/2-2)
}

// Scale resizes src to w x h.
func Scale(src image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// EncodePNG encodes img into PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes PNG, JPEG or WebP bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func loadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}
