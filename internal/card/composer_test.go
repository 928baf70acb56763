package card

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"GiftChart/internal/chart"
	"GiftChart/internal/model"
)

func testComposer(t *testing.T, assetDir string) *Composer {
	t.Helper()
	fb, err := chart.LoadFont([]string{chart.BuiltinPrefix + "gobold"})
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	return NewComposer(fb, assetDir, DefaultWatermark)
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func testInput() Input {
	return Input{
		Card: model.CardModel{
			GiftName:      "plush pepe",
			PriceTON:      12.5,
			PriceStars:    2358,
			PriceUSD:      36.25,
			PercentChange: 4.2,
			Timestamp:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Backdrop:      Backdrops[len(Backdrops)-1],
		},
		Chart: solid(1500, 220, color.White),
	}
}

func TestCompose_Bounds(t *testing.T) {
	c := testComposer(t, t.TempDir())
	img, err := c.Compose(testInput())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != BackgroundWidth || b.Dy() != BackgroundHeight {
		t.Errorf("unexpected bounds %v", b)
	}

	// Corner pixel is backdrop, centre of the card is white.
	_, _, bl, _ := img.At(2, BackgroundHeight-2).RGBA()
	edge := Backdrops[len(Backdrops)-1].Edge
	if diff := int(bl>>8) - int(edge.B); diff > 6 || diff < -6 {
		t.Errorf("bottom corner blue = %d, want about %d", bl>>8, edge.B)
	}
	r, g, b, _ := img.At(BackgroundWidth/2, BackgroundHeight/2+150).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("card body is not white: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestCompose_WithIcons(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ton.png"), solid(16, 16, color.RGBA{0, 136, 204, 255}))
	c := testComposer(t, dir)
	if c.tonIcon == nil {
		t.Fatal("ton icon not loaded")
	}
	in := testInput()
	in.Icon = solid(64, 64, color.RGBA{255, 0, 0, 255})
	img, err := c.Compose(in)
	if err != nil {
		t.Fatal(err)
	}
	cardX := (BackgroundWidth - CardWidth) / 2
	cardY := (BackgroundHeight - CardHeight) / 2
	r, g, b, _ := img.At(cardX+giftIconPos.X+60, cardY+giftIconPos.Y+60).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("gift icon not drawn: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestCompose_MissingInputs(t *testing.T) {
	c := testComposer(t, "")
	in := testInput()
	in.Chart = nil
	if _, err := c.Compose(in); !errors.Is(err, model.ErrRenderUnavailable) {
		t.Errorf("expected ErrRenderUnavailable without chart, got %v", err)
	}

	noFont := NewComposer(nil, "", "")
	if _, err := noFont.Compose(testInput()); !errors.Is(err, model.ErrRenderUnavailable) {
		t.Errorf("expected ErrRenderUnavailable without font, got %v", err)
	}
}

func TestLocalIcon(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gifts"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "gifts", "Plush Pepe.png"), solid(8, 8, color.Black))
	c := testComposer(t, dir)
	if c.LocalIcon("Plush Pepe") == nil {
		t.Error("expected bundled icon")
	}
	if c.LocalIcon("Unknown") != nil {
		t.Error("expected nil for a missing icon")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	data, err := EncodePNG(solid(10, 5, color.White))
	if err != nil {
		t.Fatal(err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestScale(t *testing.T) {
	out := Scale(solid(4, 4, color.White), 12, 6)
	if b := out.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}
