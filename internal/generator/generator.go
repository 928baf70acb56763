// Package generator runs the whole card pipeline for one request.
package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/google/uuid"

	"GiftChart/internal/card"
	"GiftChart/internal/chart"
	"GiftChart/internal/collector"
	"GiftChart/internal/gifts"
	"GiftChart/internal/model"
	"GiftChart/internal/recorder"
)

// Snapshotter produces the normalized series for a gift.
type Snapshotter interface {
	Collect(ctx context.Context, gift string) (*collector.Snapshot, error)
}

// IconFetcher downloads a gift icon by id.
type IconFetcher interface {
	FetchIcon(ctx context.Context, id string) (image.Image, error)
}

// Metrics receives per-request outcomes.
type Metrics interface {
	ObserveRender(err error, d time.Duration)
	ObserveIcon(origin string)
}

// History stores finished renders.
type History interface {
	RecordRender(evt *recorder.RenderEvent) error
}

// Request asks for one card.
type Request struct {
	Gift   gifts.Gift
	UserID int64
}

// Result is a finished card.
type Result struct {
	RequestID   string
	PNG         []byte
	Card        model.CardModel
	Points      int
	Placeholder bool
	Duration    time.Duration
}

// Generator wires collector, renderer and composer together.
type Generator struct {
	Collector   Snapshotter
	Renderer    *chart.Renderer
	Composer    *card.Composer
	Icons       IconFetcher // optional
	IconTimeout time.Duration
	Rates       card.Rates
	Rand        model.RandSource
	Metrics     Metrics // optional
	History     History // optional
	Now         func() time.Time
}

// Generate collects, renders and composes a card for req. Errors wrap the
// model sentinels; nothing is retried.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	id := uuid.NewString()
	start := time.Now()
	log.Printf("[INFO] [%s] generating card for %q (user %d)", id, req.Gift.Name, req.UserID)

	res, err := g.generate(ctx, id, req)
	elapsed := time.Since(start)
	if g.Metrics != nil {
		g.Metrics.ObserveRender(err, elapsed)
	}
	g.record(id, req, res, err, elapsed)

	if err != nil {
		log.Printf("[WARN] [%s] %s: %v", id, model.Outcome(err), err)
		return nil, fmt.Errorf("request %s: %w", id, err)
	}
	res.Duration = elapsed
	log.Printf("[INFO] [%s] card ready: %d points, %d bytes, %v", id, res.Points, len(res.PNG), elapsed.Round(time.Millisecond))
	return res, nil
}

func (g *Generator) generate(ctx context.Context, id string, req Request) (*Result, error) {
	snap, err := g.Collector.Collect(ctx, req.Gift.Name)
	if err != nil {
		return nil, err
	}

	rendered, err := g.Renderer.Render(snap.Series)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	cm := card.NewCardModel(req.Gift.Name, req.Gift.ID, snap.Series, snap.Current, g.Rates, card.PickBackdrop(g.Rand), g.now())
	img, err := g.Composer.Compose(card.Input{Card: cm, Chart: rendered.Image, Icon: g.icon(ctx, id, req.Gift)})
	if err != nil {
		return nil, fmt.Errorf("compose card: %w", err)
	}
	data, err := card.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrRenderUnavailable, err)
	}

	return &Result{
		RequestID:   id,
		PNG:         data,
		Card:        cm,
		Points:      snap.Series.Len(),
		Placeholder: rendered.Placeholder,
	}, nil
}

// icon tries the icon source, then the bundled asset. A card without an
// icon is still a valid card.
func (g *Generator) icon(ctx context.Context, id string, gift gifts.Gift) image.Image {
	if g.Icons != nil && gift.ID != "" {
		timeout := g.IconTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ictx, cancel := context.WithTimeout(ctx, timeout)
		img, err := g.Icons.FetchIcon(ictx, gift.ID)
		cancel()
		if err == nil {
			g.observeIcon("remote")
			return img
		}
		if !errors.Is(err, model.ErrIconNotFound) {
			log.Printf("[WARN] [%s] icon fetch failed: %v", id, err)
		}
	}
	if img := g.Composer.LocalIcon(gift.Name); img != nil {
		g.observeIcon("local")
		return img
	}
	g.observeIcon("none")
	return nil
}

func (g *Generator) observeIcon(origin string) {
	if g.Metrics != nil {
		g.Metrics.ObserveIcon(origin)
	}
}

func (g *Generator) record(id string, req Request, res *Result, err error, d time.Duration) {
	if g.History == nil {
		return
	}
	evt := &recorder.RenderEvent{
		RequestID: id,
		UserID:    req.UserID,
		Gift:      req.Gift.Name,
		Outcome:   model.Outcome(err),
		Duration:  d,
	}
	if res != nil {
		evt.PriceTON = res.Card.PriceTON
		evt.PercentChange = res.Card.PercentChange
		evt.Points = res.Points
	}
	if err := g.History.RecordRender(evt); err != nil {
		log.Printf("[ERROR] [%s] record render: %v", id, err)
	}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
