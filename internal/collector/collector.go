package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"GiftChart/internal/calculator"
	"GiftChart/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Events     []model.ListingEvent
	Price      float64
	ListErr    error
	CurrentErr error

	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchListings(ctx context.Context, _ string) ([]model.ListingEvent, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if m.Events != nil {
		return m.Events, nil
	}
	return generateMockEvents(m.Price, 24, time.Now()), nil
}

func (m *MockFetcher) FetchCurrentPrice(ctx context.Context, _ string) (float64, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	if m.CurrentErr != nil {
		return 0, m.CurrentErr
	}
	return m.Price, nil
}

func generateMockEvents(basePrice float64, count int, now time.Time) []model.ListingEvent {
	events := make([]model.ListingEvent, count)
	step := calculator.DefaultWindow / time.Duration(count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.01)
		events[i] = model.ListingEvent{
			Price:    calculator.FormatPriceInput(p),
			ListedAt: calculator.FormatTimestamp(now.Add(-time.Duration(count-i) * step)),
		}
	}
	return events
}

// Observer receives per-call timings and normalization counts.
type Observer interface {
	ObserveSource(source, op string, d time.Duration, err error)
	ObserveNormalize(points, dropped int)
}

// Snapshot is one gift's normalized window plus the price it trades at now.
type Snapshot struct {
	Gift    string
	Series  model.Series
	Current float64
	Dropped int
	At      time.Time
}

// Collector fetches listings and turns them into a chart-ready series.
type Collector struct {
	Source     PriceSource
	Normalizer *calculator.Normalizer
	Timeout    time.Duration
	Observer   Observer
}

// NewCollector creates a new Collector.
func NewCollector(source PriceSource, normalizer *calculator.Normalizer, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Collector{Source: source, Normalizer: normalizer, Timeout: timeout}
}

// Collect fetches the listing window for gift, normalizes it and appends the
// current price point.
func (c *Collector) Collect(ctx context.Context, gift string) (*Snapshot, error) {
	var events []model.ListingEvent
	err := c.call(ctx, "listings", func(ctx context.Context) error {
		var err error
		events, err = c.Source.FetchListings(ctx, gift)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := c.Normalizer.Normalize(events)
	if c.Observer != nil {
		c.Observer.ObserveNormalize(res.Series.Len(), res.Dropped)
	}
	if res.Dropped > 0 {
		log.Printf("[WARN] %s: dropped %d of %d listing events", gift, res.Dropped, len(events))
	}
	if res.Series.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", gift, model.ErrNoDataInWindow)
	}

	var current float64
	err = c.call(ctx, "current_price", func(ctx context.Context) error {
		var err error
		current, err = c.Source.FetchCurrentPrice(ctx, gift)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Gift:    gift,
		Series:  calculator.AppendCurrent(res.Series, current, res.At, c.Normalizer.MaxPoints),
		Current: current,
		Dropped: res.Dropped,
		At:      res.At,
	}, nil
}

func (c *Collector) call(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	start := time.Now()
	err := fn(ctx)
	if c.Observer != nil {
		c.Observer.ObserveSource(c.Source.Name(), op, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.Source.Name(), op, err)
	}
	return nil
}
