package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"GiftChart/internal/model"
)

// TimestampLayout is the marketplace timestamp format: UTC with a 1 to 6
// digit fractional second.
const TimestampLayout = "2006-01-02T15:04:05.999999Z"

// len("2006-01-02T15:04:05")
const secondsPrefixLen = 19

// Default window and cardinality for the 12h chart.
const (
	DefaultWindow    = 12 * time.Hour
	DefaultMaxPoints = 80
)

// Normalizer turns raw listing events into a bounded, time-ordered series.
type Normalizer struct {
	Window    time.Duration
	MaxPoints int
	Now       func() time.Time
}

// NewNormalizer creates a Normalizer using wall-clock time.
func NewNormalizer(window time.Duration, maxPoints int) *Normalizer {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &Normalizer{Window: window, MaxPoints: maxPoints, Now: time.Now}
}

// NormalizeResult is the outcome of one normalization pass.
type NormalizeResult struct {
	Series  model.Series
	Dropped int
	At      time.Time
}

// Normalize filters events to the trailing window, sorts them and downsamples
// to MaxPoints. Malformed events are dropped and counted. An empty Series in
// the result means no data was available in the window.
func (n *Normalizer) Normalize(events []model.ListingEvent) NormalizeResult {
	now := n.Now().UTC()
	from := now.Add(-n.Window)

	res := NormalizeResult{At: now}
	kept := make(model.Series, 0, len(events))
	for _, ev := range events {
		p, err := ParseEvent(ev)
		if err != nil {
			res.Dropped++
			continue
		}
		if p.Time.Before(from) || p.Time.After(now) {
			continue
		}
		kept = append(kept, p)
	}

	kept.SortStable()
	res.Series = Downsample(kept, n.MaxPoints)
	return res
}

// ParseEvent converts a raw event into a PricePoint. The returned error wraps
// model.ErrMalformedEvent.
func ParseEvent(ev model.ListingEvent) (model.PricePoint, error) {
	if ev.ListedAt == "" || ev.Price == "" {
		return model.PricePoint{}, fmt.Errorf("%w: missing field", model.ErrMalformedEvent)
	}
	if !hasMicrosFraction(ev.ListedAt) {
		return model.PricePoint{}, fmt.Errorf("%w: timestamp %q: want 1 to 6 fractional digits", model.ErrMalformedEvent, ev.ListedAt)
	}
	t, err := time.Parse(TimestampLayout, ev.ListedAt)
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("%w: timestamp %q: %v", model.ErrMalformedEvent, ev.ListedAt, err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(ev.Price), 64)
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("%w: price %q: %v", model.ErrMalformedEvent, ev.Price, err)
	}
	if price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		return model.PricePoint{}, fmt.Errorf("%w: price %v out of range", model.ErrMalformedEvent, price)
	}
	return model.PricePoint{Time: t.UTC(), Price: price}, nil
}

// hasMicrosFraction reports whether ts ends in ".<1-6 digits>Z" right after
// the seconds field. time.Parse alone accepts a missing or longer fraction.
func hasMicrosFraction(ts string) bool {
	if len(ts) < secondsPrefixLen+3 || ts[secondsPrefixLen] != '.' || !strings.HasSuffix(ts, "Z") {
		return false
	}
	digits := ts[secondsPrefixLen+1 : len(ts)-1]
	if len(digits) < 1 || len(digits) > 6 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Downsample keeps every step-th point (step = len/max) starting at index 0,
// truncates to max and pins the final original point into the last slot.
// Series already within max are returned unchanged.
func Downsample(s model.Series, max int) model.Series {
	if max <= 0 || len(s) <= max {
		return s
	}
	step := len(s) / max
	out := make(model.Series, 0, max)
	for i := 0; i < len(s) && len(out) < max; i += step {
		out = append(out, s[i])
	}
	out[len(out)-1] = s[len(s)-1]
	return out
}

// AppendCurrent returns a copy of s with a synthetic point carrying price at
// time at, added only when s is non-empty and price differs from the last
// recorded price. A full series is downsampled to max-1 first so the result
// still fits in max points. With max == 1 there is no room for the synthetic
// point and the series is only downsampled. max <= 0 means unbounded.
func AppendCurrent(s model.Series, price float64, at time.Time, max int) model.Series {
	out := s.Clone()
	if max == 1 {
		return Downsample(out, max)
	}
	if len(out) == 0 || out.Last().Price == price {
		return out
	}
	if max > 1 && len(out) >= max {
		out = Downsample(out, max-1)
	}
	out = append(out, model.PricePoint{Time: at.UTC(), Price: price})
	out.SortStable()
	return out
}

// FormatTimestamp renders t in the marketplace timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}

// FormatPriceInput renders a price the way the marketplace sends it.
func FormatPriceInput(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
