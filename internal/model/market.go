package model

import (
	"sort"
	"time"
)

// ListingEvent is a raw marketplace listing as returned by the price source.
// Fields are kept verbatim so the normalizer can reject malformed events.
type ListingEvent struct {
	Price    string
	ListedAt string
}

// PricePoint is a single time-stamped price observation.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// Series is an ordered run of price points, oldest first.
type Series []PricePoint

func (s Series) Len() int { return len(s) }

// First returns the oldest point. The series must not be empty.
func (s Series) First() PricePoint { return s[0] }

// Last returns the most recent point. The series must not be empty.
func (s Series) Last() PricePoint { return s[len(s)-1] }

// Prices returns the price column.
func (s Series) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// Clone returns a copy that shares no backing array with s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// SortStable orders the series by time, keeping fetch order on ties.
func (s Series) SortStable() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}

// IsSorted reports whether timestamps are non-decreasing.
func (s Series) IsSorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Time.Before(s[i-1].Time) {
			return false
		}
	}
	return true
}
