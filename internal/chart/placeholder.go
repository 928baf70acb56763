package chart

import (
	"time"

	"GiftChart/internal/model"
)

// Placeholder series shape.
const (
	placeholderPoints = 24
	placeholderLow    = 5.0
	placeholderHigh   = 15.0
)

// PlaceholderSeries returns hourly demo points with prices uniform in [5, 15).
// It only keeps the drawing path exercised and never stands for real data.
func PlaceholderSeries(rnd model.RandSource, end time.Time) model.Series {
	s := make(model.Series, placeholderPoints)
	start := end.UTC().Truncate(time.Hour).Add(-time.Duration(placeholderPoints-1) * time.Hour)
	for i := range s {
		s[i] = model.PricePoint{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Price: placeholderLow + rnd.Float64()*(placeholderHigh-placeholderLow),
		}
	}
	return s
}
