package calculator

import (
	"errors"
	"math"

	"GiftChart/internal/model"
)

// flatPadding is applied on both sides of a zero-height price range.
const flatPadding = 1.0

// rangePadRatio pads a non-flat range by this share of its span on both ends.
const rangePadRatio = 0.1

// PriceRange scans the series and returns the lowest and highest price with
// the index of their first occurrence.
func PriceRange(s model.Series) (min, max float64, minIdx, maxIdx int, err error) {
	if len(s) == 0 {
		return 0, 0, 0, 0, errors.New("empty series")
	}
	min = math.Inf(1)
	max = math.Inf(-1)
	for i, p := range s {
		if p.Price < min {
			min, minIdx = p.Price, i
		}
		if p.Price > max {
			max, maxIdx = p.Price, i
		}
	}
	return min, max, minIdx, maxIdx, nil
}

// PaddedRange widens [min, max] so a curve never touches the canvas edges.
func PaddedRange(min, max float64) (lo, hi float64) {
	pad := flatPadding
	if span := max - min; span > 0 {
		pad = span * rangePadRatio
	}
	return min - pad, max + pad
}

// Position returns where price sits within [lo, hi] (0.0~1.0).
func Position(price, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	pos := (price - lo) / (hi - lo)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
