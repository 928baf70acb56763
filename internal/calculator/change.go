package calculator

import "GiftChart/internal/model"

// PercentChange returns the change of current relative to the highest price in
// the series, in percent. A series with fewer than two points has nothing to
// compare against and yields exactly 0.
func PercentChange(s model.Series, current float64) float64 {
	if len(s) < 2 {
		return 0
	}
	_, high, _, _, err := PriceRange(s)
	if err != nil || high <= 0 {
		return 0
	}
	return (current - high) / high * 100
}

// NetChange returns last minus first price, 0 for fewer than two points.
func NetChange(s model.Series) float64 {
	if len(s) < 2 {
		return 0
	}
	return s.Last().Price - s.First().Price
}
