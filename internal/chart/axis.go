package chart

import "GiftChart/internal/model"

// TimeLabelLayout formats time-axis labels.
const TimeLabelLayout = "15:04"

// DefaultLabelCount is the number of time-axis samples.
const DefaultLabelCount = 5

// AxisLabel is one time-axis label centred at X.
type AxisLabel struct {
	Text string
	X    float64
}

// AxisLabels samples count evenly spaced indices of s and returns their UTC
// clock labels. Samples that format to the same text are merged into one
// label at the average of their x positions. Series shorter than two points
// get no labels.
func AxisLabels(s model.Series, c Canvas, count int) []AxisLabel {
	n := len(s)
	if n < 2 || count < 2 {
		return nil
	}
	step := float64(n-1) / float64(count-1)
	maxX := float64(c.Width) - c.Right - 10

	var order []string
	xs := make(map[string][]float64)
	for i := 0; i < count; i++ {
		idx := int(float64(i) * step)
		if idx > n-1 {
			idx = n - 1
		}
		text := s[idx].Time.UTC().Format(TimeLabelLayout)
		x := clamp(c.Left+float64(i)*(c.UsableWidth()/float64(count-1)), c.Left, maxX)
		if _, seen := xs[text]; !seen {
			order = append(order, text)
		}
		xs[text] = append(xs[text], x)
	}

	labels := make([]AxisLabel, 0, len(order))
	for _, text := range order {
		sum := 0.0
		for _, x := range xs[text] {
			sum += x
		}
		labels = append(labels, AxisLabel{Text: text, X: sum / float64(len(xs[text]))})
	}
	return labels
}
