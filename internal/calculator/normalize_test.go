package calculator

import (
	"errors"
	"testing"
	"time"

	"GiftChart/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNormalizer(maxPoints int) *Normalizer {
	n := NewNormalizer(12*time.Hour, maxPoints)
	n.Now = func() time.Time { return testNow }
	return n
}

func event(ago time.Duration, price string) model.ListingEvent {
	return model.ListingEvent{Price: price, ListedAt: FormatTimestamp(testNow.Add(-ago))}
}

func TestNormalize_ThreeEventsUnordered(t *testing.T) {
	events := []model.ListingEvent{
		event(4*time.Hour, "12"),
		event(0, "9"),
		event(8*time.Hour, "10"),
	}
	res := fixedNormalizer(80).Normalize(events)
	if res.Series.Len() != 3 {
		t.Fatalf("expected 3 points, got %d", res.Series.Len())
	}
	want := []float64{10, 12, 9}
	for i, p := range res.Series {
		if p.Price != want[i] {
			t.Errorf("point %d: expected price %.0f, got %.0f", i, want[i], p.Price)
		}
	}
	if !res.Series.IsSorted() {
		t.Error("expected ascending timestamps")
	}
	if NetChange(res.Series) >= 0 {
		t.Errorf("expected downward net change, got %.2f", NetChange(res.Series))
	}
}

func TestNormalize_WindowIsClosedInterval(t *testing.T) {
	events := []model.ListingEvent{
		event(12*time.Hour, "1"),
		event(12*time.Hour+time.Second, "2"),
		event(0, "3"),
		event(-time.Minute, "4"),
	}
	res := fixedNormalizer(80).Normalize(events)
	if res.Series.Len() != 2 {
		t.Fatalf("expected 2 points inside window, got %d", res.Series.Len())
	}
	if res.Series.First().Price != 1 || res.Series.Last().Price != 3 {
		t.Errorf("unexpected boundary points: %+v", res.Series)
	}
	if res.Dropped != 0 {
		t.Errorf("out-of-window events must not count as malformed, got %d", res.Dropped)
	}
}

func TestNormalize_MalformedEventsDropped(t *testing.T) {
	events := []model.ListingEvent{
		{Price: "5", ListedAt: "yesterday"},
		{Price: "", ListedAt: FormatTimestamp(testNow)},
		{Price: "abc", ListedAt: FormatTimestamp(testNow)},
		{Price: "-2", ListedAt: FormatTimestamp(testNow)},
		{Price: "NaN", ListedAt: FormatTimestamp(testNow)},
		event(time.Hour, "7.5"),
	}
	res := fixedNormalizer(80).Normalize(events)
	if res.Dropped != 5 {
		t.Errorf("expected 5 dropped events, got %d", res.Dropped)
	}
	if res.Series.Len() != 1 || res.Series.First().Price != 7.5 {
		t.Errorf("expected only the valid event to survive, got %+v", res.Series)
	}
}

func TestNormalize_EmptyWindow(t *testing.T) {
	res := fixedNormalizer(80).Normalize([]model.ListingEvent{event(48*time.Hour, "3")})
	if res.Series.Len() != 0 {
		t.Errorf("expected empty series, got %d points", res.Series.Len())
	}
}

func TestNormalize_StableOnEqualTimestamps(t *testing.T) {
	ts := FormatTimestamp(testNow.Add(-time.Hour))
	events := []model.ListingEvent{
		{Price: "1", ListedAt: ts},
		{Price: "2", ListedAt: ts},
		{Price: "3", ListedAt: ts},
	}
	res := fixedNormalizer(80).Normalize(events)
	for i, p := range res.Series {
		if p.Price != float64(i+1) {
			t.Errorf("tie order not preserved at %d: %.0f", i, p.Price)
		}
	}
}

func TestNormalize_TwoHundredEvents(t *testing.T) {
	events := make([]model.ListingEvent, 0, 200)
	span := 12 * time.Hour
	for i := 0; i < 200; i++ {
		ago := span - time.Duration(i)*span/199
		events = append(events, event(ago, priceString(i)))
	}
	res := fixedNormalizer(80).Normalize(events)
	if res.Series.Len() > 80 {
		t.Fatalf("expected at most 80 points, got %d", res.Series.Len())
	}
	if !res.Series.IsSorted() {
		t.Error("expected ascending timestamps")
	}
	if res.Series.First().Price != 1 {
		t.Errorf("first original event lost: %.0f", res.Series.First().Price)
	}
	if res.Series.Last().Price != 200 {
		t.Errorf("last original event lost: %.0f", res.Series.Last().Price)
	}
}

func priceString(i int) string {
	return FormatPriceInput(float64(i + 1))
}

func TestDownsample(t *testing.T) {
	tests := []struct {
		name  string
		count int
		max   int
		want  int
	}{
		{"under limit", 50, 80, 50},
		{"at limit", 80, 80, 80},
		{"step one truncates", 100, 80, 80},
		{"step two", 200, 80, 80},
		{"step three short", 250, 80, 80},
		{"step two with remainder", 170, 80, 80},
	}
	for _, tt := range tests {
		s := makeSeries(tt.count)
		got := Downsample(s, tt.max)
		if got.Len() != tt.want {
			t.Errorf("%s: expected %d points, got %d", tt.name, tt.want, got.Len())
		}
		if got.First() != s.First() || got.Last() != s.Last() {
			t.Errorf("%s: endpoints not preserved", tt.name)
		}
		if !got.IsSorted() {
			t.Errorf("%s: not sorted", tt.name)
		}
	}
}

func TestDownsample_Idempotent(t *testing.T) {
	s := makeSeries(60)
	once := Downsample(s, 80)
	twice := Downsample(once, 80)
	if once.Len() != 60 || twice.Len() != 60 {
		t.Fatalf("expected no-op, got %d then %d", once.Len(), twice.Len())
	}
	for i := range s {
		if twice[i] != s[i] {
			t.Fatalf("point %d changed", i)
		}
	}
}

func TestDownsample_PreservesValues(t *testing.T) {
	s := makeSeries(200)
	got := Downsample(s, 80)
	for i, p := range got[:len(got)-1] {
		if p != s[i*2] {
			t.Errorf("slot %d: expected original index %d", i, i*2)
		}
	}
}

func TestAppendCurrent(t *testing.T) {
	base := makeSeries(3)
	at := testNow.Add(time.Minute)

	same := AppendCurrent(base, base.Last().Price, at, 80)
	if same.Len() != 3 {
		t.Errorf("equal price must not append, got %d points", same.Len())
	}

	added := AppendCurrent(base, 99, at, 80)
	if added.Len() != 4 || added.Last().Price != 99 || !added.Last().Time.Equal(at) {
		t.Errorf("expected synthetic point at the end, got %+v", added.Last())
	}
	if base.Len() != 3 {
		t.Error("input series was mutated")
	}

	if got := AppendCurrent(nil, 5, at, 80); got.Len() != 0 {
		t.Errorf("empty series must stay empty, got %d", got.Len())
	}
}

func TestAppendCurrent_ResortsOutOfOrderPoint(t *testing.T) {
	base := makeSeries(3)
	early := base.First().Time.Add(-time.Hour)
	got := AppendCurrent(base, 42, early, 80)
	if !got.IsSorted() {
		t.Fatal("expected series to be re-sorted")
	}
	if got.First().Price != 42 {
		t.Errorf("expected synthetic point first, got %.0f", got.First().Price)
	}
}

func TestAppendCurrent_FullSeriesKeepsBound(t *testing.T) {
	base := makeSeries(80)
	got := AppendCurrent(base, 999, testNow.Add(time.Minute), 80)
	if got.Len() != 80 {
		t.Fatalf("expected 80 points, got %d", got.Len())
	}
	if got.Last().Price != 999 {
		t.Errorf("expected synthetic point last, got %.0f", got.Last().Price)
	}
	if got[78] != base.Last() {
		t.Error("expected last recorded point to survive")
	}
}

func TestParseEvent_WrapsMalformed(t *testing.T) {
	_, err := ParseEvent(model.ListingEvent{Price: "1", ListedAt: "2025-01-01 10:00"})
	if !errors.Is(err, model.ErrMalformedEvent) {
		t.Errorf("expected ErrMalformedEvent, got %v", err)
	}
	p, err := ParseEvent(model.ListingEvent{Price: " 3.25 ", ListedAt: "2025-01-01T10:00:00.5Z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Price != 3.25 || p.Time.Hour() != 10 {
		t.Errorf("unexpected point %+v", p)
	}
}

func makeSeries(n int) model.Series {
	s := make(model.Series, n)
	start := testNow.Add(-12 * time.Hour)
	for i := range s {
		s[i] = model.PricePoint{Time: start.Add(time.Duration(i) * time.Minute), Price: float64(i + 1)}
	}
	return s
}

func TestParseEvent_FractionDigits(t *testing.T) {
	tests := []struct {
		ts string
		ok bool
	}{
		{"2025-01-01T11:00:00.1Z", true},
		{"2025-01-01T11:00:00.123456Z", true},
		{"2025-01-01T11:00:00Z", false},
		{"2025-01-01T11:00:00.Z", false},
		{"2025-01-01T11:00:00.1234567Z", false},
		{"2025-01-01T11:00:00.12a4Z", false},
		{"2025-01-01T11:00:00.123456", false},
	}
	for _, tt := range tests {
		_, err := ParseEvent(model.ListingEvent{Price: "1", ListedAt: tt.ts})
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.ts, err)
		}
		if !tt.ok && !errors.Is(err, model.ErrMalformedEvent) {
			t.Errorf("%s: expected ErrMalformedEvent, got %v", tt.ts, err)
		}
	}
}

func TestNormalize_DropsTimestampsWithoutFraction(t *testing.T) {
	n := NewNormalizer(12*time.Hour, 80)
	n.Now = func() time.Time { return testNow }
	at := testNow.Add(-time.Hour)
	res := n.Normalize([]model.ListingEvent{
		{Price: "1", ListedAt: FormatTimestamp(at)},
		{Price: "2", ListedAt: at.Format("2006-01-02T15:04:05Z")},
		{Price: "3", ListedAt: at.Format("2006-01-02T15:04:05.0000000Z")},
	})
	if res.Series.Len() != 1 || res.Dropped != 2 {
		t.Errorf("expected 1 kept and 2 dropped, got %d and %d", res.Series.Len(), res.Dropped)
	}
}

func TestAppendCurrent_SinglePointBound(t *testing.T) {
	base := makeSeries(80)
	got := AppendCurrent(base, 999, testNow, 1)
	if got.Len() != 1 {
		t.Fatalf("expected 1 point, got %d", got.Len())
	}
	if got[0] != base.Last() {
		t.Errorf("expected last recorded point, got %+v", got[0])
	}
	if got := AppendCurrent(makeSeries(3), 999, testNow, 0); got.Len() != 4 {
		t.Errorf("max 0 should not bound the series, got %d", got.Len())
	}
}
