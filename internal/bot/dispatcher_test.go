package bot

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"GiftChart/internal/generator"
	"GiftChart/internal/notifier"
)

type generatorFunc func(ctx context.Context)

func (f generatorFunc) Generate(ctx context.Context, _ generator.Request) (*generator.Result, error) {
	f(ctx)
	return &generator.Result{RequestID: "req", PNG: []byte("png")}, nil
}

func TestDispatcher_BoundsConcurrency(t *testing.T) {
	h, m, _, _ := newTestHandler()

	var active, peak atomic.Int32
	h.Generator = generatorFunc(func(context.Context) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		active.Add(-1)
	})

	d := NewDispatcher(h, 2, time.Second)
	for i := 0; i < 6; i++ {
		u := msg("plush pepe")
		u.UserID = int64(i + 1)
		d.Dispatch(context.Background(), u)
	}
	d.Wait()

	if p := peak.Load(); p != 2 {
		t.Errorf("peak concurrency = %d, want 2", p)
	}
	photos := 0
	for _, s := range m.sent {
		if s.kind == "photo" {
			photos++
		}
	}
	if photos != 6 {
		t.Errorf("expected 6 photos, got %d", photos)
	}
}

func TestDispatcher_CancelledContext(t *testing.T) {
	h, m, _, _ := newTestHandler()
	d := NewDispatcher(h, 1, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, notifier.Update{UpdateID: 1, ChatID: 1, Text: "/start"})
	d.Wait()
	if len(m.sent) != 0 {
		t.Error("update dispatched after cancellation")
	}
}
