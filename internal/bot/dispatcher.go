package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"GiftChart/internal/notifier"
)

// Dispatcher runs each update on its own goroutine, at most a fixed number at a time.
type Dispatcher struct {
	handler *Handler
	sem     *semaphore.Weighted
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher bounds concurrent updates to maxConcurrent and each update
// to timeout.
func NewDispatcher(h *Handler, maxConcurrent int64, timeout time.Duration) *Dispatcher {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Dispatcher{handler: h, sem: semaphore.NewWeighted(maxConcurrent), timeout: timeout}
}

// Dispatch blocks until a slot frees up, then handles u in the background.
// It matches notifier.UpdateHandler.
func (d *Dispatcher) Dispatch(ctx context.Context, u notifier.Update) {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		log.Printf("[WARN] dropping update %d: %v", u.UpdateID, err)
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERROR] update %d panicked: %v", u.UpdateID, r)
			}
		}()

		// In-flight updates finish even after shutdown starts.
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		d.handler.Handle(hctx, u)
	}()
}

// Wait blocks until every dispatched update has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
