package recorder

import "time"

// RenderEvent records one finished render request.
type RenderEvent struct {
	RequestID     string
	UserID        int64
	Gift          string
	PriceTON      float64
	PercentChange float64
	Points        int
	Outcome       string // model.Outcome label
	Duration      time.Duration
}

// Recorder persists per-user rate-limit state and render history.
type Recorder interface {
	// RecordSuccess stores at as the user's last successful render.
	RecordSuccess(userID int64, at time.Time) error
	// LastSuccess returns the user's last successful render, if any.
	LastSuccess(userID int64) (time.Time, bool, error)
	RecordRender(evt *RenderEvent) error
	// PruneRateLimits deletes last-success rows older than before.
	PruneRateLimits(before time.Time) (int64, error)
	Close() error
}
