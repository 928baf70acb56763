package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionRefresher renews marketplace auth data.
type SessionRefresher interface {
	Refresh(ctx context.Context) (string, error)
}

// RateLimitPruner drops stale rate-limit rows.
type RateLimitPruner interface {
	PruneRateLimits(before time.Time) (int64, error)
}

// Alerter delivers operator alerts.
type Alerter interface {
	SendWithRetry(ctx context.Context, chatID int64, text string, maxRetries int) (int64, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Session     SessionRefresher
	Pruner      RateLimitPruner
	Alerter     Alerter // optional
	AdminChatID int64
	// RetainFor is how long a rate-limit row outlives the last success.
	RetainFor time.Duration
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, session SessionRefresher, pruner RateLimitPruner, alerter Alerter, adminChatID int64) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Session:     session,
		Pruner:      pruner,
		Alerter:     alerter,
		AdminChatID: adminChatID,
		RetainFor:   time.Hour,
		Ctx:         ctx,
	}
}

// RegisterAll registers the session refresh and rate-limit pruning tasks.
// An empty cron expression disables that task.
func (s *Scheduler) RegisterAll(refreshCron, pruneCron string) error {
	if refreshCron != "" {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register session refresh: %w", err)
		}
	}
	if pruneCron != "" {
		if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
			return fmt.Errorf("register rate limit prune: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RefreshNow renews the session immediately (for RUN_ON_START).
func (s *Scheduler) RefreshNow() error {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	if err := s.refresh(); err != nil {
		s.trySend(fmt.Sprintf("❌ Marketplace session refresh failed: %v", err))
	}
}

func (s *Scheduler) refresh() error {
	log.Println("[INFO] refreshing marketplace session")
	ctx, cancel := context.WithTimeout(s.Ctx, time.Minute)
	defer cancel()
	if _, err := s.Session.Refresh(ctx); err != nil {
		log.Printf("[ERROR] session refresh: %v", err)
		return err
	}
	return nil
}

func (s *Scheduler) pruneTask() {
	n, err := s.Pruner.PruneRateLimits(time.Now().Add(-s.RetainFor))
	if err != nil {
		log.Printf("[ERROR] prune rate limits: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] pruned %d rate limit rows", n)
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Alerter == nil || s.AdminChatID == 0 {
		return
	}
	if _, err := s.Alerter.SendWithRetry(s.Ctx, s.AdminChatID, text, 3); err != nil {
		log.Printf("[ERROR] send alert: %v", err)
	}
}
