// Package bot turns chat messages into price cards.
package bot

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"GiftChart/internal/generator"
	"GiftChart/internal/gifts"
	"GiftChart/internal/model"
	"GiftChart/internal/notifier"
)

// DefaultRateLimit is the minimum gap between a user's successful renders.
const DefaultRateLimit = 10 * time.Second

// Messenger sends and removes chat messages.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) (int64, error)
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
}

// CardGenerator produces a card for a resolved gift.
type CardGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// Resolver maps free text to gifts.
type Resolver interface {
	Resolve(text string) (gifts.Gift, error)
	Suggest(text string, limit int) []string
}

// RateStore remembers each user's last successful render.
type RateStore interface {
	RecordSuccess(userID int64, at time.Time) error
	LastSuccess(userID int64) (time.Time, bool, error)
}

// Metrics counts handler events.
type Metrics interface {
	IncUpdates()
	IncRateLimited()
}

// Handler answers one chat update.
type Handler struct {
	Messenger Messenger
	Generator CardGenerator
	Resolver  Resolver
	Rates     RateStore
	Metrics   Metrics // optional
	RateLimit time.Duration
	Now       func() time.Time
}

// Handle processes u and sends every reply it produces.
func (h *Handler) Handle(ctx context.Context, u notifier.Update) {
	if h.Metrics != nil {
		h.Metrics.IncUpdates()
	}
	text := strings.TrimSpace(u.Text)

	switch {
	case isStart(text):
		h.reply(ctx, u.ChatID, notifier.FormatGreeting(u.FirstName))
		return
	case text == "":
		h.reply(ctx, u.ChatID, notifier.FormatNotText())
		return
	case u.UserID == 0:
		h.reply(ctx, u.ChatID, notifier.FormatUnknownUser())
		return
	}

	if wait := h.waitFor(u.UserID); wait > 0 {
		if h.Metrics != nil {
			h.Metrics.IncRateLimited()
		}
		h.reply(ctx, u.ChatID, notifier.FormatWait(wait))
		return
	}

	gift, err := h.Resolver.Resolve(text)
	if err != nil {
		suggestions := h.Resolver.Suggest(text, gifts.DefaultSuggestions)
		h.reply(ctx, u.ChatID, notifier.FormatNotFound(gifts.Clean(text), suggestions))
		return
	}

	processingID, err := h.Messenger.SendText(ctx, u.ChatID, notifier.FormatProcessing(gift.Name))
	if err != nil {
		log.Printf("[WARN] send processing message: %v", err)
	}
	defer h.deleteMessage(ctx, u.ChatID, processingID)

	res, err := h.Generator.Generate(ctx, generator.Request{Gift: gift, UserID: u.UserID})
	if err != nil {
		h.reply(ctx, u.ChatID, FailureReply(gift.Name, err))
		return
	}

	if _, err := h.Messenger.SendPhoto(ctx, u.ChatID, res.PNG, notifier.FormatCaption(gift.Name)); err != nil {
		log.Printf("[ERROR] [%s] send photo: %v", res.RequestID, err)
		h.reply(ctx, u.ChatID, notifier.FormatFailure())
		return
	}
	if err := h.Rates.RecordSuccess(u.UserID, h.now()); err != nil {
		log.Printf("[ERROR] [%s] record success: %v", res.RequestID, err)
	}
}

// FailureReply maps a generation error to the message the user sees.
func FailureReply(gift string, err error) string {
	switch {
	case errors.Is(err, model.ErrNoDataInWindow):
		return notifier.FormatNoData(gift)
	case errors.Is(err, model.ErrNoCurrentPrice):
		return notifier.FormatNoCurrentPrice()
	case errors.Is(err, model.ErrSourceUnavailable):
		return notifier.FormatSourceDown()
	case errors.Is(err, model.ErrRenderUnavailable):
		return notifier.FormatRenderFailed()
	default:
		return notifier.FormatFailure()
	}
}

// waitFor returns how long the user still has to wait, or 0.
func (h *Handler) waitFor(userID int64) time.Duration {
	limit := h.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	last, ok, err := h.Rates.LastSuccess(userID)
	if err != nil {
		log.Printf("[WARN] read rate limit for %d: %v", userID, err)
		return 0
	}
	if !ok {
		return 0
	}
	since := h.now().Sub(last)
	if since >= limit {
		return 0
	}
	return limit - since.Truncate(time.Second)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if _, err := h.Messenger.SendText(ctx, chatID, text); err != nil {
		log.Printf("[ERROR] send reply to %d: %v", chatID, err)
	}
}

func (h *Handler) deleteMessage(ctx context.Context, chatID, messageID int64) {
	if messageID == 0 {
		return
	}
	if err := h.Messenger.DeleteMessage(ctx, chatID, messageID); err != nil {
		log.Printf("[WARN] delete message %d: %v", messageID, err)
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func isStart(text string) bool {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == "/start"
}
