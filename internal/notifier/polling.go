package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Update is an incoming chat message.
type Update struct {
	UpdateID  int
	ChatID    int64
	UserID    int64 // 0 when the sender is unknown
	FirstName string
	Text      string // empty for stickers, photos and other non-text messages
}

// UpdateHandler is called for every received message.
type UpdateHandler func(ctx context.Context, u Update)

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From *struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"from"`
	} `json:"message"`
}

func (u telegramUpdate) toUpdate() (Update, bool) {
	if u.Message == nil {
		return Update{}, false
	}
	out := Update{UpdateID: u.UpdateID, ChatID: u.Message.Chat.ID, Text: u.Message.Text}
	if u.Message.From != nil {
		out.UserID = u.Message.From.ID
		out.FirstName = u.Message.From.FirstName
	}
	return out, true
}

// pollErrorDelay is the pause after a failed poll.
var pollErrorDelay = 5 * time.Second

// StartPolling begins long-polling for messages. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler UpdateHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.endpoint("getUpdates"), offset)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			log.Printf("[ERROR] create polling request: %v", err)
			sleep(ctx, pollErrorDelay)
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] polling request failed: %v", err)
			sleep(ctx, pollErrorDelay)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[WARN] read polling response: %v", err)
			continue
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil || !result.OK {
			log.Printf("[WARN] decode polling response: status %d, err %v", resp.StatusCode, err)
			sleep(ctx, pollErrorDelay)
			continue
		}

		for _, raw := range result.Result {
			offset = raw.UpdateID + 1
			u, ok := raw.toUpdate()
			if !ok {
				continue
			}
			handler(ctx, u)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
