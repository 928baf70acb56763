package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultAPIBase is the public Bot API endpoint.
const DefaultAPIBase = "https://api.telegram.org"

// TelegramNotifier talks to chats via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken  string
	APIBase   string
	Client    *http.Client
	RetryBase time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		APIBase:  DefaultAPIBase,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		RetryBase: time.Second,
	}
}

// APIError is a response the Bot API rejected.
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

type sentMessage struct {
	MessageID int64 `json:"message_id"`
}

func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, method)
}

func (t *TelegramNotifier) call(ctx context.Context, method, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint(method), body)
	if err != nil {
		return nil, fmt.Errorf("telegram %s: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram %s: read body: %w", method, err)
	}
	var r apiResponse
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	if !r.OK || resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Method: method, Code: r.ErrorCode, Description: r.Description}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		if r.Parameters != nil {
			apiErr.RetryAfter = r.Parameters.RetryAfter
		}
		return nil, apiErr
	}
	return r.Result, nil
}

func (t *TelegramNotifier) callJSON(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return t.call(ctx, method, "application/json", bytes.NewReader(body))
}

// SendText sends an HTML message to chatID and returns its message id.
func (t *TelegramNotifier) SendText(ctx context.Context, chatID int64, text string) (int64, error) {
	result, err := t.callJSON(ctx, "sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return 0, err
	}
	return decodeMessageID(result)
}

// SendPhoto uploads a PNG to chatID with a caption.
func (t *TelegramNotifier) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) (int64, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return 0, err
	}
	if caption != "" {
		if err := w.WriteField("caption", caption); err != nil {
			return 0, err
		}
	}
	part, err := w.CreateFormFile("photo", "card_"+uuid.NewString()+".png")
	if err != nil {
		return 0, err
	}
	if _, err := part.Write(photo); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	result, err := t.call(ctx, "sendPhoto", w.FormDataContentType(), &body)
	if err != nil {
		return 0, err
	}
	return decodeMessageID(result)
}

// DeleteMessage removes a message the bot sent earlier.
func (t *TelegramNotifier) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	_, err := t.callJSON(ctx, "deleteMessage", map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	})
	return err
}

// SendWithRetry sends a text message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, chatID int64, text string, maxRetries int) (int64, error) {
	var id int64
	err := t.Retry(ctx, maxRetries, func() error {
		var err error
		id, err = t.SendText(ctx, chatID, text)
		return err
	})
	return id, err
}

// Retry runs fn until it succeeds, backing off exponentially between
// attempts. A flood-control reply waits as long as the API asks.
func (t *TelegramNotifier) Retry(ctx context.Context, maxRetries int, fn func() error) error {
	base := t.RetryBase
	if base <= 0 {
		base = time.Second
	}
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := time.Duration(1<<uint(i)) * base
		if apiErr, ok := err.(*APIError); ok && apiErr.RetryAfter > 0 {
			backoff = time.Duration(apiErr.RetryAfter) * time.Second
		}
		log.Printf("[WARN] Telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

func decodeMessageID(result json.RawMessage) (int64, error) {
	var msg sentMessage
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("decode message: %w", err)
	}
	return msg.MessageID, nil
}
