package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"GiftChart/internal/model"
)

var _ PriceSource = (*PortalsFetcher)(nil)

// PortalsConfig holds configuration for the marketplace client.
type PortalsConfig struct {
	// BaseURL is the marketplace API root.
	BaseURL string

	// HistoryLimit caps how many listings one history request asks for.
	HistoryLimit int

	// RateLimitPerSec bounds outbound requests.
	RateLimitPerSec float64

	// ProxyURL routes requests through an HTTP proxy when set.
	ProxyURL string

	Timeout    time.Duration
	HTTPClient *http.Client
}

// DefaultHistoryLimit is large enough that the price-sorted history still
// covers the whole chart window for active gifts.
const DefaultHistoryLimit = 1000000

// PortalsConfigDefaults returns a config with default values.
func PortalsConfigDefaults() PortalsConfig {
	return PortalsConfig{
		BaseURL:         "https://portal-market.com/api",
		HistoryLimit:    DefaultHistoryLimit,
		RateLimitPerSec: 5,
		Timeout:         30 * time.Second,
	}
}

func applyDefaults(cfg *PortalsConfig, defaults PortalsConfig) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaults.HistoryLimit
	}
	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = defaults.RateLimitPerSec
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
}

// PortalsFetcher implements PriceSource over the Portals marketplace API.
type PortalsFetcher struct {
	config  PortalsConfig
	auth    Authenticator
	client  *http.Client
	limiter *rate.Limiter
}

// NewPortalsFetcher creates a fetcher with optional proxy support.
func NewPortalsFetcher(cfg PortalsConfig, auth Authenticator) *PortalsFetcher {
	applyDefaults(&cfg, PortalsConfigDefaults())

	client := cfg.HTTPClient
	if client == nil {
		transport := &http.Transport{}
		if cfg.ProxyURL != "" {
			if u, err := url.Parse(cfg.ProxyURL); err == nil {
				transport.Proxy = http.ProxyURL(u)
			}
		}
		client = &http.Client{Timeout: cfg.Timeout, Transport: transport}
	}
	return &PortalsFetcher{
		config:  cfg,
		auth:    auth,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), 1),
	}
}

func (f *PortalsFetcher) Name() string { return "portals" }

// portalsAction is one entry of the market activity feed.
type portalsAction struct {
	Price    json.RawMessage `json:"price"`
	ListedAt string          `json:"listed_at"`
}

type portalsActivity struct {
	Actions []portalsAction `json:"actions"`
}

func (f *PortalsFetcher) FetchListings(ctx context.Context, gift string) ([]model.ListingEvent, error) {
	actions, err := f.marketActivity(ctx, gift, f.config.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	events := make([]model.ListingEvent, len(actions))
	for i, a := range actions {
		events[i] = model.ListingEvent{Price: rawPrice(a.Price), ListedAt: a.ListedAt}
	}
	return events, nil
}

func (f *PortalsFetcher) FetchCurrentPrice(ctx context.Context, gift string) (float64, error) {
	actions, err := f.marketActivity(ctx, gift, 1)
	if err != nil {
		return 0, fmt.Errorf("fetch current price: %w", err)
	}
	if len(actions) == 0 {
		return 0, fmt.Errorf("fetch current price: %w", model.ErrNoCurrentPrice)
	}
	price, err := strconv.ParseFloat(rawPrice(actions[0].Price), 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("fetch current price: %w: bad price %q", model.ErrNoCurrentPrice, actions[0].Price)
	}
	return price, nil
}

func (f *PortalsFetcher) marketActivity(ctx context.Context, gift string, limit int) ([]portalsAction, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", model.ErrSourceUnavailable, err)
	}
	token, err := f.auth.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: auth: %w", model.ErrSourceUnavailable, err)
	}

	q := url.Values{}
	q.Set("offset", "0")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort_by", "price asc")
	q.Set("action_types", "listing")
	q.Set("gift_names", gift)
	endpoint := f.config.BaseURL + "/market/actions/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	req.Header.Set("Authorization", "tma "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		f.auth.Invalidate()
		return nil, fmt.Errorf("%w: status %d, session invalidated", model.ErrSourceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d, body: %s", model.ErrSourceUnavailable, resp.StatusCode, string(body))
	}

	var activity portalsActivity
	if err := json.NewDecoder(resp.Body).Decode(&activity); err != nil {
		return nil, fmt.Errorf("%w: decode activity: %w", model.ErrSourceUnavailable, err)
	}
	return activity.Actions, nil
}

// rawPrice returns the price as a decimal string whether the API sent a
// JSON string or number. Anything else comes back as-is and fails parsing
// downstream.
func rawPrice(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

