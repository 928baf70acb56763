package collector

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "golang.org/x/image/webp"

	"GiftChart/internal/model"
)

// DefaultIconURL is the icon CDN template; {id} is replaced by the gift id.
const DefaultIconURL = "https://api.changes.tg/original/{id}.png"

// maxIconBytes bounds a single icon download.
const maxIconBytes = 4 << 20

// IconSource downloads gift icons.
type IconSource struct {
	URLTemplate string
	Client      *http.Client
}

// NewIconSource creates an icon source with optional proxy support.
func NewIconSource(urlTemplate, proxyURL string, timeout time.Duration) *IconSource {
	if urlTemplate == "" {
		urlTemplate = DefaultIconURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &IconSource{
		URLTemplate: urlTemplate,
		Client:      &http.Client{Timeout: timeout, Transport: transport},
	}
}

func (s *IconSource) Name() string { return "icons" }

// FetchIcon downloads and decodes the icon for gift id.
func (s *IconSource) FetchIcon(ctx context.Context, id string) (image.Image, error) {
	if id == "" {
		return nil, fmt.Errorf("fetch icon: %w: empty id", model.ErrIconNotFound)
	}
	endpoint := strings.ReplaceAll(s.URLTemplate, "{id}", url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch icon: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch icon: %w: %w", model.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("fetch icon %s: %w", id, model.ErrIconNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch icon %s: %w: status %d", id, model.ErrSourceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch icon %s: %w: %w", id, model.ErrSourceUnavailable, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", id, err)
	}
	return img, nil
}
