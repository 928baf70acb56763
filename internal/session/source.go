package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoAuthData is returned when a TokenSource has nothing to offer.
var ErrNoAuthData = errors.New("no auth data")

// TokenSource obtains fresh marketplace auth data.
type TokenSource interface {
	Fetch(ctx context.Context) (string, error)
}

// StaticSource always returns the configured auth data.
type StaticSource string

func (s StaticSource) Fetch(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoAuthData
	}
	return string(s), nil
}

// FileSource reads auth data from a file kept current by an external
// bootstrapper that owns the Telegram login.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read auth file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%s: %w", s.Path, ErrNoAuthData)
	}
	return token, nil
}

// ChainSource tries each source in order.
type ChainSource []TokenSource

func (c ChainSource) Fetch(ctx context.Context) (string, error) {
	var errs []error
	for _, src := range c {
		token, err := src.Fetch(ctx)
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrNoAuthData
	}
	return "", errors.Join(errs...)
}
