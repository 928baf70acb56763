package collector

import (
	"context"

	"GiftChart/internal/model"
)

// PriceSource fetches marketplace listings for a gift.
type PriceSource interface {
	// FetchListings returns raw listing events, in any order.
	FetchListings(ctx context.Context, gift string) ([]model.ListingEvent, error)
	// FetchCurrentPrice returns the cheapest active listing price.
	FetchCurrentPrice(ctx context.Context, gift string) (float64, error)
	Name() string
}

// Authenticator supplies marketplace auth data.
type Authenticator interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}
