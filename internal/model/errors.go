package model

import "errors"

// Outcome kinds of a render request. Callers branch on these with errors.Is.
var (
	ErrNoDataInWindow    = errors.New("no data in window")
	ErrMalformedEvent    = errors.New("malformed event")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrRenderUnavailable = errors.New("render unavailable")
	ErrGiftNotFound      = errors.New("gift not found")
	ErrIconNotFound      = errors.New("icon not found")
	ErrNoCurrentPrice    = errors.New("no current price")
)

// Outcome returns a short label for err, used in metrics and render history.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoDataInWindow):
		return "no_data"
	case errors.Is(err, ErrNoCurrentPrice):
		return "no_current_price"
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrRenderUnavailable):
		return "render_unavailable"
	case errors.Is(err, ErrGiftNotFound):
		return "gift_not_found"
	default:
		return "error"
	}
}
