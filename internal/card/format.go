package card

import (
	"image/color"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"GiftChart/internal/calculator"
	"GiftChart/internal/chart"
	"GiftChart/internal/model"
)

// Default conversion constants.
const (
	DefaultTONPerStar = 0.0053
	DefaultUSDPerTON  = 2.90
)

// badgeThreshold is the smallest absolute change shown with a sign.
const badgeThreshold = 0.005

// TimestampLayout formats the card timestamp.
const TimestampLayout = "02 Jan 2006 • 15:04 UTC"

// Rates converts a TON price into the other display units.
type Rates struct {
	TONPerStar float64
	USDPerTON  float64
}

// DefaultRates returns the fixed conversion constants.
func DefaultRates() Rates {
	return Rates{TONPerStar: DefaultTONPerStar, USDPerTON: DefaultUSDPerTON}
}

// Stars returns how many whole Stars ton is worth.
func (r Rates) Stars(ton float64) int64 {
	if r.TONPerStar <= 0 || !finite(ton) {
		return 0
	}
	return decimal.NewFromFloat(ton).Div(decimal.NewFromFloat(r.TONPerStar)).Floor().IntPart()
}

// USD returns ton in dollars, rounded to cents.
func (r Rates) USD(ton float64) float64 {
	if !finite(ton) {
		return 0
	}
	usd, _ := decimal.NewFromFloat(ton).Mul(decimal.NewFromFloat(r.USDPerTON)).Round(2).Float64()
	return usd
}

// NewCardModel builds the display scalars for gift from its series and the
// freshly fetched current price.
func NewCardModel(gift, giftID string, s model.Series, current float64, rates Rates, backdrop model.Backdrop, now time.Time) model.CardModel {
	return model.CardModel{
		GiftName:      gift,
		GiftID:        giftID,
		PriceTON:      current,
		PriceStars:    rates.Stars(current),
		PriceUSD:      rates.USD(current),
		PercentChange: calculator.PercentChange(s, current),
		Timestamp:     now.UTC(),
		Backdrop:      backdrop,
	}
}

// Badge is the rendered percent-change label.
type Badge struct {
	Text  string
	Color color.RGBA
}

// PercentBadge formats a percent change. Changes below half a basis point
// read "0"; others are signed with two decimals and coloured by sign.
func PercentBadge(p float64) Badge {
	if !finite(p) || math.Abs(p) < badgeThreshold {
		return Badge{Text: "0", Color: color.RGBA{0, 0, 0, 255}}
	}
	d := decimal.NewFromFloat(p).Round(2)
	text := d.StringFixed(2) + "%"
	if d.IsPositive() {
		return Badge{Text: "+" + text, Color: chart.Green}
	}
	return Badge{Text: text, Color: chart.Red}
}

// FormatTON renders a TON price with at most two decimals.
func FormatTON(ton float64) string {
	if !finite(ton) {
		return "0"
	}
	return decimal.NewFromFloat(ton).Round(2).String()
}

// FormatUSD renders the dollar label.
func FormatUSD(usd float64) string {
	if !finite(usd) {
		usd = 0
	}
	return "$ " + decimal.NewFromFloat(usd).StringFixed(2)
}

// FormatStars renders the Stars label.
func FormatStars(stars int64) string {
	return "★ " + decimal.NewFromInt(stars).String()
}

// DisplayName title-cases each word of name, treating hyphens as word breaks
// and keeping them in place: "jack-in-the-box" becomes "Jack-In-The-Box".
func DisplayName(name string) string {
	var b strings.Builder
	start := true
	for _, r := range name {
		switch {
		case r == ' ' || r == '-':
			start = true
			b.WriteRune(r)
		case start:
			b.WriteRune(unicode.ToUpper(r))
			start = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
