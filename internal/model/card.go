package model

import (
	"image/color"
	"time"
)

// Backdrop is a named two-colour gradient used behind the card.
type Backdrop struct {
	Name   string
	Center color.RGBA
	Edge   color.RGBA
}

// CardModel holds the display scalars for one price card.
type CardModel struct {
	GiftName      string
	GiftID        string
	PriceTON      float64
	PriceStars    int64
	PriceUSD      float64
	PercentChange float64
	Timestamp     time.Time
	Backdrop      Backdrop
}
