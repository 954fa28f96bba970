package domain

import (
	"strings"
	"time"
)

// Currency codes accepted on items. Anything else collapses to DefaultCurrency.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyCAD = "CAD"
	CurrencyAUD = "AUD"

	DefaultCurrency = CurrencyUSD
)

const (
	SpecialNone     = "NONE"
	SpecialDaily    = "DAILY"
	SpecialSeasonal = "SEASONAL"
	SpecialLimited  = "LIMITED"

	DefaultSpecialType = SpecialNone
)

const (
	OrientationSquare    = "SQUARE"
	OrientationLandscape = "LANDSCAPE"
	OrientationPortrait  = "PORTRAIT"

	DefaultImageOrientation = OrientationSquare
)

type Item struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"-"`
	CategoryID       string    `json:"categoryId"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	Available        bool      `json:"available"`
	SoldOut          bool      `json:"soldOut"`
	Bogo             bool      `json:"bogo"`
	Allergens        []string  `json:"allergens,omitempty"`
	Calories         int       `json:"calories,omitempty"`
	PrepMinutes      int       `json:"prepMinutes,omitempty"`
	SpecialType      string    `json:"specialType"`
	ImageOrientation string    `json:"imageOrientation"`
	TimeAvailability string    `json:"timeAvailability,omitempty"`
	DateAvailability string    `json:"dateAvailability,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

var currencies = map[string]bool{
	CurrencyUSD: true,
	CurrencyEUR: true,
	CurrencyGBP: true,
	CurrencyCAD: true,
	CurrencyAUD: true,
}

var specialTypes = map[string]bool{
	SpecialNone:     true,
	SpecialDaily:    true,
	SpecialSeasonal: true,
	SpecialLimited:  true,
}

var orientations = map[string]bool{
	OrientationSquare:    true,
	OrientationLandscape: true,
	OrientationPortrait:  true,
}

// NormalizeCurrency maps a raw value onto a known currency code, falling back
// to DefaultCurrency for anything unrecognized.
func NormalizeCurrency(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if currencies[v] {
		return v
	}
	return DefaultCurrency
}

func NormalizeSpecialType(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if specialTypes[v] {
		return v
	}
	return DefaultSpecialType
}

func NormalizeImageOrientation(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if orientations[v] {
		return v
	}
	return DefaultImageOrientation
}
