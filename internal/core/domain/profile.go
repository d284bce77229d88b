package domain

import "errors"

var ErrProfileNotFound = errors.New("profile not found")
var ErrInvalidCurrency = errors.New("unsupported currency")
var ErrNegativeRate = errors.New("hourly rate must not be negative")

// Supported currency codes.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyCAD = "CAD"
	CurrencyAUD = "AUD"
)

var currencies = map[string]struct{}{
	CurrencyUSD: {},
	CurrencyEUR: {},
	CurrencyGBP: {},
	CurrencyCAD: {},
	CurrencyAUD: {},
}

// ValidCurrency reports whether code is one of the supported currencies.
func ValidCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}

// Profile holds the caregiver's display name and pay settings. Exactly one
// per user, keyed by the user's own ID.
type Profile struct {
	ID         string  `json:"id" bson:"_id"`
	Name       string  `json:"name" bson:"name"`
	HourlyRate float64 `json:"hourly_rate" bson:"hourly_rate"`
	Currency   string  `json:"currency" bson:"currency"`
}

// DefaultProfile is the profile lazily created on first read when a user has
// none yet.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		ID:         userID,
		Name:       "Nanny",
		HourlyRate: 25.00,
		Currency:   CurrencyUSD,
	}
}

// Validate checks the fields a profile update may set.
func (p *Profile) Validate() error {
	if p.HourlyRate < 0 {
		return ErrNegativeRate
	}
	if !ValidCurrency(p.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}
