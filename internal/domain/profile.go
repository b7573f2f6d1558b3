package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the fixed currency all raw amounts are stored in before
// display conversion.
const BaseCurrency = "CAD"

// DefaultBirthYear is assumed until the holder sets their own.
const DefaultBirthYear = 1990

// SupportedCurrencies are the display currencies a holder can choose from.
var SupportedCurrencies = []string{"CAD", "USD", "EUR", "GBP", "AUD", "JPY"}

// IsSupportedCurrency reports whether code is a valid display currency.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// Profile is the per-holder settings consumed by the calculation core:
// birth year (eligibility window), cash balance (base currency), and the
// preferred display currency.
type Profile struct {
	OwnerID   string
	BirthYear int
	Cash      decimal.Decimal
	Currency  string
	UpdatedAt time.Time
}

// DefaultProfile returns the profile assumed before the holder saves one.
func DefaultProfile(ownerID string) *Profile {
	return &Profile{
		OwnerID:   ownerID,
		BirthYear: DefaultBirthYear,
		Cash:      decimal.Zero,
		Currency:  BaseCurrency,
	}
}

// ValidateBirthYear bounds the birth year to something plausible.
func ValidateBirthYear(year int, now time.Time) error {
	if year < 1900 || year > now.Year() {
		return ErrInvalidBirthYear
	}
	return nil
}
