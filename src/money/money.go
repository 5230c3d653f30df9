// backend/src/money/money.go
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Opening balances accept an optional leading minus, then an integer or a
// decimal with 1-2 fractional digits. Anything else is rejected before it
// reaches the store.
var openingBalanceRegex = regexp.MustCompile(`^-?(?:\d+|\d*\.\d{1,2})$`)

// OpeningBalanceValidation is the outcome of validating user-entered opening
// balance text. Value is only meaningful when IsValid is true.
type OpeningBalanceValidation struct {
	IsValid bool
	Error   string
	Value   decimal.Decimal
}

// ValidateOpeningBalanceInput is the single gate for all user-entered opening
// balance text; account creation and account editing must both go through it
// so they reject identically. On success the value is rounded to exactly two
// decimal places, half away from zero.
func ValidateOpeningBalanceInput(raw string) OpeningBalanceValidation {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return OpeningBalanceValidation{Error: "Opening balance is required"}
	}
	if !openingBalanceRegex.MatchString(trimmed) {
		return OpeningBalanceValidation{Error: "Use a valid number with up to 2 decimals"}
	}

	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return OpeningBalanceValidation{Error: "Enter a valid numeric value"}
	}

	return OpeningBalanceValidation{IsValid: true, Value: parsed.Round(2)}
}

// FormatOpeningBalance renders numeric text to exactly two decimal places.
// Non-numeric input is passed through unchanged so the caller can always
// render something.
func FormatOpeningBalance(value string) string {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return parsed.StringFixed(2)
}

// FormatAmount renders a decimal with exactly two fractional digits.
func FormatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// ParseAmount parses an imported amount, stripping thousands separators and
// whitespace first. Unparseable input is an expected per-row condition, so it
// reports ok=false instead of an error.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), "")
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return parsed, true
}
