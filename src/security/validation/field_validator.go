// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

// Constants for lengths remain here
const (
	MaxAccountNameLength = 100
	MaxDescriptionLength = 255
	MaxColorLength       = 7
)

// --- String Validators ---

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// TruncateToLength cuts a string down to at most maxLength characters. Used
// on imported cells, where overlong text is clipped rather than rejected.
func TruncateToLength(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// ValidateStringRegex checks if a string matches a given regex pattern.
func ValidateStringRegex(s string, pattern *regexp.Regexp, fieldName, formatDescription string) error {
	if !pattern.MatchString(s) {
		return fmt.Errorf("%w: %s ('%s') is not in the expected format (%s)", ErrValidationFailed, fieldName, s, formatDescription)
	}
	return nil
}

// --- Specific Format Validators ---

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor checks a color value like "#10b981". Empty is allowed; a
// default palette color is assigned downstream.
func ValidateHexColor(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return ValidateStringRegex(trimmed, hexColorRegex, "Color", "#RRGGBB hex value")
}

// ValidateAccountName checks presence and length for an account name.
func ValidateAccountName(s string) error {
	if err := ValidateStringNotEmpty(s, "Account name"); err != nil {
		return err
	}
	return ValidateStringMaxLength(strings.TrimSpace(s), MaxAccountNameLength, "Account name")
}

// ValidateDescription checks length for a transaction description. Empty is
// allowed; the normalizer substitutes a fallback.
func ValidateDescription(s string) error {
	return ValidateStringMaxLength(s, MaxDescriptionLength, "Description")
}
