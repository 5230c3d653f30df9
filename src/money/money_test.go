package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateOpeningBalanceInput(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantValid bool
		wantValue string
		wantError string
	}{
		{"integer", "100", true, "100.00", ""},
		{"negative integer", "-5", true, "-5.00", ""},
		{"one decimal digit", "3.5", true, "3.50", ""},
		{"two decimal digits", "12.34", true, "12.34", ""},
		{"bare fraction", ".99", true, "0.99", ""},
		{"negative fraction", "-.5", true, "-0.50", ""},
		{"zero", "0", true, "0.00", ""},
		{"surrounding whitespace", "  42.10  ", true, "42.10", ""},
		{"three decimal digits", "12.345", false, "", "Use a valid number with up to 2 decimals"},
		{"empty", "", false, "", "Opening balance is required"},
		{"whitespace only", "   ", false, "", "Opening balance is required"},
		{"letters", "abc", false, "", "Use a valid number with up to 2 decimals"},
		{"trailing dot", "12.", false, "", "Use a valid number with up to 2 decimals"},
		{"double minus", "--5", false, "", "Use a valid number with up to 2 decimals"},
		{"thousands separator", "1,000", false, "", "Use a valid number with up to 2 decimals"},
		{"internal space", "1 0", false, "", "Use a valid number with up to 2 decimals"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateOpeningBalanceInput(tt.raw)
			if got.IsValid != tt.wantValid {
				t.Fatalf("ValidateOpeningBalanceInput(%q).IsValid = %v, want %v", tt.raw, got.IsValid, tt.wantValid)
			}
			if tt.wantValid {
				if got.Value.StringFixed(2) != tt.wantValue {
					t.Errorf("ValidateOpeningBalanceInput(%q).Value = %s, want %s", tt.raw, got.Value, tt.wantValue)
				}
			} else if got.Error != tt.wantError {
				t.Errorf("ValidateOpeningBalanceInput(%q).Error = %q, want %q", tt.raw, got.Error, tt.wantError)
			}
		})
	}
}

func TestFormatOpeningBalance(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5", "5.00"},
		{"5.1", "5.10"},
		{"-0.5", "-0.50"},
		{"1234.567", "1234.57"},
		{"not a number", "not a number"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatOpeningBalance(tt.in); got != tt.want {
			t.Errorf("FormatOpeningBalance(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Anything FormatOpeningBalance renders from a valid value must validate back
// to the same number.
func TestOpeningBalanceRoundTrip(t *testing.T) {
	for _, raw := range []string{"0", "-5", "12.34", "100", ".99", "-0.01", "99999.9"} {
		first := ValidateOpeningBalanceInput(raw)
		if !first.IsValid {
			t.Fatalf("seed value %q unexpectedly invalid", raw)
		}
		formatted := FormatOpeningBalance(first.Value.String())
		second := ValidateOpeningBalanceInput(formatted)
		if !second.IsValid {
			t.Errorf("round-trip of %q: formatted %q did not validate", raw, formatted)
			continue
		}
		if !second.Value.Equal(first.Value) {
			t.Errorf("round-trip of %q: got %s, want %s", raw, second.Value, first.Value)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"plain", "12.50", "12.5", true},
		{"negative", "-12.50", "-12.5", true},
		{"thousands separator", "1,234.56", "1234.56", true},
		{"surrounding whitespace", " 42 ", "42", true},
		{"internal whitespace", "1 234.5", "1234.5", true},
		{"empty", "", "", false},
		{"whitespace only", "  ", "", false},
		{"garbage", "12abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok {
				want, _ := decimal.NewFromString(tt.want)
				if !got.Equal(want) {
					t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got, want)
				}
			}
		})
	}
}
