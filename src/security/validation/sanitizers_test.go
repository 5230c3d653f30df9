package validation

import "testing"

func TestSanitizeText(t *testing.T) {
	if got := SanitizeText(`<script>alert(1)</script>Wallet`); got != "Wallet" {
		t.Errorf("SanitizeText = %q", got)
	}
}

func TestSanitizeForFormulaInjection(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+1+1", "'+1+1"},
		{"@cmd", "'@cmd"},
		{"-3.20", "'-3.20"},
		{"Groceries", "Groceries"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeForFormulaInjection(tt.in); got != tt.want {
			t.Errorf("SanitizeForFormulaInjection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateHexColor(t *testing.T) {
	if err := ValidateHexColor("#10b981"); err != nil {
		t.Errorf("valid color rejected: %v", err)
	}
	if err := ValidateHexColor(""); err != nil {
		t.Errorf("empty color must be allowed: %v", err)
	}
	if err := ValidateHexColor("green"); err == nil {
		t.Error("named color accepted")
	}
	if err := ValidateHexColor("#10b9"); err == nil {
		t.Error("short hex accepted")
	}
}
