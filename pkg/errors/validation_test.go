package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "rate", false},
		{"valid with digits", "x1", false},
		{"valid underscore start", "_tmp", false},
		{"valid mixed", "net_income_2024", false},
		{"valid single letter", "x", false},
		{"valid max length", strings.Repeat("a", 64), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"leading digit", "1x", true},
		{"hyphen", "net-income", true},
		{"space", "net income", true},
		{"dot", "a.b", true},
		{"unicode", "café", true},
		{"reserved keyword", "input", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidScript,
		ErrCodeInvalidName,
		ErrCodeDuplicateName,
		ErrCodeUnknownName,
		ErrCodeUnknownFunc,
		ErrCodeBadArity,
		ErrCodeInvalidValue,
		ErrCodeInvalidFormat,
		ErrCodeFileNotFound,
		ErrCodeRender,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
