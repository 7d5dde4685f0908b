package utils

import (
	"strings"
	"testing"
)

func TestValidateStruct_Phone(t *testing.T) {
	type form struct {
		Phone string `validate:"required,phone"`
	}

	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "dashed mobile", phone: "010-1234-5678", valid: true},
		{name: "digits only", phone: "01012345678", valid: true},
		{name: "international", phone: "+82 10 1234 5678", valid: true},
		{name: "twenty characters", phone: "+" + strings.Repeat("1", 19), valid: true},
		{name: "twenty one characters", phone: "+82101234567890123456", valid: false},
		{name: "too short", phone: "123", valid: false},
		{name: "letters", phone: "010-abcd-5678", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(&form{Phone: tt.phone})
			if got := len(errs) == 0; got != tt.valid {
				t.Errorf("ValidateStruct(%q) valid = %v, want %v (errs %v)", tt.phone, got, tt.valid, errs)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"010-1234-5678", "01012345678"},
		{"01012345678", "01012345678"},
		{" 010 1234 5678 ", "01012345678"},
		{"+82 10-1234-5678", "+821012345678"},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
