package service

import (
	"errors"
	"testing"

	"github.com/vms-next/internal/config"
)

func TestCheckPasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RejectUsername: true,
	}
	cases := []struct {
		username string
		password string
		wantKey  string
	}{
		{"desk01", "Ab1", "error.password_min_length"},
		{"desk01", "abcdefg1", "error.password_require_upper"},
		{"desk01", "ABCDEFG1", "error.password_require_lower"},
		{"desk01", "Abcdefgh", "error.password_require_number"},
		{"reception", "Reception2026", "error.password_contains_username"},
		{"hr", "Hr-Portal-2026", ""},
		{"reception", "Gatekeeper2026", ""},
	}
	for _, tc := range cases {
		err := checkPasswordPolicy(policy, tc.username, tc.password)
		if tc.wantKey == "" {
			if err != nil {
				t.Fatalf("%s/%s should pass, got %v", tc.username, tc.password, err)
			}
			continue
		}
		var policyErr PasswordPolicyError
		if !errors.As(err, &policyErr) || policyErr.Key() != tc.wantKey {
			t.Fatalf("%s/%s want %s got %v", tc.username, tc.password, tc.wantKey, err)
		}
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("policy error should match ErrWeakPassword")
		}
	}
}

func TestCheckPasswordPolicyDisabled(t *testing.T) {
	if err := checkPasswordPolicy(config.PasswordPolicyConfig{}, "admin", "admin"); err != nil {
		t.Fatalf("empty policy should accept anything, got %v", err)
	}
}
