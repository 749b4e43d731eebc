package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaultsVisitorSection(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.Visitor.ExitCooldownSeconds != 5 {
		t.Fatalf("expected exit cooldown 5, got %d", cfg.Visitor.ExitCooldownSeconds)
	}
	if cfg.Visitor.ExpiryHours != 24 {
		t.Fatalf("expected expiry hours 24, got %d", cfg.Visitor.ExpiryHours)
	}
	if cfg.Visitor.Otp.ExpireMinutes != 5 || cfg.Visitor.Otp.Length != 4 {
		t.Fatalf("unexpected otp defaults: %+v", cfg.Visitor.Otp)
	}
	if cfg.Email.Provider != "smtp" {
		t.Fatalf("expected smtp provider, got %s", cfg.Email.Provider)
	}
	if cfg.Security.OtpRateLimit.MaxAttempts <= 0 {
		t.Fatalf("otp rate limit should be enabled by default")
	}
}

func TestSetDefaultsCanBeOverridden(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("visitor.exit_cooldown_seconds", 30)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Visitor.ExitCooldownSeconds != 30 {
		t.Fatalf("expected overridden cooldown 30, got %d", cfg.Visitor.ExitCooldownSeconds)
	}
}
