package service

import (
	"strings"
	"unicode"

	"github.com/vms-next/internal/config"
)

// PasswordPolicyError 密码策略不满足，Key/Args 供 i18n 渲染
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e PasswordPolicyError) Error() string        { return e.key }
func (e PasswordPolicyError) Key() string          { return e.key }
func (e PasswordPolicyError) Args() []interface{}  { return e.args }
func (e PasswordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

type passwordTraits struct {
	length  int
	upper   bool
	lower   bool
	digit   bool
	special bool
}

func scanPassword(password string) passwordTraits {
	var t passwordTraits
	for _, r := range password {
		t.length++
		switch {
		case unicode.IsUpper(r):
			t.upper = true
		case unicode.IsLower(r):
			t.lower = true
		case unicode.IsDigit(r):
			t.digit = true
		case !unicode.IsSpace(r):
			t.special = true
		}
	}
	return t
}

// checkPasswordPolicy 按配置顺序返回第一条未满足的规则
func checkPasswordPolicy(policy config.PasswordPolicyConfig, username, password string) error {
	traits := scanPassword(password)
	if policy.MinLength > 0 && traits.length < policy.MinLength {
		return PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	rules := []struct {
		enabled bool
		ok      bool
		key     string
	}{
		{policy.RequireUpper, traits.upper, "error.password_require_upper"},
		{policy.RequireLower, traits.lower, "error.password_require_lower"},
		{policy.RequireNumber, traits.digit, "error.password_require_number"},
		{policy.RequireSpecial, traits.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.enabled && !rule.ok {
			return PasswordPolicyError{key: rule.key}
		}
	}

	name := strings.ToLower(strings.TrimSpace(username))
	if policy.RejectUsername && len(name) >= 3 && strings.Contains(strings.ToLower(password), name) {
		return PasswordPolicyError{key: "error.password_contains_username"}
	}
	return nil
}
