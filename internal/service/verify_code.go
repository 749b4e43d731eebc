package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
)

// classifyContact 识别联系方式类型，含 @ 视为邮箱，否则必须是 10 位手机号
func classifyContact(raw string) (string, string, error) {
	contact := strings.TrimSpace(raw)
	if contact == "" {
		return "", "", ErrContactInvalid
	}
	if strings.Contains(contact, "@") {
		normalized, err := normalizeEmail(contact)
		if err != nil {
			return "", "", ErrContactInvalid
		}
		return normalized, constants.ContactTypeEmail, nil
	}
	if !localPhonePattern.MatchString(contact) {
		return "", "", ErrContactInvalid
	}
	return contact, constants.ContactTypePhone, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveExpireMinutes(cfg config.VerifyCodeConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 5
	}
	return cfg.ExpireMinutes
}

func resolveSendIntervalSeconds(cfg config.VerifyCodeConfig) int {
	if cfg.SendIntervalSeconds <= 0 {
		return 60
	}
	return cfg.SendIntervalSeconds
}

func resolveMaxAttempts(cfg config.VerifyCodeConfig) int {
	if cfg.MaxAttempts <= 0 {
		return 5
	}
	return cfg.MaxAttempts
}

func resolveCodeLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

// resolveOtpLength 访客验证码长度限制在 4~6 位
func resolveOtpLength(cfg config.VerifyCodeConfig) int {
	if cfg.Length < 4 || cfg.Length > 6 {
		return 4
	}
	return cfg.Length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
