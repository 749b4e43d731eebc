package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vms-next/internal/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var localPhonePattern = regexp.MustCompile(`^\d{10}$`)

// SmsSender 短信发送抽象
type SmsSender interface {
	Enabled() bool
	Send(to, body string) error
}

// SmsService 基于 Twilio 的短信服务
type SmsService struct {
	cfg    *config.SMSConfig
	client *twilio.RestClient
}

// NewSmsService 创建短信服务
func NewSmsService(cfg *config.SMSConfig) *SmsService {
	s := &SmsService{cfg: cfg}
	if cfg != nil && cfg.Enabled && cfg.AccountSID != "" && cfg.AuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
	}
	return s
}

// Enabled 短信是否可用
func (s *SmsService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && s.client != nil && strings.TrimSpace(s.cfg.From) != ""
}

// Send 发送短信
func (s *SmsService) Send(to, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrSmsServiceDisabled
	}
	if s.client == nil || strings.TrimSpace(s.cfg.From) == "" {
		return ErrSmsServiceNotConfigured
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(normalizePhoneNumber(to, s.cfg.CountryCode))
	params.SetFrom(s.cfg.From)
	params.SetBody(body)
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}


// normalizePhoneNumber 10 位本地号码补全国家区号
func normalizePhoneNumber(phone, countryCode string) string {
	phone = strings.TrimSpace(phone)
	if !localPhonePattern.MatchString(phone) {
		return phone
	}
	countryCode = strings.TrimSpace(countryCode)
	if countryCode == "" {
		return phone
	}
	if !strings.HasPrefix(countryCode, "+") {
		countryCode = "+" + countryCode
	}
	return countryCode + phone
}
