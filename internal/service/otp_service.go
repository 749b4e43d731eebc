package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/repository"
)

// OtpService 访客自助登记的联系方式验证
type OtpService struct {
	cfg      *config.VisitorConfig
	tempRepo repository.TempVisitorRepository
	notifier Notifier
	now      func() time.Time
}

// NewOtpService 创建访客验证码服务
func NewOtpService(cfg *config.VisitorConfig, tempRepo repository.TempVisitorRepository, notifier Notifier) *OtpService {
	return &OtpService{
		cfg:      cfg,
		tempRepo: tempRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// RequestOtp 生成验证码并投递，响应中不返回验证码
func (s *OtpService) RequestOtp(rawContact, locale string) error {
	contact, contactType, err := classifyContact(rawContact)
	if err != nil {
		return err
	}
	code, err := randomNumericCode(resolveOtpLength(s.otpConfig()))
	if err != nil {
		return fmt.Errorf("generate otp failed: %w", err)
	}
	expiry := s.now().Add(time.Duration(resolveExpireMinutes(s.otpConfig())) * time.Minute)
	if err := s.tempRepo.UpsertOtp(contact, contactType, code, expiry); err != nil {
		return fmt.Errorf("save otp failed: %w", err)
	}
	logger.Component("otp").Infow("otp_issued", "contact_type", contactType, "contact", maskContact(contact))
	if s.notifier != nil {
		s.notifier.OtpIssued(contact, contactType, code, "", locale)
	}
	return nil
}

// VerifyOtp 校验验证码，成功后保留暂存记录以便有效期内重复校验
// 错误次数达到上限后须重新获取验证码
func (s *OtpService) VerifyOtp(rawContact, code string) (uint, error) {
	contact, _, err := classifyContact(rawContact)
	if err != nil {
		return 0, err
	}
	row, err := s.tempRepo.GetByContact(contact)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, ErrOtpNotFound
	}
	if row.AttemptCount >= resolveMaxAttempts(s.otpConfig()) {
		return 0, ErrOtpAttemptsExceeded
	}
	if strings.TrimSpace(row.Otp) != strings.TrimSpace(code) {
		if err := s.tempRepo.IncrementAttempt(contact); err != nil {
			return 0, err
		}
		logger.Component("otp").Warnw("otp_mismatch", "contact", maskContact(contact), "attempts", row.AttemptCount+1)
		return 0, ErrOtpInvalid
	}
	if s.now().After(row.OtpExpiry) {
		return 0, ErrOtpExpired
	}
	if err := s.tempRepo.MarkOtpVerified(contact); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (s *OtpService) otpConfig() config.VerifyCodeConfig {
	if s.cfg == nil {
		return config.VerifyCodeConfig{}
	}
	return s.cfg.Otp
}
