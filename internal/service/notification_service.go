package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/i18n"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/queue"
	"github.com/vms-next/internal/repository"
)

// Notifier 访客流程通知，调用方不等待结果，失败只记录日志
type Notifier interface {
	VisitorSubmitted(visitorID uint)
	VisitorApproved(visitorID uint)
	VisitorRejected(visitorID uint)
	OtpIssued(contact, contactType, code, purpose, locale string)
	AppointmentScheduled(appointmentID uint)
}

// NotificationService 通知投递：队列可用时入队，否则在独立 goroutine 中直接发送
type NotificationService struct {
	visitorCfg      *config.VisitorConfig
	queueClient     *queue.Client
	emailService    *EmailService
	smsSender       SmsSender
	visitorRepo     repository.VisitorRepository
	employeeRepo    repository.EmployeeRepository
	appointmentRepo repository.AppointmentRepository
	dispatch        func(fn func())
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	visitorCfg *config.VisitorConfig,
	queueClient *queue.Client,
	emailService *EmailService,
	smsSender SmsSender,
	visitorRepo repository.VisitorRepository,
	employeeRepo repository.EmployeeRepository,
	appointmentRepo repository.AppointmentRepository,
) *NotificationService {
	return &NotificationService{
		visitorCfg:      visitorCfg,
		queueClient:     queueClient,
		emailService:    emailService,
		smsSender:       smsSender,
		visitorRepo:     visitorRepo,
		employeeRepo:    employeeRepo,
		appointmentRepo: appointmentRepo,
		dispatch:        goDetached,
	}
}

// VisitorSubmitted 通知管理员审核
func (s *NotificationService) VisitorSubmitted(visitorID uint) {
	payload := queue.VisitorNotifyPayload{VisitorID: visitorID}
	s.submit(constants.TaskVisitorReviewEmail, func() error {
		return s.queueClient.EnqueueVisitorReviewEmail(payload)
	}, func() error {
		return s.DeliverVisitorReview(visitorID, "")
	})
}

// VisitorApproved 发送审核通过及二维码邮件
func (s *NotificationService) VisitorApproved(visitorID uint) {
	payload := queue.VisitorNotifyPayload{VisitorID: visitorID}
	s.submit(constants.TaskVisitorApprovedEmail, func() error {
		return s.queueClient.EnqueueVisitorApprovedEmail(payload)
	}, func() error {
		return s.DeliverVisitorApproved(visitorID, "")
	})
}

// VisitorRejected 发送审核拒绝邮件
func (s *NotificationService) VisitorRejected(visitorID uint) {
	payload := queue.VisitorNotifyPayload{VisitorID: visitorID}
	s.submit(constants.TaskVisitorRejectedEmail, func() error {
		return s.queueClient.EnqueueVisitorRejectedEmail(payload)
	}, func() error {
		return s.DeliverVisitorRejected(visitorID, "")
	})
}

// OtpIssued 投递验证码
func (s *NotificationService) OtpIssued(contact, contactType, code, purpose, locale string) {
	payload := queue.OtpDeliverPayload{
		Contact:     contact,
		ContactType: contactType,
		Code:        code,
		Purpose:     purpose,
		Locale:      locale,
	}
	s.submit(constants.TaskOtpDeliver, func() error {
		return s.queueClient.EnqueueOtpDeliver(payload)
	}, func() error {
		return s.DeliverOtp(payload)
	})
}

// AppointmentScheduled 发送预约二维码邮件
func (s *NotificationService) AppointmentScheduled(appointmentID uint) {
	payload := queue.AppointmentMailPayload{AppointmentID: appointmentID}
	s.submit(constants.TaskAppointmentQRCodeMail, func() error {
		return s.queueClient.EnqueueAppointmentMail(payload)
	}, func() error {
		return s.DeliverAppointmentMail(appointmentID, "")
	})
}

func (s *NotificationService) submit(task string, enqueue func() error, deliver func() error) {
	if s == nil {
		return
	}
	log := logger.Component("notifier")
	if s.queueClient.Enabled() {
		err := enqueue()
		if err == nil {
			return
		}
		log.Warnw("notify_enqueue_failed", "task", task, "error", err)
	}
	dispatch := s.dispatch
	if dispatch == nil {
		dispatch = goDetached
	}
	dispatch(func() {
		if err := deliver(); err != nil {
			log.Warnw("notify_failed", "task", task, "error", err)
		}
	})
}

func goDetached(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("notify_panic_recovered", "panic", fmt.Sprintf("%v", r))
			}
		}()
		fn()
	}()
}

// DeliverVisitorReview 发送待审核通知，收件人为访客所属公司的管理员，缺省使用配置邮箱
func (s *NotificationService) DeliverVisitorReview(visitorID uint, locale string) error {
	detail, err := s.visitorRepo.GetDetail(visitorID)
	if err != nil {
		return err
	}
	if detail == nil {
		return ErrVisitorNotFound
	}
	recipients, err := s.employeeRepo.ListAdminEmails(detail.CompanyID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 && s.visitorCfg != nil && strings.TrimSpace(s.visitorCfg.AdminEmail) != "" {
		recipients = []string{strings.TrimSpace(s.visitorCfg.AdminEmail)}
	}
	if len(recipients) == 0 {
		logger.Component("notifier").Warnw("notify_review_no_recipient", "visitor_id", visitorID, "company_id", detail.CompanyID)
		return nil
	}
	err = s.emailService.SendVisitorReviewEmail(recipients, VisitorReviewEmailInput{
		VisitorID:   detail.ID,
		VisitorName: detail.FullName(),
		Email:       detail.Email,
		Phone:       detail.Phone,
		ReviewURL:   s.reviewURL(detail.ID),
	}, locale)
	return skipDisabledEmail(err)
}

// DeliverVisitorApproved 发送通过邮件，附带二维码
func (s *NotificationService) DeliverVisitorApproved(visitorID uint, locale string) error {
	visitor, err := s.visitorRepo.GetByID(visitorID)
	if err != nil {
		return err
	}
	if visitor == nil {
		return ErrVisitorNotFound
	}
	if strings.TrimSpace(visitor.Email) == "" || visitor.QRCode == nil {
		return nil
	}
	err = s.emailService.SendVisitorApprovedEmail(visitor.Email, VisitorPassEmailInput{
		VisitorID:   visitor.ID,
		VisitorName: visitor.FullName(),
		QRCode:      *visitor.QRCode,
	}, locale)
	return skipDisabledEmail(err)
}

// DeliverVisitorRejected 发送拒绝邮件
func (s *NotificationService) DeliverVisitorRejected(visitorID uint, locale string) error {
	visitor, err := s.visitorRepo.GetByID(visitorID)
	if err != nil {
		return err
	}
	if visitor == nil {
		return ErrVisitorNotFound
	}
	if strings.TrimSpace(visitor.Email) == "" {
		return nil
	}
	return skipDisabledEmail(s.emailService.SendVisitorRejectedEmail(visitor.Email, visitor.FullName(), locale))
}

// DeliverOtp 邮箱走邮件，手机号走短信；短信不可用时仅记录日志
func (s *NotificationService) DeliverOtp(payload queue.OtpDeliverPayload) error {
	if payload.ContactType == constants.ContactTypeEmail {
		return s.emailService.SendVerifyCode(payload.Contact, payload.Code, payload.Purpose, payload.Locale)
	}
	if s.smsSender == nil || !s.smsSender.Enabled() {
		log := logger.Component("notifier")
		log.Warnw("otp_sms_unavailable", "contact", maskContact(payload.Contact))
		log.Debugw("otp_sms_unavailable_code", "contact", payload.Contact, "code", payload.Code)
		return nil
	}
	return s.smsSender.Send(payload.Contact, i18n.Sprintf(normalizeLocale(payload.Locale), "sms.otp", payload.Code))
}

// DeliverAppointmentMail 发送预约确认邮件
func (s *NotificationService) DeliverAppointmentMail(appointmentID uint, locale string) error {
	detail, err := s.appointmentRepo.GetDetail(appointmentID)
	if err != nil {
		return err
	}
	if detail == nil {
		return ErrAppointmentNotFound
	}
	visitor, err := s.visitorRepo.GetByID(detail.VisitorID)
	if err != nil {
		return err
	}
	if visitor == nil || strings.TrimSpace(visitor.Email) == "" || visitor.QRCode == nil {
		return nil
	}
	err = s.emailService.SendAppointmentEmail(visitor.Email, VisitorPassEmailInput{
		VisitorID:       visitor.ID,
		VisitorName:     visitor.FullName(),
		QRCode:          *visitor.QRCode,
		AppointmentDate: detail.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: detail.AppointmentTime,
	}, locale)
	return skipDisabledEmail(err)
}

func (s *NotificationService) reviewURL(visitorID uint) string {
	base := ""
	if s.visitorCfg != nil {
		base = strings.TrimRight(strings.TrimSpace(s.visitorCfg.BaseURL), "/")
	}
	return base + "/verify.html?id=" + strconv.FormatUint(uint64(visitorID), 10)
}

// skipDisabledEmail 邮件服务关闭时视为跳过，避免队列反复重试
func skipDisabledEmail(err error) error {
	if errors.Is(err, ErrEmailServiceDisabled) {
		return nil
	}
	return err
}

func maskContact(contact string) string {
	if len(contact) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(contact)-4) + contact[len(contact)-4:]
}
