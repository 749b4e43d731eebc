package service

import (
	"strings"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"gorm.io/gorm"
)

var appointmentDateLayouts = []string{"2006-01-02", "02-01-2006"}

// AppointmentSchedule 预约排期字段
type AppointmentSchedule struct {
	AppointmentDate string
	AppointmentTime string
	Duration        string
	PurposeOfVisit  uint
	CompanyID       uint
	DepartmentID    uint
	DesignationID   uint
	WhomToMeet      uint
	Reminder        string
	Remarks         string
}

// AppointmentCreateInput 创建预约入参，同时登记访客
type AppointmentCreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Gender    string
	AadharNo  string
	Address   string
	Image     string
	Schedule  AppointmentSchedule
}

// AppointmentUpdateInput 更新预约入参
type AppointmentUpdateInput struct {
	VisitorID uint
	Schedule  AppointmentSchedule
}

// AppointmentCreateResult 创建预约结果
type AppointmentCreateResult struct {
	AppointmentID uint   `json:"appointment_id"`
	VisitorID     uint   `json:"visitor_id"`
	QRCode        string `json:"qr_code"`
}

// AppointmentLookupResult 访客凭验证码取回的预约信息
type AppointmentLookupResult struct {
	VisitorName   string  `json:"visitor_name"`
	AppointmentID uint    `json:"appointment_id"`
	Image         *string `json:"image"`
	WhomToMeet    string  `json:"whom_to_meet"`
	Purpose       string  `json:"purpose"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	QRCode        *string `json:"qr_code"`
}

// AppointmentService 预约管理与预约查询
type AppointmentService struct {
	cfg             *config.VisitorConfig
	appointmentRepo repository.AppointmentRepository
	visitorRepo     repository.VisitorRepository
	auditRepo       repository.VisitorAuditLogRepository
	codeRepo        repository.VerifyCodeRepository
	encoder         QRCodeEncoder
	notifier        Notifier
	now             func() time.Time
}

// NewAppointmentService 创建预约服务
func NewAppointmentService(
	cfg *config.VisitorConfig,
	appointmentRepo repository.AppointmentRepository,
	visitorRepo repository.VisitorRepository,
	auditRepo repository.VisitorAuditLogRepository,
	codeRepo repository.VerifyCodeRepository,
	encoder QRCodeEncoder,
	notifier Notifier,
) *AppointmentService {
	return &AppointmentService{
		cfg:             cfg,
		appointmentRepo: appointmentRepo,
		visitorRepo:     visitorRepo,
		auditRepo:       auditRepo,
		codeRepo:        codeRepo,
		encoder:         encoder,
		notifier:        notifier,
		now:             time.Now,
	}
}

// parseAppointmentDate 支持 yyyy-mm-dd 与 dd-mm-yyyy
func parseAppointmentDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrAppointmentInvalid
	}
	for _, layout := range appointmentDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrAppointmentInvalid
}

func normalizeAppointmentTime(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("15:04"), nil
		}
	}
	return "", ErrAppointmentInvalid
}

func (in AppointmentSchedule) apply(appointment *models.Appointment) error {
	date, err := parseAppointmentDate(in.AppointmentDate)
	if err != nil {
		return err
	}
	clock, err := normalizeAppointmentTime(in.AppointmentTime)
	if err != nil {
		return err
	}
	if in.WhomToMeet == 0 || in.CompanyID == 0 {
		return ErrAppointmentInvalid
	}
	appointment.AppointmentDate = date
	appointment.AppointmentTime = clock
	appointment.Duration = strings.TrimSpace(in.Duration)
	appointment.PurposeOfVisit = in.PurposeOfVisit
	appointment.CompanyID = in.CompanyID
	appointment.DepartmentID = in.DepartmentID
	appointment.DesignationID = in.DesignationID
	appointment.WhomToMeet = in.WhomToMeet
	appointment.Reminder = strings.TrimSpace(in.Reminder)
	appointment.Remarks = strings.TrimSpace(in.Remarks)
	return nil
}

// Create 创建预约：访客直接视为已审核并签发二维码
func (s *AppointmentService) Create(input AppointmentCreateInput, meta AuditMeta) (*AppointmentCreateResult, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, ErrAppointmentInvalid
	}
	if strings.TrimSpace(input.Email) == "" && strings.TrimSpace(input.Phone) == "" {
		return nil, ErrAppointmentInvalid
	}
	appointment := models.Appointment{}
	if err := input.Schedule.apply(&appointment); err != nil {
		return nil, err
	}

	form := VisitorForm{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:         input.Phone,
		Gender:        input.Gender,
		AadharNo:      input.AadharNo,
		Address:       input.Address,
		CompanyID:     input.Schedule.CompanyID,
		DepartmentID:  input.Schedule.DepartmentID,
		DesignationID: input.Schedule.DesignationID,
		WhomToMeet:    input.Schedule.WhomToMeet,
		Purpose:       input.Schedule.PurposeOfVisit,
	}
	visitor := form.toVisitor(input.Image)
	visitor.IsVerified = models.VerificationVerified
	visitor.QRStatus = constants.QRStatusActive
	visitor.BadgeActive = true

	var qrCode string
	err := s.visitorRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.visitorRepo.WithTx(tx)
		if err := repo.Create(&visitor); err != nil {
			return err
		}
		code, err := s.encoder.Encode(QRPayload(visitor.ID))
		if err != nil {
			return err
		}
		if _, err := repo.SetQRCode(visitor.ID, code); err != nil {
			return err
		}
		qrCode = code
		appointment.VisitorID = visitor.ID
		if err := s.appointmentRepo.WithTx(tx).Create(&appointment); err != nil {
			return err
		}
		detail := models.JSON{"appointment_id": appointment.ID}
		return s.auditRepo.WithTx(tx).Create(buildVisitorAuditLog(visitor.ID, "", constants.QRStatusActive, constants.VisitorAuditSourceAppoint, meta, detail))
	})
	if err != nil {
		return nil, err
	}
	logger.Component("appointment").Infow("appointment_created", "appointment_id", appointment.ID, "visitor_id", visitor.ID, "operator_admin_id", meta.OperatorAdminID)
	if s.notifier != nil {
		s.notifier.AppointmentScheduled(appointment.ID)
	}
	return &AppointmentCreateResult{AppointmentID: appointment.ID, VisitorID: visitor.ID, QRCode: qrCode}, nil
}

// Update 更新预约排期
func (s *AppointmentService) Update(id uint, input AppointmentUpdateInput) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if input.VisitorID != 0 && input.VisitorID != appointment.VisitorID {
		visitor, err := s.visitorRepo.GetByID(input.VisitorID)
		if err != nil {
			return nil, err
		}
		if visitor == nil {
			return nil, ErrVisitorNotFound
		}
		appointment.VisitorID = visitor.ID
	}
	if err := input.Schedule.apply(appointment); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Update(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetDetail 获取预约详情
func (s *AppointmentService) GetDetail(id uint) (*repository.AppointmentDetail, error) {
	detail, err := s.appointmentRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrAppointmentNotFound
	}
	return detail, nil
}

// GetRemarks 获取预约备注
func (s *AppointmentService) GetRemarks(id uint) (string, error) {
	appointment, err := s.appointmentRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if appointment == nil {
		return "", ErrAppointmentNotFound
	}
	return appointment.Remarks, nil
}

// ListTable 预约表格
func (s *AppointmentService) ListTable(filter repository.AppointmentListFilter) ([]repository.AppointmentTableRow, int64, error) {
	return s.appointmentRepo.ListTable(filter)
}

// SendLookupCode 向持有有效预约的联系方式发送查询验证码
func (s *AppointmentService) SendLookupCode(rawContact, locale string) error {
	contact, contactType, err := classifyContact(rawContact)
	if err != nil {
		return err
	}
	row, err := s.appointmentRepo.FindActiveByContact(contact)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrAppointmentNotFound
	}

	purpose := constants.VerifyPurposeAppointmentLookup
	latest, err := s.codeRepo.GetLatest(contact, purpose)
	if err != nil {
		return err
	}
	now := s.now()
	if latest != nil {
		interval := time.Duration(resolveSendIntervalSeconds(s.cfg.LookupCode)) * time.Second
		if !latest.SentAt.IsZero() && now.Sub(latest.SentAt) < interval {
			return ErrVerifyCodeTooFrequent
		}
	}

	code, err := randomNumericCode(resolveOtpLength(s.cfg.LookupCode))
	if err != nil {
		return err
	}
	record := &models.VerifyCode{
		Contact:     contact,
		ContactType: contactType,
		Purpose:     purpose,
		Code:        code,
		ExpiresAt:   now.Add(time.Duration(resolveExpireMinutes(s.cfg.LookupCode)) * time.Minute),
		SentAt:      now,
		CreatedAt:   now,
	}
	if err := s.codeRepo.Create(record); err != nil {
		return err
	}
	logger.Component("appointment").Infow("lookup_code_issued", "appointment_id", row.AppointmentID, "contact_type", contactType)
	if s.notifier != nil {
		s.notifier.OtpIssued(contact, contactType, code, purpose, locale)
	}
	return nil
}

// VerifyLookupCode 校验查询验证码并返回预约二维码
// 有效期内允许重复校验，便于访客再次打开二维码。
func (s *AppointmentService) VerifyLookupCode(rawContact, code string) (*AppointmentLookupResult, error) {
	contact, _, err := classifyContact(rawContact)
	if err != nil {
		return nil, err
	}
	record, err := s.codeRepo.GetLatest(contact, constants.VerifyPurposeAppointmentLookup)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrVerifyCodeInvalid
	}
	now := s.now()
	if record.ExpiresAt.Before(now) {
		return nil, ErrVerifyCodeExpired
	}
	maxAttempts := resolveMaxAttempts(s.cfg.LookupCode)
	if maxAttempts > 0 && record.AttemptCount >= maxAttempts {
		return nil, ErrVerifyCodeAttemptsExceeded
	}
	if strings.TrimSpace(record.Code) != strings.TrimSpace(code) {
		_ = s.codeRepo.IncrementAttempt(record.ID)
		return nil, ErrVerifyCodeInvalid
	}
	if record.VerifiedAt == nil {
		if err := s.codeRepo.MarkVerified(record.ID, now); err != nil {
			return nil, err
		}
	}

	row, err := s.appointmentRepo.FindActiveByContact(contact)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrAppointmentNotFound
	}
	result := &AppointmentLookupResult{
		VisitorName:   strings.TrimSpace(row.FirstName + " " + row.LastName),
		AppointmentID: row.AppointmentID,
		WhomToMeet:    row.WhomToMeet,
		Purpose:       row.Purpose,
		Phone:         row.Phone,
		Address:       row.Address,
		QRCode:        row.QRCode,
	}
	if strings.TrimSpace(row.Image) != "" {
		url := buildImageURL(s.baseURL(), row.Image)
		result.Image = &url
	}
	return result, nil
}

func (s *AppointmentService) baseURL() string {
	if s.cfg == nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
}
