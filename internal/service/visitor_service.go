package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"

	"gorm.io/gorm"
)

// VisitorForm 访客登记表单
// 兼容两组历史字段名：whom_to_meet / employee_id，purpose / purpose_id。
type VisitorForm struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Gender        string
	AadharNo      string
	Address       string
	CompanyID     uint
	DepartmentID  uint
	DesignationID uint
	WhomToMeet    uint
	EmployeeID    uint
	Purpose       uint
	PurposeID     uint
}

// ResolvedEmployeeID 被访员工 ID
func (f VisitorForm) ResolvedEmployeeID() uint {
	if f.WhomToMeet != 0 {
		return f.WhomToMeet
	}
	return f.EmployeeID
}

// ResolvedPurposeID 来访目的 ID
func (f VisitorForm) ResolvedPurposeID() uint {
	if f.Purpose != 0 {
		return f.Purpose
	}
	return f.PurposeID
}

// MissingFields 返回缺失的必填字段名
func (f VisitorForm) MissingFields() []string {
	missing := make([]string, 0)
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	check("first_name", strings.TrimSpace(f.FirstName) != "")
	check("last_name", strings.TrimSpace(f.LastName) != "")
	check("email", strings.TrimSpace(f.Email) != "")
	check("phone", strings.TrimSpace(f.Phone) != "")
	check("gender", strings.TrimSpace(f.Gender) != "")
	check("company_id", f.CompanyID != 0)
	check("department_id", f.DepartmentID != 0)
	check("designation_id", f.DesignationID != 0)
	check("whom_to_meet", f.ResolvedEmployeeID() != 0)
	check("purpose", f.ResolvedPurposeID() != 0)
	check("aadhar_no", strings.TrimSpace(f.AadharNo) != "")
	check("address", strings.TrimSpace(f.Address) != "")
	return missing
}

// MissingFieldsError 必填字段缺失
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVisitorFieldsMissing.Error(), strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrVisitorFieldsMissing
}

func (f VisitorForm) toVisitor(imageRef string) models.Visitor {
	return models.Visitor{
		FirstName:     strings.TrimSpace(f.FirstName),
		LastName:      strings.TrimSpace(f.LastName),
		Email:         strings.TrimSpace(f.Email),
		Phone:         strings.TrimSpace(f.Phone),
		Gender:        strings.TrimSpace(f.Gender),
		AadharNo:      strings.TrimSpace(f.AadharNo),
		Address:       strings.TrimSpace(f.Address),
		Image:         strings.TrimSpace(imageRef),
		CompanyID:     f.CompanyID,
		DepartmentID:  f.DepartmentID,
		DesignationID: f.DesignationID,
		WhomToMeet:    f.ResolvedEmployeeID(),
		PurposeID:     f.ResolvedPurposeID(),
	}
}

// VisitorService 访客登记、审核与管理
type VisitorService struct {
	cfg         *config.VisitorConfig
	visitorRepo repository.VisitorRepository
	tempRepo    repository.TempVisitorRepository
	auditRepo   repository.VisitorAuditLogRepository
	encoder     QRCodeEncoder
	notifier    Notifier
	now         func() time.Time
}

// NewVisitorService 创建访客服务
func NewVisitorService(
	cfg *config.VisitorConfig,
	visitorRepo repository.VisitorRepository,
	tempRepo repository.TempVisitorRepository,
	auditRepo repository.VisitorAuditLogRepository,
	encoder QRCodeEncoder,
	notifier Notifier,
) *VisitorService {
	return &VisitorService{
		cfg:         cfg,
		visitorRepo: visitorRepo,
		tempRepo:    tempRepo,
		auditRepo:   auditRepo,
		encoder:     encoder,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *VisitorService) transitions() visitorTransitions {
	return visitorTransitions{visitorRepo: s.visitorRepo, auditRepo: s.auditRepo}
}

// SubmitDetails 联系方式验证通过后提交登记，等待管理员审核
func (s *VisitorService) SubmitDetails(rawContact string, form VisitorForm, imageRef string) (uint, error) {
	contact, contactType, err := classifyContact(rawContact)
	if err != nil {
		return 0, err
	}
	temp, err := s.tempRepo.GetByContact(contact)
	if err != nil {
		return 0, err
	}
	if temp == nil || !temp.OtpVerified {
		return 0, ErrVisitorNotVerified
	}
	switch contactType {
	case constants.ContactTypePhone:
		if strings.TrimSpace(form.Phone) == "" {
			form.Phone = contact
		}
	case constants.ContactTypeEmail:
		if strings.TrimSpace(form.Email) == "" {
			form.Email = contact
		}
	}
	if missing := form.MissingFields(); len(missing) > 0 {
		return 0, &MissingFieldsError{Fields: missing}
	}

	visitor := form.toVisitor(imageRef)
	otpExpiry := temp.OtpExpiry
	visitor.Otp = temp.Otp
	visitor.OtpExpiry = &otpExpiry
	visitor.OtpVerified = true
	visitor.IsVerified = models.VerificationUnverified
	err = s.visitorRepo.Transaction(func(tx *gorm.DB) error {
		tempRepo := s.tempRepo.WithTx(tx)
		consumed, err := tempRepo.ConsumeVerification(contact)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrVisitorNotVerified
		}
		if err := tempRepo.UpdateForm(contact, map[string]interface{}{
			"first_name":     visitor.FirstName,
			"last_name":      visitor.LastName,
			"email":          visitor.Email,
			"gender":         visitor.Gender,
			"company_id":     visitor.CompanyID,
			"department_id":  visitor.DepartmentID,
			"designation_id": visitor.DesignationID,
			"whom_to_meet":   visitor.WhomToMeet,
			"purpose":        visitor.PurposeID,
			"aadhar_no":      visitor.AadharNo,
			"address":        visitor.Address,
			"image":          visitor.Image,
		}); err != nil {
			return err
		}
		return s.visitorRepo.WithTx(tx).Create(&visitor)
	})
	if err != nil {
		return 0, err
	}
	logger.Component("visitor").Infow("visitor_submitted", "visitor_id", visitor.ID, "company_id", visitor.CompanyID)
	if s.notifier != nil {
		s.notifier.VisitorSubmitted(visitor.ID)
	}
	return visitor.ID, nil
}

// SubmitWithoutOtpResult 免验证登记结果
type SubmitWithoutOtpResult struct {
	VisitorID uint
	QRCode    string
}

// SubmitWithoutOtp 前台代登记，跳过联系方式验证与审核，直接签发二维码
func (s *VisitorService) SubmitWithoutOtp(form VisitorForm, imageRef string, meta AuditMeta) (*SubmitWithoutOtpResult, error) {
	if missing := form.MissingFields(); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	visitor := form.toVisitor(imageRef)
	visitor.OtpVerified = true
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
		return s.auditRepo.WithTx(tx).Create(buildVisitorAuditLog(visitor.ID, "", constants.QRStatusActive, constants.VisitorAuditSourceBypass, meta, nil))
	})
	if err != nil {
		return nil, err
	}
	logger.Component("visitor").Infow("visitor_submitted_without_otp", "visitor_id", visitor.ID)
	return &SubmitWithoutOtpResult{VisitorID: visitor.ID, QRCode: qrCode}, nil
}

// ApproveResult 审核通过结果
type ApproveResult struct {
	VisitorID uint
	QRCode    string
}

// Approve 审核通过并签发二维码
func (s *VisitorService) Approve(id uint, meta AuditMeta) (*ApproveResult, error) {
	visitor, err := s.visitorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, ErrVisitorNotFound
	}
	if err := verificationDecisionError(visitor.IsVerified); err != nil {
		return nil, err
	}

	qrCode, err := s.encoder.Encode(QRPayload(visitor.ID))
	if err != nil {
		return nil, err
	}
	applied, err := s.transitions().apply(visitor.ID, visitor.QRStatus, constants.QRStatusActive, constants.VisitorAuditSourceApprove, meta, nil,
		func(repo repository.VisitorRepository) (bool, error) {
			return repo.IssueQRCode(visitor.ID, qrCode)
		})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, s.reloadDecisionError(visitor.ID)
	}
	logger.Component("visitor").Infow("visitor_approved", "visitor_id", visitor.ID, "operator_admin_id", meta.OperatorAdminID)
	if s.notifier != nil {
		s.notifier.VisitorApproved(visitor.ID)
	}
	return &ApproveResult{VisitorID: visitor.ID, QRCode: qrCode}, nil
}

// Reject 拒绝访客，拒绝为终态且不会签发二维码
func (s *VisitorService) Reject(id uint, meta AuditMeta) error {
	visitor, err := s.visitorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if visitor == nil {
		return ErrVisitorNotFound
	}
	if visitor.IsVerified == models.VerificationVerified {
		return ErrVisitorAlreadyVerified
	}
	applied, err := s.visitorRepo.MarkRejected(visitor.ID)
	if err != nil {
		return err
	}
	if !applied {
		return ErrVisitorAlreadyVerified
	}
	logger.Component("visitor").Infow("visitor_rejected",
		"visitor_id", visitor.ID,
		"operator_admin_id", meta.OperatorAdminID,
		"request_id", meta.RequestID,
	)
	if s.notifier != nil {
		s.notifier.VisitorRejected(visitor.ID)
	}
	return nil
}

func verificationDecisionError(state models.VerificationState) error {
	switch state {
	case models.VerificationVerified:
		return ErrVisitorAlreadyVerified
	case models.VerificationRejected:
		return ErrVisitorRejected
	default:
		return nil
	}
}

func (s *VisitorService) reloadDecisionError(id uint) error {
	visitor, err := s.visitorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if visitor == nil {
		return ErrVisitorNotFound
	}
	if err := verificationDecisionError(visitor.IsVerified); err != nil {
		return err
	}
	return ErrScanConflict
}

// GetVisitor 获取访客原始记录
func (s *VisitorService) GetVisitor(id uint) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, ErrVisitorNotFound
	}
	return visitor, nil
}

// VerifyDetails 审核页使用的访客详情，照片转换为可访问地址
func (s *VisitorService) VerifyDetails(id uint) (*models.VisitorDetail, error) {
	detail, err := s.visitorRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrVisitorNotFound
	}
	detail.Image = s.ImageURL(detail.Image)
	return detail, nil
}

// ImageURL 照片相对路径转为完整地址，空路径返回空串
func (s *VisitorService) ImageURL(path string) string {
	return buildImageURL(s.baseURL(), path)
}

func (s *VisitorService) baseURL() string {
	if s.cfg == nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
}

func buildImageURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")
	return baseURL + "/" + path
}

// Update 修改访客资料，不触碰审核与二维码状态
func (s *VisitorService) Update(id uint, form VisitorForm, imageRef string) error {
	if missing := form.MissingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	visitor, err := s.visitorRepo.GetByID(id)
	if err != nil {
		return err
	}
	if visitor == nil {
		return ErrVisitorNotFound
	}
	next := form.toVisitor(imageRef)
	fields := map[string]interface{}{
		"first_name":     next.FirstName,
		"last_name":      next.LastName,
		"email":          next.Email,
		"phone":          next.Phone,
		"gender":         next.Gender,
		"aadhar_no":      next.AadharNo,
		"address":        next.Address,
		"company_id":     next.CompanyID,
		"department_id":  next.DepartmentID,
		"designation_id": next.DesignationID,
		"whom_to_meet":   next.WhomToMeet,
		"purpose":        next.PurposeID,
	}
	if next.Image != "" {
		fields["image"] = next.Image
	}
	return s.visitorRepo.UpdateProfile(id, fields)
}

// UpdateStatusLabel 更新前台状态标签
func (s *VisitorService) UpdateStatusLabel(id uint, status string) error {
	status = strings.TrimSpace(status)
	if status == "" || len(status) > 50 {
		return ErrVisitorStatusInvalid
	}
	updated, err := s.visitorRepo.UpdateStatusLabel(id, status)
	if err != nil {
		return err
	}
	if !updated {
		visitor, err := s.visitorRepo.GetByID(id)
		if err != nil {
			return err
		}
		if visitor == nil {
			return ErrVisitorNotFound
		}
	}
	return nil
}

// VisitorCardEmployee 访客卡上的被访人
type VisitorCardEmployee struct {
	EmployeeID uint   `json:"employee_id"`
	Name       string `json:"name"`
}

// VisitorCard 访客卡数据
type VisitorCard struct {
	VisitorID  uint                `json:"visitor_id"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Image      string              `json:"image"`
	Purpose    string              `json:"purpose"`
	QRCode     string              `json:"qr_code"`
	WhomToMeet VisitorCardEmployee `json:"whom_to_meet"`
}

// GenerateCard 生成访客卡，仅二维码有效的访客可出卡
func (s *VisitorService) GenerateCard(id uint) (*VisitorCard, error) {
	detail, err := s.visitorRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrVisitorNotFound
	}
	if detail.QRStatus != constants.QRStatusActive || detail.QRCode == nil {
		return nil, ErrVisitorCardUnavailable
	}
	return &VisitorCard{
		VisitorID: detail.ID,
		FirstName: detail.FirstName,
		LastName:  detail.LastName,
		Email:     detail.Email,
		Phone:     detail.Phone,
		Image:     s.ImageURL(detail.Image),
		Purpose:   detail.PurposeText,
		QRCode:    *detail.QRCode,
		WhomToMeet: VisitorCardEmployee{
			EmployeeID: detail.EmployeeID,
			Name:       detail.EmployeeName,
		},
	}, nil
}

// ListAdmin 管理端访客列表
func (s *VisitorService) ListAdmin(filter repository.VisitorListFilter) ([]models.VisitorDetail, int64, error) {
	rows, total, err := s.visitorRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].Image = s.ImageURL(rows[i].Image)
	}
	return rows, total, nil
}

// ListAuditLogs 访客状态流转审计日志
func (s *VisitorService) ListAuditLogs(filter repository.VisitorAuditLogListFilter) ([]models.VisitorAuditLog, int64, error) {
	return s.auditRepo.List(filter)
}

// ExpireStale 批量过期签入超时的访客，返回本次过期数量
func (s *VisitorService) ExpireStale(limit int) (int, error) {
	cutoff := s.now().Add(-resolveExpiryDuration(s.cfg))
	visitors, err := s.visitorRepo.ListCheckedInBefore(cutoff, limit)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, visitor := range visitors {
		id := visitor.ID
		applied, err := s.transitions().apply(id, constants.QRStatusCheckedIn, constants.QRStatusExpired, constants.VisitorAuditSourceSweep, AuditMeta{}, nil,
			func(repo repository.VisitorRepository) (bool, error) {
				return repo.MarkExpired(id, constants.QRStatusCheckedIn)
			})
		if err != nil {
			return expired, err
		}
		if applied {
			expired++
		}
	}
	return expired, nil
}

func resolveExpiryDuration(cfg *config.VisitorConfig) time.Duration {
	hours := 24
	if cfg != nil && cfg.ExpiryHours > 0 {
		hours = cfg.ExpiryHours
	}
	return time.Duration(hours) * time.Hour
}

func resolveExitCooldown(cfg *config.VisitorConfig) time.Duration {
	seconds := 5
	if cfg != nil && cfg.ExitCooldownSeconds > 0 {
		seconds = cfg.ExitCooldownSeconds
	}
	return time.Duration(seconds) * time.Second
}
