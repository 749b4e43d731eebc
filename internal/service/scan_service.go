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
)

// ScanContext 扫码被拒时返回给前台展示的上下文
type ScanContext struct {
	VisitorName  string     `json:"visitor_name,omitempty"`
	Status       string     `json:"status,omitempty"`
	SignInTime   *time.Time `json:"sign_in_time,omitempty"`
	SignOutTime  *time.Time `json:"sign_out_time,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
	Purpose      string     `json:"purpose,omitempty"`
}

// ScanRejection 扫码拒绝，Err 为具体原因
type ScanRejection struct {
	Err     error
	Context ScanContext
}

func (e *ScanRejection) Error() string {
	if e.Context.Status != "" {
		return fmt.Sprintf("%s (status: %s)", e.Err.Error(), e.Context.Status)
	}
	return e.Err.Error()
}

func (e *ScanRejection) Unwrap() error {
	return e.Err
}

func rejectScan(err error, ctx ScanContext) error {
	return &ScanRejection{Err: err, Context: ctx}
}

// ScanInput 扫码请求
type ScanInput struct {
	QRCode   string
	ScanType string
	Meta     AuditMeta
}

// ScanResult 扫码成功结果
type ScanResult struct {
	Success         bool       `json:"success"`
	Message         string     `json:"message"`
	ScanType        string     `json:"scanType"`
	VisitorID       uint       `json:"visitor_id"`
	VisitorName     string     `json:"visitor_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Image           *string    `json:"image"`
	EmployeeName    string     `json:"employee_name"`
	Purpose         string     `json:"purpose"`
	SignInTime      *time.Time `json:"sign_in_time"`
	SignOutTime     *time.Time `json:"sign_out_time,omitempty"`
	Duration        string     `json:"duration,omitempty"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	Status          string     `json:"status"`
}

// ScanService 二维码签入签出
// 先读取当前状态用于提示，再以当前状态为条件更新；条件不满足说明被并发扫码抢先。
type ScanService struct {
	cfg         *config.VisitorConfig
	visitorRepo repository.VisitorRepository
	auditRepo   repository.VisitorAuditLogRepository
	now         func() time.Time
}

// NewScanService 创建扫码服务
func NewScanService(cfg *config.VisitorConfig, visitorRepo repository.VisitorRepository, auditRepo repository.VisitorAuditLogRepository) *ScanService {
	return &ScanService{
		cfg:         cfg,
		visitorRepo: visitorRepo,
		auditRepo:   auditRepo,
		now:         time.Now,
	}
}

func (s *ScanService) transitions() visitorTransitions {
	return visitorTransitions{visitorRepo: s.visitorRepo, auditRepo: s.auditRepo}
}

// Scan 处理一次扫码
func (s *ScanService) Scan(input ScanInput) (*ScanResult, error) {
	visitorID, err := ParseQRPayload(input.QRCode)
	if err != nil {
		return nil, err
	}
	visitor, err := s.visitorRepo.GetDetail(visitorID)
	if err != nil {
		return nil, err
	}
	if visitor == nil {
		return nil, ErrVisitorNotFound
	}

	scanType := strings.ToLower(strings.TrimSpace(input.ScanType))
	if scanType == "" {
		scanType = detectScanType(visitor.QRStatus)
	}
	name := visitor.FullName()

	switch visitor.QRStatus {
	case constants.QRStatusExpired:
		return nil, rejectScan(ErrVisitorExpired, ScanContext{VisitorName: name, Status: constants.QRStatusExpired})
	case constants.QRStatusCheckedOut:
		return nil, rejectScan(ErrAlreadyCheckedOut, ScanContext{
			VisitorName: name,
			Status:      visitor.QRStatus,
			SignInTime:  visitor.SignInTime,
			SignOutTime: visitor.SignOutTime,
		})
	}

	now := s.now()
	if visitor.QRStatus == constants.QRStatusCheckedIn && visitor.SignInTime != nil &&
		now.Sub(*visitor.SignInTime) > resolveExpiryDuration(s.cfg) {
		if _, err := s.expire(visitor, input.Meta); err != nil {
			return nil, err
		}
		return nil, rejectScan(ErrVisitorExpired, ScanContext{VisitorName: name, Status: constants.QRStatusExpired})
	}

	switch scanType {
	case constants.ScanTypeEntry:
		return s.checkIn(visitor, now, input.Meta)
	case constants.ScanTypeExit:
		return s.checkOut(visitor, now, input.Meta)
	default:
		return nil, ErrScanTypeInvalid
	}
}

func detectScanType(qrStatus string) string {
	if qrStatus == constants.QRStatusCheckedIn {
		return constants.ScanTypeExit
	}
	return constants.ScanTypeEntry
}

func (s *ScanService) expire(visitor *models.VisitorDetail, meta AuditMeta) (bool, error) {
	id := visitor.ID
	applied, err := s.transitions().apply(id, constants.QRStatusCheckedIn, constants.QRStatusExpired, constants.VisitorAuditSourceLazy, meta, nil,
		func(repo repository.VisitorRepository) (bool, error) {
			return repo.MarkExpired(id, constants.QRStatusCheckedIn)
		})
	if err != nil {
		return false, err
	}
	if applied {
		logger.Component("scan").Infow("visitor_expired", "visitor_id", id, "source", constants.VisitorAuditSourceLazy)
	}
	return applied, nil
}

func (s *ScanService) checkIn(visitor *models.VisitorDetail, now time.Time, meta AuditMeta) (*ScanResult, error) {
	name := visitor.FullName()
	if visitor.QRStatus == constants.QRStatusCheckedIn {
		return nil, rejectScan(ErrAlreadyCheckedIn, ScanContext{
			VisitorName:  name,
			Status:       visitor.QRStatus,
			SignInTime:   visitor.SignInTime,
			EmployeeName: visitor.EmployeeName,
			Purpose:      visitor.PurposeText,
		})
	}
	if visitor.QRStatus != constants.QRStatusActive {
		return nil, rejectScan(ErrQRStateInvalid, ScanContext{VisitorName: name, Status: visitor.QRStatus})
	}

	id := visitor.ID
	applied, err := s.transitions().apply(id, constants.QRStatusActive, constants.QRStatusCheckedIn, constants.VisitorAuditSourceScan, meta,
		models.JSON{"scan_type": constants.ScanTypeEntry},
		func(repo repository.VisitorRepository) (bool, error) {
			return repo.MarkCheckedIn(id, now)
		})
	if err != nil {
		return nil, err
	}
	if !applied {
		logger.Component("scan").Warnw("scan_conflict", "visitor_id", id, "scan_type", constants.ScanTypeEntry)
		return nil, rejectScan(ErrScanConflict, ScanContext{VisitorName: name, Status: "conflict"})
	}
	logger.Component("scan").Infow("visitor_checked_in", "visitor_id", id, "request_id", meta.RequestID)

	signIn := now
	result := s.baseResult(visitor, constants.ScanTypeEntry)
	result.Message = "Entry scan successful - Visitor checked in"
	result.SignInTime = &signIn
	result.Status = constants.QRStatusCheckedIn
	return result, nil
}

func (s *ScanService) checkOut(visitor *models.VisitorDetail, now time.Time, meta AuditMeta) (*ScanResult, error) {
	name := visitor.FullName()
	if visitor.QRStatus == constants.QRStatusActive {
		return nil, rejectScan(ErrNotCheckedIn, ScanContext{VisitorName: name, Status: constants.QRStatusActive})
	}
	if visitor.QRStatus != constants.QRStatusCheckedIn || visitor.SignInTime == nil {
		return nil, rejectScan(ErrQRStateInvalid, ScanContext{VisitorName: name, Status: visitor.QRStatus})
	}
	elapsed := now.Sub(*visitor.SignInTime)
	if elapsed < resolveExitCooldown(s.cfg) {
		return nil, rejectScan(ErrExitCooldown, ScanContext{
			VisitorName: name,
			Status:      visitor.QRStatus,
			SignInTime:  visitor.SignInTime,
		})
	}

	id := visitor.ID
	applied, err := s.transitions().apply(id, constants.QRStatusCheckedIn, constants.QRStatusCheckedOut, constants.VisitorAuditSourceScan, meta,
		models.JSON{"scan_type": constants.ScanTypeExit},
		func(repo repository.VisitorRepository) (bool, error) {
			return repo.MarkCheckedOut(id, now)
		})
	if err != nil {
		return nil, err
	}
	if !applied {
		logger.Component("scan").Warnw("scan_conflict", "visitor_id", id, "scan_type", constants.ScanTypeExit)
		return nil, rejectScan(ErrScanConflict, ScanContext{VisitorName: name, Status: "conflict"})
	}
	logger.Component("scan").Infow("visitor_checked_out", "visitor_id", id, "request_id", meta.RequestID)

	signOut := now
	minutes := int64(elapsed / time.Minute)
	result := s.baseResult(visitor, constants.ScanTypeExit)
	result.Message = "Exit scan successful - Visitor checked out"
	result.SignInTime = visitor.SignInTime
	result.SignOutTime = &signOut
	result.Duration = formatVisitDuration(minutes)
	result.DurationMinutes = &minutes
	result.Status = constants.QRStatusCheckedOut
	return result, nil
}

func (s *ScanService) baseResult(visitor *models.VisitorDetail, scanType string) *ScanResult {
	result := &ScanResult{
		Success:      true,
		ScanType:     scanType,
		VisitorID:    visitor.ID,
		VisitorName:  visitor.FullName(),
		Email:        visitor.Email,
		Phone:        visitor.Phone,
		EmployeeName: visitor.EmployeeName,
		Purpose:      visitor.PurposeText,
	}
	base := ""
	if s.cfg != nil {
		base = strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
	}
	if image := buildImageURL(base, visitor.Image); image != "" {
		result.Image = &image
	}
	return result
}

// formatVisitDuration 停留时长，格式 "Xh Ym"
func formatVisitDuration(totalMinutes int64) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}
