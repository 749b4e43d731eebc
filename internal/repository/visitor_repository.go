package repository

import (
	"errors"
	"time"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// VisitorRepository 访客数据访问接口
// 状态流转方法均为条件更新，返回值 bool 表示本次写入是否生效。
type VisitorRepository interface {
	WithTx(tx *gorm.DB) VisitorRepository
	Transaction(fn func(tx *gorm.DB) error) error
	Create(visitor *models.Visitor) error
	GetByID(id uint) (*models.Visitor, error)
	GetDetail(id uint) (*models.VisitorDetail, error)
	FindActiveByContact(contact string) (*models.Visitor, error)
	UpdateProfile(id uint, fields map[string]interface{}) error
	UpdateStatusLabel(id uint, status string) (bool, error)
	IssueQRCode(id uint, qrCode string) (bool, error)
	SetQRCode(id uint, qrCode string) (bool, error)
	MarkRejected(id uint) (bool, error)
	MarkCheckedIn(id uint, at time.Time) (bool, error)
	MarkCheckedOut(id uint, at time.Time) (bool, error)
	MarkExpired(id uint, fromStatus string) (bool, error)
	ListCheckedInBefore(before time.Time, limit int) ([]models.Visitor, error)
	ListAdmin(filter VisitorListFilter) ([]models.VisitorDetail, int64, error)
}

// GormVisitorRepository GORM 实现
type GormVisitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository 创建访客仓库
func NewVisitorRepository(db *gorm.DB) *GormVisitorRepository {
	return &GormVisitorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVisitorRepository) WithTx(tx *gorm.DB) VisitorRepository {
	if tx == nil {
		return r
	}
	return &GormVisitorRepository{db: tx}
}

// Transaction 执行事务
func (r *GormVisitorRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建访客
func (r *GormVisitorRepository) Create(visitor *models.Visitor) error {
	return r.db.Create(visitor).Error
}

// GetByID 根据 ID 获取访客
func (r *GormVisitorRepository) GetByID(id uint) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := r.db.Where("visitor_id = ?", id).First(&visitor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visitor, nil
}

// GetDetail 获取访客详情，关联被访员工、来访目的与公司
func (r *GormVisitorRepository) GetDetail(id uint) (*models.VisitorDetail, error) {
	var rows []models.VisitorDetail
	if err := r.detailQuery().Where("v.visitor_id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindActiveByContact 按邮箱或手机号查找持有有效二维码的访客
func (r *GormVisitorRepository) FindActiveByContact(contact string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.
		Where("(email = ? OR phone = ?) AND qr_status = ?", contact, contact, constants.QRStatusActive).
		Order("visitor_id DESC").
		First(&visitor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visitor, nil
}

// UpdateProfile 更新访客资料字段，调用方需保证不包含状态字段
func (r *GormVisitorRepository) UpdateProfile(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Visitor{}).Where("visitor_id = ?", id).Updates(fields).Error
}

// UpdateStatusLabel 更新前台状态标签
func (r *GormVisitorRepository) UpdateStatusLabel(id uint, status string) (bool, error) {
	result := r.db.Model(&models.Visitor{}).Where("visitor_id = ?", id).Update("status", status)
	return result.RowsAffected > 0, result.Error
}

// IssueQRCode 审核通过并签发二维码，仅对待审核访客生效
func (r *GormVisitorRepository) IssueQRCode(id uint, qrCode string) (bool, error) {
	result := r.db.Model(&models.Visitor{}).
		Where("visitor_id = ? AND is_verified = ?", id, models.VerificationUnverified).
		Updates(map[string]interface{}{
			"is_verified":  models.VerificationVerified,
			"qr_code":      qrCode,
			"qr_status":    constants.QRStatusActive,
			"badge_active": true,
		})
	return result.RowsAffected > 0, result.Error
}

// SetQRCode 为已通过但尚未写入二维码的访客补写二维码
func (r *GormVisitorRepository) SetQRCode(id uint, qrCode string) (bool, error) {
	result := r.db.Model(&models.Visitor{}).
		Where("visitor_id = ? AND is_verified = ? AND qr_code IS NULL", id, models.VerificationVerified).
		Update("qr_code", qrCode)
	return result.RowsAffected > 0, result.Error
}

// MarkRejected 拒绝访客，已通过的访客不可拒绝
func (r *GormVisitorRepository) MarkRejected(id uint) (bool, error) {
	result := r.db.Model(&models.Visitor{}).
		Where("visitor_id = ? AND is_verified <> ?", id, models.VerificationVerified).
		Update("is_verified", models.VerificationRejected)
	return result.RowsAffected > 0, result.Error
}

// MarkCheckedIn active -> checked_in
func (r *GormVisitorRepository) MarkCheckedIn(id uint, at time.Time) (bool, error) {
	result := r.db.Model(&models.Visitor{}).
		Where("visitor_id = ? AND qr_status = ?", id, constants.QRStatusActive).
		Updates(map[string]interface{}{
			"qr_status":    constants.QRStatusCheckedIn,
			"sign_in_time": at,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkCheckedOut checked_in -> checked_out，同时清除徽章有效标记
func (r *GormVisitorRepository) MarkCheckedOut(id uint, at time.Time) (bool, error) {
	result := r.db.Model(&models.Visitor{}).
		Where("visitor_id = ? AND qr_status = ?", id, constants.QRStatusCheckedIn).
		Updates(map[string]interface{}{
			"qr_status":     constants.QRStatusCheckedOut,
			"sign_out_time": at,
			"badge_active":  false,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkExpired active/checked_in -> expired，fromStatus 为调用方读取到的当前状态
func (r *GormVisitorRepository) MarkExpired(id uint, fromStatus string) (bool, error) {
	if fromStatus != constants.QRStatusActive && fromStatus != constants.QRStatusCheckedIn {
		return false, nil
	}
	result := r.db.Model(&models.Visitor{}).
		Where("visitor_id = ? AND qr_status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"qr_status":    constants.QRStatusExpired,
			"badge_active": false,
		})
	return result.RowsAffected > 0, result.Error
}

// ListCheckedInBefore 查询签入时间早于指定时间的在场访客
func (r *GormVisitorRepository) ListCheckedInBefore(before time.Time, limit int) ([]models.Visitor, error) {
	if limit <= 0 {
		limit = 100
	}
	visitors := make([]models.Visitor, 0)
	err := r.db.
		Where("qr_status = ? AND sign_in_time IS NOT NULL AND sign_in_time < ?", constants.QRStatusCheckedIn, before).
		Order("sign_in_time ASC").
		Limit(limit).
		Find(&visitors).Error
	if err != nil {
		return nil, err
	}
	return visitors, nil
}

// ListAdmin 管理端访客列表
func (r *GormVisitorRepository) ListAdmin(filter VisitorListFilter) ([]models.VisitorDetail, int64, error) {
	var total int64
	if err := applyVisitorFilter(r.db.Table("visitors AS v"), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]models.VisitorDetail, 0)
	query := applyVisitorFilter(r.detailQuery(), filter).
		Order("v.sign_in_time DESC").
		Order("v.visitor_id DESC")
	if err := applyPagination(query, filter.Page, filter.PageSize).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func applyVisitorFilter(query *gorm.DB, filter VisitorListFilter) *gorm.DB {
	if filter.QRStatus != "" {
		query = query.Where("v.qr_status = ?", filter.QRStatus)
	}
	if filter.IsVerified != nil {
		query = query.Where("v.is_verified = ?", *filter.IsVerified)
	}
	if filter.CompanyID != 0 {
		query = query.Where("v.company_id = ?", filter.CompanyID)
	}
	return applyKeyword(query, filter.Keyword, []string{"v.first_name", "v.last_name", "v.email", "v.phone"})
}

func (r *GormVisitorRepository) detailQuery() *gorm.DB {
	return r.db.Table("visitors AS v").
		Select("v.*, " + fullNameExpr("e") + " AS employee_name, e.emp_id AS employee_id, p.purpose AS purpose_text, c.company_name AS company_name").
		Joins("LEFT JOIN employees e ON e.emp_id = v.whom_to_meet").
		Joins("LEFT JOIN purpose p ON p.purpose_id = v.purpose").
		Joins("LEFT JOIN companies c ON c.company_id = v.company_id")
}
