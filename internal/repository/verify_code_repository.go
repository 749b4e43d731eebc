package repository

import (
	"errors"
	"time"

	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// VerifyCodeRepository 联系方式验证码数据访问接口
type VerifyCodeRepository interface {
	Create(code *models.VerifyCode) error
	GetLatest(contact, purpose string) (*models.VerifyCode, error)
	MarkVerified(id uint, verifiedAt time.Time) error
	IncrementAttempt(id uint) error
}

// GormVerifyCodeRepository GORM 实现
type GormVerifyCodeRepository struct {
	db *gorm.DB
}

// NewVerifyCodeRepository 创建验证码仓库
func NewVerifyCodeRepository(db *gorm.DB) *GormVerifyCodeRepository {
	return &GormVerifyCodeRepository{db: db}
}

// Create 创建验证码记录
func (r *GormVerifyCodeRepository) Create(code *models.VerifyCode) error {
	return r.db.Create(code).Error
}

// GetLatest 获取某联系方式在指定用途下最新的验证码
func (r *GormVerifyCodeRepository) GetLatest(contact, purpose string) (*models.VerifyCode, error) {
	var record models.VerifyCode
	if err := r.db.Where("contact = ? AND purpose = ?", contact, purpose).
		Order("sent_at desc, id desc").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MarkVerified 标记验证码已验证
func (r *GormVerifyCodeRepository) MarkVerified(id uint, verifiedAt time.Time) error {
	return r.db.Model(&models.VerifyCode{}).
		Where("id = ?", id).
		Update("verified_at", verifiedAt).Error
}

// IncrementAttempt 增加验证次数
func (r *GormVerifyCodeRepository) IncrementAttempt(id uint) error {
	return r.db.Model(&models.VerifyCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
