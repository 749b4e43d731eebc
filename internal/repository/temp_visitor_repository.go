package repository

import (
	"errors"
	"time"

	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TempVisitorRepository 访客暂存记录数据访问接口
type TempVisitorRepository interface {
	UpsertOtp(contact, contactType, otp string, expiry time.Time) error
	GetByContact(contact string) (*models.TempVisitor, error)
	MarkOtpVerified(contact string) error
	IncrementAttempt(contact string) error
	ConsumeVerification(contact string) (bool, error)
	UpdateForm(contact string, fields map[string]interface{}) error
	WithTx(tx *gorm.DB) TempVisitorRepository
}

// GormTempVisitorRepository GORM 实现
type GormTempVisitorRepository struct {
	db *gorm.DB
}

// NewTempVisitorRepository 创建访客暂存仓库
func NewTempVisitorRepository(db *gorm.DB) *GormTempVisitorRepository {
	return &GormTempVisitorRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTempVisitorRepository) WithTx(tx *gorm.DB) TempVisitorRepository {
	if tx == nil {
		return r
	}
	return &GormTempVisitorRepository{db: tx}
}

// UpsertOtp 按联系方式写入验证码，重复发送时覆盖并重置验证标记与错误次数
func (r *GormTempVisitorRepository) UpsertOtp(contact, contactType, otp string, expiry time.Time) error {
	row := models.TempVisitor{
		Contact:     contact,
		ContactType: contactType,
		Otp:         otp,
		OtpExpiry:   expiry,
		OtpVerified: false,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"otp":           otp,
			"otp_expiry":    expiry,
			"otp_verified":  false,
			"attempt_count": 0,
			"contact_type":  contactType,
			"updated_at":    time.Now(),
		}),
	}).Create(&row).Error
}

// GetByContact 根据联系方式获取暂存记录
func (r *GormTempVisitorRepository) GetByContact(contact string) (*models.TempVisitor, error) {
	var row models.TempVisitor
	if err := r.db.Where("phone = ?", contact).Order("otp_expiry DESC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// MarkOtpVerified 标记验证码已验证（不删除记录）
func (r *GormTempVisitorRepository) MarkOtpVerified(contact string) error {
	return r.db.Model(&models.TempVisitor{}).
		Where("phone = ?", contact).
		Update("otp_verified", true).Error
}

// IncrementAttempt 记录一次错误验证码
func (r *GormTempVisitorRepository) IncrementAttempt(contact string) error {
	return r.db.Model(&models.TempVisitor{}).
		Where("phone = ?", contact).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}

// ConsumeVerification 提交登记时清除验证标记，返回 false 表示已被消费或未验证
func (r *GormTempVisitorRepository) ConsumeVerification(contact string) (bool, error) {
	result := r.db.Model(&models.TempVisitor{}).
		Where("phone = ? AND otp_verified = ?", contact, true).
		Update("otp_verified", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateForm 写入登记表单内容
func (r *GormTempVisitorRepository) UpdateForm(contact string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.TempVisitor{}).Where("phone = ?", contact).Updates(fields).Error
}
