package models

import (
	"time"

	"gorm.io/gorm"
)

// VerifyCode 联系方式验证码记录（预约查询等场景）
type VerifyCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`                            // 主键
	Contact      string         `gorm:"type:varchar(255);index;not null" json:"contact"` // 手机号或邮箱
	ContactType  string         `gorm:"type:varchar(10);not null" json:"contact_type"`   // phone / email
	Purpose      string         `gorm:"index;not null" json:"purpose"`                   // 用途
	Code         string         `gorm:"not null" json:"-"`                               // 验证码（不返回给前端）
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`                         // 过期时间
	VerifiedAt   *time.Time     `gorm:"index" json:"verified_at"`                        // 验证时间
	AttemptCount int            `gorm:"default:0" json:"attempt_count"`                  // 尝试次数
	SentAt       time.Time      `gorm:"index" json:"sent_at"`                            // 发送时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (VerifyCode) TableName() string {
	return "verify_codes"
}
