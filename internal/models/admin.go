package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ProtectedAdminUsername 初始超级管理员，不可删除也不可降级
const ProtectedAdminUsername = "admin"

// Admin 后台账号（前台接待、保安、公司管理员等）
// CompanyID 为空表示全局账号；非空时所有列表与报表只看本公司数据。
type Admin struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	DisplayName  string `gorm:"type:varchar(100)" json:"display_name"`
	PasswordHash string `gorm:"not null" json:"-"`
	CompanyID    *uint  `gorm:"index" json:"company_id"`
	IsSuper      bool   `gorm:"not null;default:false;index" json:"is_super"`

	// 改密或强制下线时递增版本并记录时间点，早于该时间签发的 token 一律失效
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`

	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 表名
func (Admin) TableName() string {
	return "admins"
}

// IsProtected 是否为初始超级管理员
func (a *Admin) IsProtected() bool {
	return a != nil && strings.EqualFold(strings.TrimSpace(a.Username), ProtectedAdminUsername)
}
