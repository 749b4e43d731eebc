package models

import "time"

// AuthzAuditLog 账号与角色变更审计，只追加
// company_id 取操作人所属公司，公司管理员只能查看本公司的记录。
type AuthzAuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CompanyID uint      `gorm:"not null;default:0;index:idx_authz_audit_company_time,priority:1" json:"company_id"`
	CreatedAt time.Time `gorm:"index;index:idx_authz_audit_company_time,priority:2" json:"created_at"`
	RequestID string    `gorm:"type:varchar(64);not null;default:''" json:"request_id"`

	OperatorAdminID  uint   `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string `gorm:"type:varchar(64);not null;default:''" json:"operator_username"`
	TargetAdminID    *uint  `gorm:"index" json:"target_admin_id,omitempty"`
	TargetUsername   string `gorm:"type:varchar(64);not null;default:''" json:"target_username"`

	// action 见 service.AuthzAction*；role/object/method 仅角色与授权类动作填写
	Action     string `gorm:"type:varchar(40);index;not null" json:"action"`
	Role       string `gorm:"type:varchar(120);index;not null;default:''" json:"role"`
	Object     string `gorm:"type:varchar(255);not null;default:''" json:"object"`
	Method     string `gorm:"type:varchar(10);not null;default:''" json:"method"`
	DetailJSON JSON   `gorm:"type:json" json:"detail"`
}

// TableName 表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
