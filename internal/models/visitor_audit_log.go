package models

import "time"

// VisitorAuditLog 访客状态流转审计日志
// 说明：每次 qr_status 或审核状态变化写入一行，用于追溯与校验流转顺序。
type VisitorAuditLog struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	VisitorID       uint      `gorm:"index;not null" json:"visitor_id"`
	FromStatus      string    `gorm:"type:varchar(20);not null;default:''" json:"from_status"`
	ToStatus        string    `gorm:"type:varchar(20);not null;index" json:"to_status"`
	Source          string    `gorm:"type:varchar(50);index;not null" json:"source"`
	OperatorAdminID *uint     `gorm:"index" json:"operator_admin_id,omitempty"`
	RequestID       string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DetailJSON      JSON      `gorm:"type:json" json:"detail"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (VisitorAuditLog) TableName() string {
	return "visitor_audit_logs"
}
