package models

import "time"

// TempVisitor 访客自助登记暂存记录，按联系方式（手机号或邮箱）唯一
// 说明：验证码校验通过后不立即删除，便于客户端在有效期内重试；提交登记时清除验证标记。
type TempVisitor struct {
	ID            uint      `gorm:"column:temp_visitor_id;primaryKey" json:"temp_visitor_id"`
	Contact       string    `gorm:"column:phone;type:varchar(255);uniqueIndex;not null" json:"phone"`
	ContactType   string    `gorm:"type:varchar(10);not null;default:'phone'" json:"contact_type"`
	Otp           string    `gorm:"type:varchar(10);not null" json:"-"`
	OtpExpiry     time.Time `gorm:"column:otp_expiry;index" json:"otp_expiry"`
	OtpVerified   bool      `gorm:"not null;default:false" json:"otp_verified"`
	AttemptCount  int       `gorm:"not null;default:0" json:"-"`
	FirstName     string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100)" json:"last_name"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	Gender        string    `gorm:"type:varchar(20)" json:"gender"`
	CompanyID     uint      `json:"company_id"`
	DepartmentID  uint      `json:"department_id"`
	DesignationID uint      `json:"designation_id"`
	WhomToMeet    uint      `gorm:"column:whom_to_meet" json:"whom_to_meet"`
	PurposeID     uint      `gorm:"column:purpose" json:"purpose"`
	AadharNo      string    `gorm:"column:aadhar_no;type:varchar(32)" json:"aadhar_no"`
	Address       string    `gorm:"type:text" json:"address"`
	Image         string    `gorm:"type:varchar(500)" json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName 指定表名
func (TempVisitor) TableName() string {
	return "temp_visitors"
}
