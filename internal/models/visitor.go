package models

import (
	"time"
)

// VerificationState 访客审核状态
type VerificationState int

const (
	VerificationUnverified VerificationState = 0 // 待审核
	VerificationVerified   VerificationState = 1 // 已通过
	VerificationRejected   VerificationState = 2 // 已拒绝（终态）
)

// String 返回审核状态名称
func (s VerificationState) String() string {
	switch s {
	case VerificationUnverified:
		return "unverified"
	case VerificationVerified:
		return "verified"
	case VerificationRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Valid 是否为合法的审核状态
func (s VerificationState) Valid() bool {
	return s == VerificationUnverified || s == VerificationVerified || s == VerificationRejected
}

// Visitor 访客表，一行对应一次到访申请
type Visitor struct {
	ID            uint              `gorm:"column:visitor_id;primaryKey" json:"visitor_id"`                               // 访客ID
	FirstName     string            `gorm:"type:varchar(100);not null" json:"first_name"`                                 // 名
	LastName      string            `gorm:"type:varchar(100);not null" json:"last_name"`                                  // 姓
	Email         string            `gorm:"type:varchar(255);index" json:"email"`                                         // 邮箱
	Phone         string            `gorm:"type:varchar(20);index" json:"phone"`                                          // 手机号
	Gender        string            `gorm:"type:varchar(20)" json:"gender"`                                               // 性别
	AadharNo      string            `gorm:"column:aadhar_no;type:varchar(32)" json:"aadhar_no"`                           // 证件号
	Address       string            `gorm:"type:text" json:"address"`                                                     // 地址
	Image         string            `gorm:"type:varchar(500)" json:"image"`                                               // 照片相对路径
	CompanyID     uint              `gorm:"index" json:"company_id"`                                                      // 拜访公司
	DepartmentID  uint              `gorm:"index" json:"department_id"`                                                   // 拜访部门
	DesignationID uint              `gorm:"index" json:"designation_id"`                                                  // 拜访岗位
	WhomToMeet    uint              `gorm:"column:whom_to_meet;index" json:"whom_to_meet"`                                // 被访员工ID
	PurposeID     uint              `gorm:"column:purpose;index" json:"purpose"`                                          // 来访目的ID
	IsVerified    VerificationState `gorm:"column:is_verified;not null;default:0;index" json:"is_verified"`               // 审核状态
	Otp           string            `gorm:"type:varchar(10)" json:"-"`                                                    // 提交时使用的验证码
	OtpExpiry     *time.Time        `gorm:"column:otp_expiry" json:"-"`                                                   // 验证码过期时间
	OtpVerified   bool              `gorm:"not null;default:false" json:"otp_verified"`                                   // 是否经过联系方式验证
	QRStatus      string            `gorm:"column:qr_status;type:varchar(20);not null;default:'';index" json:"qr_status"` // 二维码状态，空为待签发
	QRCode        *string           `gorm:"column:qr_code;type:text" json:"qr_code"`                                      // 二维码 data URI
	BadgeActive   bool              `gorm:"not null;default:false" json:"badge_active"`                                   // 前台徽章是否有效，签出后清除
	SignInTime    *time.Time        `gorm:"index" json:"sign_in_time"`                                                    // 签入时间
	SignOutTime   *time.Time        `json:"sign_out_time"`                                                                // 签出时间
	Status        string            `gorm:"type:varchar(50);not null;default:''" json:"status"`                           // 前台自定义状态标签
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`                                                      // 创建时间
	UpdatedAt     time.Time         `json:"updated_at"`                                                                   // 更新时间
}

// TableName 指定表名
func (Visitor) TableName() string {
	return "visitors"
}

// FullName 访客全名
func (v Visitor) FullName() string {
	return joinName(v.FirstName, v.LastName)
}

// VisitorDetail 访客详情（关联员工与来访目的）
type VisitorDetail struct {
	Visitor
	EmployeeName string `json:"employee_name"`
	EmployeeID   uint   `json:"emp_id"`
	PurposeText  string `json:"purpose_text"`
	CompanyName  string `json:"company_name"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
