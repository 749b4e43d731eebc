package constants

// 访客二维码状态常量
const (
	QRStatusActive     = "active"
	QRStatusCheckedIn  = "checked_in"
	QRStatusCheckedOut = "checked_out"
	QRStatusExpired    = "expired"
)

// 扫码类型常量
const (
	ScanTypeEntry = "entry"
	ScanTypeExit  = "exit"
)

// 二维码载荷前缀
const QRPayloadPrefix = "visitor"

// 目录数据状态常量（公司/部门/岗位/员工）
const (
	DirectoryStatusActive   = "Active"
	DirectoryStatusInactive = "Inactive"
)

// 员工角色常量
const (
	EmployeeRoleAdmin    = "admin"
	EmployeeRoleEmployee = "employee"
)

// 联系方式类型
const (
	ContactTypeEmail = "email"
	ContactTypePhone = "phone"
)

// 验证码用途
const (
	VerifyPurposeAppointmentLookup = "appointment_lookup"
)

// 访客流转审计来源
const (
	VisitorAuditSourceScan    = "scan"
	VisitorAuditSourceApprove = "approve"
	VisitorAuditSourceLazy    = "lazy_expiry"
	VisitorAuditSourceSweep   = "sweep_expiry"
	VisitorAuditSourceAppoint = "appointment"
	VisitorAuditSourceBypass  = "submit_without_otp"
)

// 验证码提供方
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景
const (
	CaptchaSceneLogin   = "login"
	CaptchaSceneSendOtp = "send_otp"
)

// 邮件提供方
const (
	EmailProviderSMTP       = "smtp"
	EmailProviderSendGrid   = "sendgrid"
	EmailProviderMailerSend = "mailersend"
)

// 队列与任务
const (
	QueueDefault              = "default"
	QueueCritical             = "critical"
	TaskVisitorReviewEmail    = "visitor:review_email"
	TaskVisitorApprovedEmail  = "visitor:approved_email"
	TaskVisitorRejectedEmail  = "visitor:rejected_email"
	TaskOtpDeliver            = "otp:deliver"
	TaskAppointmentQRCodeMail = "appointment:qr_email"
)
