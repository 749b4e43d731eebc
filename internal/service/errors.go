package service

import "errors"

// 通用
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrWeakPassword         = errors.New("weak password")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAdminExists          = errors.New("admin already exists")
	ErrAdminUsernameInvalid = errors.New("admin username invalid")
	ErrAdminProtected       = errors.New("admin account is protected")
	ErrAdminDeleteSelf      = errors.New("cannot delete current admin")
	ErrAdminDeleteLast      = errors.New("cannot delete the last admin")
)

// 邮件与短信
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrSmsServiceDisabled        = errors.New("sms service disabled")
	ErrSmsServiceNotConfigured   = errors.New("sms service not configured")
)

// 图片验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 访客验证码
var (
	ErrContactInvalid             = errors.New("contact must be an email or a 10-digit phone number")
	ErrOtpNotFound                = errors.New("otp not found")
	ErrOtpInvalid                 = errors.New("otp invalid")
	ErrOtpExpired                 = errors.New("otp expired")
	ErrOtpAttemptsExceeded        = errors.New("otp attempts exceeded")
	ErrVerifyCodeInvalid          = errors.New("verify code invalid")
	ErrVerifyCodeExpired          = errors.New("verify code expired")
	ErrVerifyCodeTooFrequent      = errors.New("verify code requested too frequently")
	ErrVerifyCodeAttemptsExceeded = errors.New("verify code attempts exceeded")
)

// 访客登记与审核
var (
	ErrVisitorNotVerified     = errors.New("visitor contact not verified")
	ErrVisitorFieldsMissing   = errors.New("visitor required fields missing")
	ErrVisitorNotFound        = errors.New("visitor not found")
	ErrVisitorAlreadyVerified = errors.New("visitor already verified")
	ErrVisitorRejected        = errors.New("visitor already rejected")
	ErrVisitorCardUnavailable = errors.New("visitor card unavailable")
	ErrVisitorStatusInvalid   = errors.New("visitor status label invalid")
)

// 扫码
var (
	ErrQRCodeRequired    = errors.New("qr code required")
	ErrQRFormatInvalid   = errors.New("invalid qr code format")
	ErrScanTypeInvalid   = errors.New("invalid scan type")
	ErrScanConflict      = errors.New("visitor status changed concurrently")
	ErrVisitorExpired    = errors.New("visitor qr expired")
	ErrAlreadyCheckedOut = errors.New("visitor already checked out")
	ErrAlreadyCheckedIn  = errors.New("visitor already checked in")
	ErrNotCheckedIn      = errors.New("visitor not checked in")
	ErrQRStateInvalid    = errors.New("visitor qr not in a scannable state")
	ErrExitCooldown      = errors.New("exit scanned too soon after entry")
)

// 目录与预约
var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDesignationNotFound = errors.New("designation not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeExists      = errors.New("employee email or phone already exists")
	ErrPurposeNotFound     = errors.New("purpose not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentInvalid  = errors.New("appointment invalid")
)

// 上传
var (
	ErrUploadTooLarge     = errors.New("upload too large")
	ErrUploadTypeInvalid  = errors.New("upload type not allowed")
	ErrUploadImageInvalid = errors.New("upload image invalid")
)
