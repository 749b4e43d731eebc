package public

import (
	"net/http"
	"strings"

	"github.com/vms-next/internal/constants"
	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/i18n"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SendOtpRequest 发送验证码请求，phone 兼容旧前端，email 与 contact 二选一即可
type SendOtpRequest struct {
	Phone          string                              `json:"phone"`
	Email          string                              `json:"email"`
	Contact        string                              `json:"contact"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

func (r SendOtpRequest) contact() string {
	return firstNonBlank(r.Contact, r.Phone, r.Email)
}

// VerifyOtpRequest 校验验证码请求
type VerifyOtpRequest struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Otp     string `json:"otp"`
}

// VisitorFormRequest 访客登记表单（multipart）
type VisitorFormRequest struct {
	Contact       string `form:"contact"`
	FirstName     string `form:"first_name"`
	LastName      string `form:"last_name"`
	Email         string `form:"email"`
	Phone         string `form:"phone"`
	Gender        string `form:"gender"`
	AadharNo      string `form:"aadhar_no"`
	Address       string `form:"address"`
	CompanyID     uint   `form:"company_id"`
	DepartmentID  uint   `form:"department_id"`
	DesignationID uint   `form:"designation_id"`
	WhomToMeet    uint   `form:"whom_to_meet"`
	EmployeeID    uint   `form:"employee_id"`
	Purpose       uint   `form:"purpose"`
	PurposeID     uint   `form:"purpose_id"`
}

func (r VisitorFormRequest) toServiceForm() service.VisitorForm {
	return service.VisitorForm{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		Gender:        r.Gender,
		AadharNo:      r.AadharNo,
		Address:       r.Address,
		CompanyID:     r.CompanyID,
		DepartmentID:  r.DepartmentID,
		DesignationID: r.DesignationID,
		WhomToMeet:    r.WhomToMeet,
		EmployeeID:    r.EmployeeID,
		Purpose:       r.Purpose,
		PurposeID:     r.PurposeID,
	}
}

// SendVisitorOtp 向手机号或邮箱发送登记验证码，响应中不返回验证码
func (h *Handler) SendVisitorOtp(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	contact := req.contact()
	if contact == "" {
		respondError(c, response.CodeBadRequest, "error.contact_required", nil)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneSendOtp, req.CaptchaPayload) {
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.OtpService.RequestOtp(contact, locale); err != nil {
		respondOtpError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "message.otp_sent"), nil)
}

// VerifyVisitorOtp 校验登记验证码
func (h *Handler) VerifyVisitorOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	contact := firstNonBlank(req.Contact, req.Phone, req.Email)
	if contact == "" || strings.TrimSpace(req.Otp) == "" {
		respondError(c, response.CodeBadRequest, "error.otp_required", nil)
		return
	}

	tempID, err := h.OtpService.VerifyOtp(contact, req.Otp)
	if err != nil {
		respondOtpError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.otp_verified"), gin.H{
		"temp_visitor_id": tempID,
	})
}

// SubmitVisitorDetails 验证码通过后提交登记，等待管理员审核
func (h *Handler) SubmitVisitorDetails(c *gin.Context) {
	var req VisitorFormRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	contact := firstNonBlank(req.Contact, req.Phone, req.Email)
	if contact == "" {
		respondError(c, response.CodeBadRequest, "error.contact_required", nil)
		return
	}
	imageRef, ok := h.saveVisitorImage(c)
	if !ok {
		return
	}

	visitorID, err := h.VisitorService.SubmitDetails(contact, req.toServiceForm(), imageRef)
	if err != nil {
		respondSubmitError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.visitor_submitted"), gin.H{
		"visitorId":  visitorID,
		"isVerified": false,
	})
}

// SubmitVisitorWithoutOtp 前台代登记，直接签发二维码
func (h *Handler) SubmitVisitorWithoutOtp(c *gin.Context) {
	var req VisitorFormRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	imageRef, ok := h.saveVisitorImage(c)
	if !ok {
		return
	}

	result, err := h.VisitorService.SubmitWithoutOtp(req.toServiceForm(), imageRef, handlershared.AuditMetaFromContext(c))
	if err != nil {
		respondSubmitError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.visitor_registered"), gin.H{
		"visitor_id": result.VisitorID,
		"qr_code":    result.QRCode,
	})
}

// saveVisitorImage 照片可选，未上传时返回空路径
func (h *Handler) saveVisitorImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", true
		}
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return "", false
	}
	imageRef, err := h.UploadService.SaveFile(file, service.UploadSceneVisitor)
	if err != nil {
		handlershared.RespondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return "", false
	}
	return imageRef, true
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
