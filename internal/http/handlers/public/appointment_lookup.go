package public

import (
	"strings"

	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/i18n"

	"github.com/gin-gonic/gin"
)

type appointmentLookupSendRequest struct {
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type appointmentLookupVerifyRequest struct {
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Code    string `json:"code"`
}

// SendAppointmentLookupCode 预约访客凭邮箱或手机号获取查询验证码
func (h *Handler) SendAppointmentLookupCode(c *gin.Context) {
	var req appointmentLookupSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	contact := firstNonBlank(req.Contact, req.Email, req.Phone)
	if contact == "" {
		respondError(c, response.CodeBadRequest, "error.contact_required", nil)
		return
	}

	locale := i18n.ResolveLocale(c)
	if err := h.AppointmentService.SendLookupCode(contact, locale); err != nil {
		respondLookupError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "message.lookup_code_sent"), nil)
}

// VerifyAppointmentLookupCode 校验查询验证码并返回预约与二维码
func (h *Handler) VerifyAppointmentLookupCode(c *gin.Context) {
	var req appointmentLookupVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	contact := firstNonBlank(req.Contact, req.Email, req.Phone)
	if contact == "" || strings.TrimSpace(req.Code) == "" {
		respondError(c, response.CodeBadRequest, "error.verify_code_required", nil)
		return
	}

	result, err := h.AppointmentService.VerifyLookupCode(contact, req.Code)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	response.Success(c, result)
}
