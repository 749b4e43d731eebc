package admin

import (
	"time"

	"github.com/vms-next/internal/constants"
	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

var passwordChangeErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
}

// AdminLogin 后台登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.admin_login_invalid"},
		}, response.CodeInternal, "error.login_failed")
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":           admin.ID,
			"username":     admin.Username,
			"display_name": admin.DisplayName,
			"company_id":   admin.CompanyID,
			"is_super":     admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminMe 当前登录账号
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		respondWithMappedError(c, err, passwordChangeErrorRules, response.CodeInternal, "error.admin_fetch_failed")
		return
	}
	response.Success(c, admin)
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改当前账号密码，旧 Token 随之失效
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, passwordChangeErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, nil)
}
