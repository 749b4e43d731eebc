package shared

import (
	"errors"

	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// VerifyCaptcha 按场景校验图片验证码，失败时已写出响应并返回 false。
func VerifyCaptcha(c *gin.Context, svc *service.CaptchaService, scene string, payload CaptchaPayloadRequest) bool {
	if svc == nil {
		return true
	}
	err := svc.Verify(scene, payload.ToServicePayload())
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrCaptchaRequired):
		RespondError(c, response.CodeBadRequest, "error.captcha_required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		RespondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
	default:
		RespondError(c, response.CodeInternal, "error.captcha_verify_failed", err)
	}
	return false
}
