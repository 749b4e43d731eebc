package public

import (
	"errors"

	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码，登录与发送验证码场景开启时使用
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	switch {
	case err == nil:
		response.Success(c, challenge)
	case errors.Is(err, service.ErrCaptchaConfigInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
	default:
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
	}
}
