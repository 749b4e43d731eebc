package shared

import (
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/i18n"
	"github.com/vms-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

func respond(c *gin.Context, code int, msg string, data interface{}, err error) {
	appErr := response.WrapErrorWithData(code, msg, data, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.ErrorWithData(c, appErr.Code, appErr.Message, appErr.Data)
}

// RespondError 按请求语言渲染 key，有原始错误时记日志
func RespondError(c *gin.Context, code int, key string, err error) {
	respond(c, code, i18n.T(i18n.ResolveLocale(c), key), nil, err)
}

// RespondErrorWithMsg 直接使用已渲染好的消息
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	respond(c, code, msg, nil, err)
}

// RespondErrorWithData 同 RespondError，data 中携带业务上下文（如扫码拒绝时的访客状态）
func RespondErrorWithData(c *gin.Context, code int, key string, data interface{}, err error) {
	respond(c, code, i18n.T(i18n.ResolveLocale(c), key), data, err)
}
