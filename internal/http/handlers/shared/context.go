package shared

import (
	"github.com/vms-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type contextUintState int

const (
	contextUintOK contextUintState = iota
	contextUintMissing
	contextUintNegative
	contextUintBadType
)

func readContextUint(c *gin.Context, key string) (uint, contextUintState) {
	value, exists := c.Get(key)
	if !exists || value == nil {
		return 0, contextUintMissing
	}
	switch v := value.(type) {
	case uint:
		return v, contextUintOK
	case *uint:
		if v == nil {
			return 0, contextUintMissing
		}
		return *v, contextUintOK
	case int:
		if v < 0 {
			return 0, contextUintNegative
		}
		return uint(v), contextUintOK
	case float64:
		// JWT claims 反序列化后的数字
		if v < 0 {
			return 0, contextUintNegative
		}
		return uint(v), contextUintOK
	default:
		return 0, contextUintBadType
	}
}

// ContextUint 读取中间件写入的 ID，缺失或非法时返回 false，不写响应
func ContextUint(c *gin.Context, key string) (uint, bool) {
	id, state := readContextUint(c, key)
	return id, state == contextUintOK && id != 0
}

// GetContextUintWithKeys 读取必需的 ID，失败时写出对应错误响应
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	id, state := readContextUint(c, key)
	switch state {
	case contextUintMissing:
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	case contextUintNegative:
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
	case contextUintBadType:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
	default:
		return id, true
	}
	return 0, false
}
