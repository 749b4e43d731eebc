package shared

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// MappedError 业务错误到接口错误码与文案 key 的映射。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 命中规则时按规则返回，否则记录原始错误并返回兜底响应。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则，靠前的规则优先。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
