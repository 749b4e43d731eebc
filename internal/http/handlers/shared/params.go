package shared

import (
	"strconv"
	"strings"
	"time"

	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 读取路径中的正整数 ID，失败时写出 400。
func ParseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}

// ParseUintQuery 读取可选的正整数查询参数，非法值视为未传。
func ParseUintQuery(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// ParseDateQuery 读取可选日期参数，支持 2006-01-02 与 RFC3339。
func ParseDateQuery(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AuditMetaFromContext 当前操作人与请求 ID，公开接口的操作人为 0。
func AuditMetaFromContext(c *gin.Context) service.AuditMeta {
	meta := service.AuditMeta{}
	if value, ok := c.Get("admin_id"); ok {
		if id, ok := value.(uint); ok {
			meta.OperatorAdminID = id
		}
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			meta.RequestID = strings.TrimSpace(id)
		}
	}
	return meta
}
