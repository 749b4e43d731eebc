package admin

import "github.com/vms-next/internal/provider"

// Handler 需要登录的接口处理器
// 说明：后台管理与前台值守（扫码、审核）共用，权限由 RBAC 中间件控制。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
