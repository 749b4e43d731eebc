package public

import "github.com/vms-next/internal/provider"

// Handler 公开接口处理器
// 说明：访客自助登记、下拉数据与预约查询，不需要登录。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
