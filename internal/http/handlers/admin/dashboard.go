package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 后台首页统计
func (h *Handler) GetDashboardStats(c *gin.Context) {
	forceRefresh := false
	if raw := strings.TrimSpace(c.Query("force_refresh")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		forceRefresh = parsed
	}

	data, err := h.DashboardService.GetStats(c.Request.Context(), service.DashboardQueryInput{
		Timezone:     strings.TrimSpace(c.Query("tz")),
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, data)
}
