package admin

import (
	"strings"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs 权限变更审计日志
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, pageSize := parsePage(c)
	createdFrom, err := handlershared.ParseDateQuery(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_invalid", err)
		return
	}
	createdTo, err := handlershared.ParseDateQuery(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_invalid", err)
		return
	}

	items, total, err := h.AuthzAuditService.ListForAdmin(repository.AuthzAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: handlershared.ParseUintQuery(c, "operator_admin_id"),
		TargetAdminID:   handlershared.ParseUintQuery(c, "target_admin_id"),
		CompanyID:       scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")),
		Action:          strings.TrimSpace(c.Query("action")),
		Role:            strings.TrimSpace(c.Query("role")),
		CreatedFrom:     createdFrom,
		CreatedTo:       createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	successWithPage(c, items, page, pageSize, total)
}
