package admin

import (
	"strings"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid")
}

// scopedCompanyID 绑定公司的账号只能看到本公司数据，忽略请求里的 company_id
func scopedCompanyID(c *gin.Context, requested uint) uint {
	if companyID, ok := handlershared.ContextUint(c, "admin_company_id"); ok {
		return companyID
	}
	return requested
}

func parsePage(c *gin.Context) (int, int) {
	return handlershared.ParsePageQuery(c.Query("page"), c.Query("page_size"))
}

func successWithPage(c *gin.Context, items interface{}, page, pageSize int, total int64) {
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

func currentAdminID(c *gin.Context) uint {
	return handlershared.AuditMetaFromContext(c).OperatorAdminID
}

func currentUsername(c *gin.Context) string {
	if value, ok := c.Get("username"); ok {
		if username, ok := value.(string); ok {
			return strings.TrimSpace(username)
		}
	}
	return ""
}
