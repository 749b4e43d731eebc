package admin

import (
	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var adminAccountErrorRules = []mappedHandlerError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
	{Target: service.ErrAdminExists, Code: response.CodeBadRequest, Key: "error.admin_username_exists"},
	{Target: service.ErrAdminUsernameInvalid, Code: response.CodeBadRequest, Key: "error.admin_username_invalid"},
	{Target: service.ErrAdminProtected, Code: response.CodeBadRequest, Key: "error.admin_delete_protected"},
	{Target: service.ErrAdminDeleteSelf, Code: response.CodeBadRequest, Key: "error.admin_delete_self_forbidden"},
	{Target: service.ErrAdminDeleteLast, Code: response.CodeBadRequest, Key: "error.admin_delete_last_forbidden"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

type authzCreateAdminPayload struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"required"`
	CompanyID   *uint  `json:"company_id"`
	IsSuper     bool   `json:"is_super"`
}

type authzUpdateAdminPayload struct {
	Username     *string `json:"username"`
	DisplayName  *string `json:"display_name"`
	Password     *string `json:"password"`
	CompanyID    *uint   `json:"company_id"`
	ClearCompany bool    `json:"clear_company"`
	IsSuper      *bool   `json:"is_super"`
}

func parseAdminIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id", "error.admin_id_invalid")
}

// ListAuthzAdmins 后台账号列表（含角色）
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins(scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")), c.Query("keyword"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	items := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		roles, err := h.AuthzService.GetAdminRoles(admin.ID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
			return
		}
		items = append(items, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"display_name":  admin.DisplayName,
			"company_id":    admin.CompanyID,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
			"roles":         roles,
		})
	}
	response.Success(c, items)
}

// CreateAuthzAdmin 创建后台账号（前台、保安、公司管理员）
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req authzCreateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, err := h.AuthService.CreateAdmin(service.AdminCreateInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		CompanyID:   req.CompanyID,
		IsSuper:     req.IsSuper,
	})
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.admin_create_failed")
		return
	}
	h.recordAuthzAudit(c, service.AuthzActionAdminCreate, service.AuthzAuditRecordInput{
		TargetAdminID:  &admin.ID,
		TargetUsername: admin.Username,
		Detail:         models.JSON{"target_admin_id": admin.ID, "company_id": admin.CompanyID, "is_super": admin.IsSuper},
	})
	response.Success(c, admin)
}

// UpdateAuthzAdmin 更新后台账号
func (h *Handler) UpdateAuthzAdmin(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	var req authzUpdateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, fields, err := h.AuthService.UpdateAdmin(adminID, service.AdminUpdateInput{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Password:     req.Password,
		CompanyID:    req.CompanyID,
		ClearCompany: req.ClearCompany,
		IsSuper:      req.IsSuper,
	})
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.admin_update_failed")
		return
	}
	if currentAdminID(c) == admin.ID {
		c.Set("admin_is_super", admin.IsSuper)
	}
	h.recordAuthzAudit(c, service.AuthzActionAdminUpdate, service.AuthzAuditRecordInput{
		TargetAdminID:  &admin.ID,
		TargetUsername: admin.Username,
		Detail:         models.JSON{"target_admin_id": admin.ID, "updated_fields": fields},
	})
	response.Success(c, admin)
}

// DeleteAuthzAdmin 删除后台账号并清空其角色
func (h *Handler) DeleteAuthzAdmin(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.DeleteAdmin(currentAdminID(c), adminID)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.admin_delete_failed")
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, []string{}); err != nil {
		requestLog(c).Warnw("admin_authz_clear_roles_failed", "admin_id", adminID, "error", err)
	}
	h.recordAuthzAudit(c, service.AuthzActionAdminDelete, service.AuthzAuditRecordInput{
		TargetAdminID:  &admin.ID,
		TargetUsername: admin.Username,
		Detail:         models.JSON{"target_admin_id": admin.ID},
	})
	response.Success(c, nil)
}
