package admin

import (
	"net/url"
	"strings"

	"github.com/vms-next/internal/authz"
	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var authzRoleErrorRules = []mappedHandlerError{
	{Target: authz.ErrRoleBuiltin, Code: response.CodeBadRequest, Key: "error.authz_role_builtin"},
	{Target: authz.ErrRoleReserved, Code: response.CodeBadRequest, Key: "error.authz_role_invalid"},
	{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.authz_role_invalid"},
	{Target: authz.ErrObjectNotProtected, Code: response.CodeBadRequest, Key: "error.authz_policy_invalid"},
	{Target: authz.ErrActionRequired, Code: response.CodeBadRequest, Key: "error.authz_policy_invalid"},
	{Target: authz.ErrUnavailable, Code: response.CodeInternal, Key: "error.authz_fetch_failed"},
}

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 当前账号的角色与策略快照，前端据此渲染菜单
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	isSuper := c.GetBool("admin_is_super")

	response.Success(c, gin.H{
		"admin_id":   adminID,
		"is_super":   isSuper,
		"company_id": scopedCompanyID(c, 0),
		"roles":      roles,
		"policies":   policies,
	})
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_role_invalid", err)
		return
	}
	h.recordAuthzAudit(c, service.AuthzActionRoleCreate, service.AuthzAuditRecordInput{Role: role, Detail: models.JSON{"role": role}})
	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色，内置角色不可删除
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondWithMappedError(c, err, authzRoleErrorRules, response.CodeBadRequest, "error.authz_role_invalid")
		return
	}
	h.recordAuthzAudit(c, service.AuthzActionRoleDelete, service.AuthzAuditRecordInput{Role: role, Detail: models.JSON{"role": role}})
	response.Success(c, nil)
}

// GetAuthzRolePolicies 角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_role_invalid", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, service.AuthzActionPolicyGrant, h.AuthzService.GrantRolePolicy)
}

// RevokeAuthzPolicy 撤销策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changeAuthzPolicy(c, service.AuthzActionPolicyRevoke, h.AuthzService.RevokeRolePolicy)
}

func (h *Handler) changeAuthzPolicy(c *gin.Context, action string, apply func(role, object, method string) error) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := apply(req.Role, req.Object, req.Action); err != nil {
		respondWithMappedError(c, err, authzRoleErrorRules, response.CodeBadRequest, "error.authz_policy_invalid")
		return
	}
	method := strings.ToUpper(strings.TrimSpace(req.Action))
	h.recordAuthzAudit(c, action, service.AuthzAuditRecordInput{
		Role:   req.Role,
		Object: req.Object,
		Method: method,
		Detail: models.JSON{"role": req.Role, "object": req.Object, "method": method},
	})
	response.Success(c, nil)
}

// GetAuthzAdminRoles 账号角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	if _, err := h.AuthService.GetAdmin(adminID); err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.authz_fetch_failed")
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 覆盖账号角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		respondWithMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_role_invalid", err)
		return
	}
	h.recordAuthzAudit(c, service.AuthzActionAdminRolesUpdate, service.AuthzAuditRecordInput{
		TargetAdminID:  &admin.ID,
		TargetUsername: admin.Username,
		Detail:         models.JSON{"target_admin_id": admin.ID, "roles": req.Roles},
	})
	response.Success(c, nil)
}

// recordAuthzAudit 补齐操作人与请求 ID 后写审计，失败只记日志
func (h *Handler) recordAuthzAudit(c *gin.Context, action string, input service.AuthzAuditRecordInput) {
	input.Action = action
	input.OperatorUsername = currentUsername(c)
	input.CompanyID = scopedCompanyID(c, 0)
	input.Meta = handlershared.AuditMetaFromContext(c)
	if err := h.AuthzAuditService.Record(input); err != nil {
		requestLog(c).Warnw("admin_authz_audit_record_failed", "error", err, "action", action)
		return
	}
	logger.Component("authz").Infow("admin_authz_changed",
		"action", action,
		"operator_admin_id", input.Meta.OperatorAdminID,
		"role", input.Role,
		"object", input.Object,
	)
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
