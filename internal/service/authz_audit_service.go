package service

import (
	"strings"
	"time"

	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"
)

// 账号与角色变更动作
const (
	AuthzActionRoleCreate       = "role_create"
	AuthzActionRoleDelete       = "role_delete"
	AuthzActionPolicyGrant      = "policy_grant"
	AuthzActionPolicyRevoke     = "policy_revoke"
	AuthzActionAdminCreate      = "admin_create"
	AuthzActionAdminUpdate      = "admin_update"
	AuthzActionAdminDelete      = "admin_delete"
	AuthzActionAdminRolesUpdate = "admin_roles_update"
)

var knownAuthzActions = map[string]struct{}{
	AuthzActionRoleCreate:       {},
	AuthzActionRoleDelete:       {},
	AuthzActionPolicyGrant:      {},
	AuthzActionPolicyRevoke:     {},
	AuthzActionAdminCreate:      {},
	AuthzActionAdminUpdate:      {},
	AuthzActionAdminDelete:      {},
	AuthzActionAdminRolesUpdate: {},
}

// AuthzAuditRecordInput 审计记录输入，操作人与请求 ID 取自 Meta
type AuthzAuditRecordInput struct {
	Meta             AuditMeta
	OperatorUsername string
	CompanyID        uint
	TargetAdminID    *uint
	TargetUsername   string
	Action           string
	Role             string
	Object           string
	Method           string
	Detail           models.JSON
}

// AuthzAuditService 后台账号与角色变更审计
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
	now  func() time.Time
}

// NewAuthzAuditService 创建审计服务
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo, now: time.Now}
}

// Record 写入一条审计，匿名操作或未知动作直接忽略
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if input.Meta.OperatorAdminID == 0 {
		return nil
	}
	action := strings.ToLower(strings.TrimSpace(input.Action))
	if _, ok := knownAuthzActions[action]; !ok {
		return ErrInvalidInput
	}

	item := &models.AuthzAuditLog{
		OperatorAdminID:  input.Meta.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		CompanyID:        input.CompanyID,
		TargetAdminID:    input.TargetAdminID,
		TargetUsername:   strings.TrimSpace(input.TargetUsername),
		Action:           action,
		Role:             strings.TrimSpace(input.Role),
		Object:           strings.TrimSpace(input.Object),
		Method:           strings.ToUpper(strings.TrimSpace(input.Method)),
		RequestID:        strings.TrimSpace(input.Meta.RequestID),
		DetailJSON:       input.Detail,
		CreatedAt:        s.now(),
	}
	return s.repo.Create(item)
}

// ListForAdmin 分页查询，CompanyID 非零时只返回该公司操作人的记录
func (s *AuthzAuditService) ListForAdmin(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.ListAdmin(filter)
}
