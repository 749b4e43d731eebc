package repository

import (
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 账号与角色变更审计
type AuthzAuditLogRepository interface {
	Create(log *models.AuthzAuditLog) error
	ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error)
}

// GormAuthzAuditLogRepository GORM 实现
type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

// NewAuthzAuditLogRepository 创建审计仓库
func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

// Create 追加一条审计，nil 忽略
func (r *GormAuthzAuditLogRepository) Create(log *models.AuthzAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListAdmin 按条件倒序分页，零值条件不参与过滤
func (r *GormAuthzAuditLogRepository) ListAdmin(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	query := r.db.Model(&models.AuthzAuditLog{})
	for column, value := range map[string]uint{
		"operator_admin_id": filter.OperatorAdminID,
		"target_admin_id":   filter.TargetAdminID,
		"company_id":        filter.CompanyID,
	} {
		if value != 0 {
			query = query.Where(column+" = ?", value)
		}
	}
	for column, value := range map[string]string{
		"action": filter.Action,
		"role":   filter.Role,
	} {
		if value != "" {
			query = query.Where(column+" = ?", value)
		}
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return findPage[models.AuthzAuditLog](query, "id DESC", filter.Page, filter.PageSize)
}
