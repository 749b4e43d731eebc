package repository

import (
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// VisitorAuditLogRepository 访客流转审计日志数据访问接口
type VisitorAuditLogRepository interface {
	WithTx(tx *gorm.DB) VisitorAuditLogRepository
	Create(log *models.VisitorAuditLog) error
	List(filter VisitorAuditLogListFilter) ([]models.VisitorAuditLog, int64, error)
	ListByVisitor(visitorID uint) ([]models.VisitorAuditLog, error)
}

// GormVisitorAuditLogRepository GORM 实现
type GormVisitorAuditLogRepository struct {
	db *gorm.DB
}

// NewVisitorAuditLogRepository 创建访客审计日志仓库
func NewVisitorAuditLogRepository(db *gorm.DB) *GormVisitorAuditLogRepository {
	return &GormVisitorAuditLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVisitorAuditLogRepository) WithTx(tx *gorm.DB) VisitorAuditLogRepository {
	if tx == nil {
		return r
	}
	return &GormVisitorAuditLogRepository{db: tx}
}

// Create 写入审计日志
func (r *GormVisitorAuditLogRepository) Create(log *models.VisitorAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 管理端查询审计日志
func (r *GormVisitorAuditLogRepository) List(filter VisitorAuditLogListFilter) ([]models.VisitorAuditLog, int64, error) {
	query := r.db.Model(&models.VisitorAuditLog{})
	if filter.VisitorID != 0 {
		query = query.Where("visitor_id = ?", filter.VisitorID)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	return findPage[models.VisitorAuditLog](query, "id DESC", filter.Page, filter.PageSize)
}

// ListByVisitor 按写入顺序返回某访客的全部流转
func (r *GormVisitorAuditLogRepository) ListByVisitor(visitorID uint) ([]models.VisitorAuditLog, error) {
	logs := make([]models.VisitorAuditLog, 0)
	if err := r.db.Where("visitor_id = ?", visitorID).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
