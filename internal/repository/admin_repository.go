package repository

import (
	"errors"

	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// AdminListFilter 后台账号列表过滤条件
type AdminListFilter struct {
	CompanyID uint
	Keyword   string
}

// AdminRepository 后台账号数据访问接口
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	List(filter AdminListFilter) ([]models.Admin, error)
	Count() (int64, error)
	CountSuper() (int64, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
	Delete(id uint) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建后台账号仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) first(query *gorm.DB) (*models.Admin, error) {
	var admin models.Admin
	err := query.First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByUsername 按账号名查询，不存在返回 nil
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	return r.first(r.db.Where("username = ?", username))
}

// GetByID 按 ID 查询，不存在返回 nil
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	if id == 0 {
		return nil, nil
	}
	return r.first(r.db.Where("id = ?", id))
}

// List 账号列表，不含密码哈希；CompanyID 非零时只返回该公司账号
func (r *GormAdminRepository) List(filter AdminListFilter) ([]models.Admin, error) {
	query := r.db.Model(&models.Admin{}).
		Select("id", "username", "display_name", "company_id", "is_super", "last_login_at", "created_at")
	if filter.CompanyID != 0 {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("username LIKE ? OR display_name LIKE ?", like, like)
	}
	admins := make([]models.Admin, 0)
	if err := query.Order("id ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Count 账号总数
func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// CountSuper 超级管理员数量
func (r *GormAdminRepository) CountSuper() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Where("is_super = ?", true).Count(&count).Error
	return count, err
}

// Create 新建账号
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// Update 整行保存
func (r *GormAdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// Delete 软删除
func (r *GormAdminRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Admin{}, id).Error
}
