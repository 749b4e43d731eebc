package repository

import (
	"errors"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// DesignationRepository 岗位数据访问接口
type DesignationRepository interface {
	List(companyID, departmentID uint) ([]models.Designation, error)
	GetByID(id uint) (*models.Designation, error)
	Create(designation *models.Designation) error
	Update(designation *models.Designation) error
	Deactivate(id uint) (bool, error)
}

// GormDesignationRepository GORM 实现
type GormDesignationRepository struct {
	db *gorm.DB
}

// NewDesignationRepository 创建岗位仓库
func NewDesignationRepository(db *gorm.DB) *GormDesignationRepository {
	return &GormDesignationRepository{db: db}
}

// List 启用岗位列表，可按公司与部门过滤
func (r *GormDesignationRepository) List(companyID, departmentID uint) ([]models.Designation, error) {
	query := r.db.Where("status = ?", constants.DirectoryStatusActive)
	if companyID != 0 {
		query = query.Where("company_id = ?", companyID)
	}
	if departmentID != 0 {
		query = query.Where("department_id = ?", departmentID)
	}
	designations := make([]models.Designation, 0)
	if err := query.Order("designation_name ASC").Find(&designations).Error; err != nil {
		return nil, err
	}
	return designations, nil
}

// GetByID 根据 ID 获取岗位
func (r *GormDesignationRepository) GetByID(id uint) (*models.Designation, error) {
	var designation models.Designation
	if err := r.db.Where("designation_id = ?", id).First(&designation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &designation, nil
}

// Create 创建岗位
func (r *GormDesignationRepository) Create(designation *models.Designation) error {
	return r.db.Create(designation).Error
}

// Update 更新岗位
func (r *GormDesignationRepository) Update(designation *models.Designation) error {
	return r.db.Save(designation).Error
}

// Deactivate 停用岗位
func (r *GormDesignationRepository) Deactivate(id uint) (bool, error) {
	result := r.db.Model(&models.Designation{}).
		Where("designation_id = ?", id).
		Update("status", constants.DirectoryStatusInactive)
	return result.RowsAffected > 0, result.Error
}
