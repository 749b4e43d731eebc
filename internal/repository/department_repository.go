package repository

import (
	"errors"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// DepartmentRow 部门列表行（附公司名称）
type DepartmentRow struct {
	models.Department
	CompanyName string `json:"company_name"`
}

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	List(companyID uint) ([]DepartmentRow, error)
	ListActiveByCompany(companyID uint) ([]models.Department, error)
	GetByID(id uint) (*models.Department, error)
	Create(department *models.Department) error
	Update(department *models.Department) error
	Deactivate(id uint) (bool, error)
}

// GormDepartmentRepository GORM 实现
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository 创建部门仓库
func NewDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// List 部门列表，companyID 为 0 时返回全部启用部门
func (r *GormDepartmentRepository) List(companyID uint) ([]DepartmentRow, error) {
	query := r.db.Table("departments AS d").
		Select("d.*, c.company_name AS company_name").
		Joins("LEFT JOIN companies c ON c.company_id = d.company_id").
		Where("d.status = ?", constants.DirectoryStatusActive)
	if companyID != 0 {
		query = query.Where("d.company_id = ?", companyID)
	}
	rows := make([]DepartmentRow, 0)
	if err := query.Order("d.department_id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActiveByCompany 下拉：公司下启用部门
func (r *GormDepartmentRepository) ListActiveByCompany(companyID uint) ([]models.Department, error) {
	departments := make([]models.Department, 0)
	if err := r.db.Where("company_id = ? AND status = ?", companyID, constants.DirectoryStatusActive).
		Order("dept_name ASC").
		Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// GetByID 根据 ID 获取启用部门
func (r *GormDepartmentRepository) GetByID(id uint) (*models.Department, error) {
	var department models.Department
	if err := r.db.Where("department_id = ? AND status = ?", id, constants.DirectoryStatusActive).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

// Create 创建部门
func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// Update 更新部门
func (r *GormDepartmentRepository) Update(department *models.Department) error {
	return r.db.Save(department).Error
}

// Deactivate 停用部门（软删除）
func (r *GormDepartmentRepository) Deactivate(id uint) (bool, error) {
	result := r.db.Model(&models.Department{}).
		Where("department_id = ?", id).
		Update("status", constants.DirectoryStatusInactive)
	return result.RowsAffected > 0, result.Error
}
