package repository

import (
	"errors"
	"strings"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"

	"gorm.io/gorm"
)

// EmployeeRow 员工列表行
type EmployeeRow struct {
	models.Employee
	CompanyName     string `json:"company_name"`
	DeptName        string `json:"dept_name"`
	DesignationName string `json:"designation_name"`
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	List(filter EmployeeListFilter) ([]EmployeeRow, int64, error)
	ListActiveForDropdown(filter DropdownFilter) ([]models.Employee, error)
	GetByID(id uint) (*models.Employee, error)
	FindByEmailOrPhone(email, phone string, excludeID uint) (*models.Employee, error)
	ListAdminEmails(companyID uint) ([]string, error)
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
}

// GormEmployeeRepository GORM 实现
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 创建员工仓库
func NewEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// List 员工列表
func (r *GormEmployeeRepository) List(filter EmployeeListFilter) ([]EmployeeRow, int64, error) {
	base := r.db.Table("employees AS e")
	if filter.CompanyID != 0 {
		base = base.Where("e.company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		base = base.Where("e.status = ?", filter.Status)
	}
	base = applyKeyword(base, filter.Keyword, []string{"e.first_name", "e.last_name", "e.email", "e.phone"})

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]EmployeeRow, 0)
	query := base.
		Select("e.*, c.company_name AS company_name, d.dept_name AS dept_name, g.designation_name AS designation_name").
		Joins("LEFT JOIN companies c ON c.company_id = e.company_id").
		Joins("LEFT JOIN departments d ON d.department_id = e.department_id").
		Joins("LEFT JOIN designations g ON g.designation_id = e.designation_id").
		Order("e.emp_id DESC")
	if err := applyPagination(query, filter.Page, filter.PageSize).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListActiveForDropdown 下拉：按公司/部门/岗位过滤启用员工
func (r *GormEmployeeRepository) ListActiveForDropdown(filter DropdownFilter) ([]models.Employee, error) {
	query := r.db.Where("status = ?", constants.DirectoryStatusActive)
	if filter.CompanyID != 0 {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.DepartmentID != 0 {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.DesignationID != 0 {
		query = query.Where("designation_id = ?", filter.DesignationID)
	}
	employees := make([]models.Employee, 0)
	if err := query.Order("first_name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID 根据 ID 获取员工
func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("emp_id = ?", id).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// FindByEmailOrPhone 查找邮箱或手机号冲突的员工
func (r *GormEmployeeRepository) FindByEmailOrPhone(email, phone string, excludeID uint) (*models.Employee, error) {
	query := r.db.Where("email = ? OR phone = ?", email, phone)
	if excludeID != 0 {
		query = r.db.Where("(email = ? OR phone = ?) AND emp_id <> ?", email, phone, excludeID)
	}
	var employee models.Employee
	if err := query.First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// ListAdminEmails 获取公司管理员邮箱
func (r *GormEmployeeRepository) ListAdminEmails(companyID uint) ([]string, error) {
	emails := make([]string, 0)
	err := r.db.Model(&models.Employee{}).
		Where("company_id = ? AND role = ? AND status = ?", companyID, constants.EmployeeRoleAdmin, constants.DirectoryStatusActive).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(emails))
	for _, email := range emails {
		if trimmed := strings.TrimSpace(email); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result, nil
}

// Create 创建员工
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// Update 更新员工
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}
