package service

import (
	"strings"

	"github.com/vms-next/internal/constants"
	"github.com/vms-next/internal/models"
	"github.com/vms-next/internal/repository"
)

// DirectoryService 公司、部门、岗位、员工与来访目的维护
type DirectoryService struct {
	companyRepo     repository.CompanyRepository
	departmentRepo  repository.DepartmentRepository
	designationRepo repository.DesignationRepository
	employeeRepo    repository.EmployeeRepository
	purposeRepo     repository.PurposeRepository
}

// NewDirectoryService 创建目录服务
func NewDirectoryService(
	companyRepo repository.CompanyRepository,
	departmentRepo repository.DepartmentRepository,
	designationRepo repository.DesignationRepository,
	employeeRepo repository.EmployeeRepository,
	purposeRepo repository.PurposeRepository,
) *DirectoryService {
	return &DirectoryService{
		companyRepo:     companyRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
		employeeRepo:    employeeRepo,
		purposeRepo:     purposeRepo,
	}
}

func normalizeDirectoryStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "active":
		return constants.DirectoryStatusActive, nil
	case "inactive":
		return constants.DirectoryStatusInactive, nil
	default:
		return "", ErrInvalidInput
	}
}

// CompanyInput 公司表单
type CompanyInput struct {
	Name   string
	Status string
}

// ListCompanies 启用中的公司
func (s *DirectoryService) ListCompanies() ([]models.Company, error) {
	return s.companyRepo.ListActive()
}

// CreateCompany 创建公司
func (s *DirectoryService) CreateCompany(input CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	status, err := normalizeDirectoryStatus(input.Status)
	if err != nil {
		return nil, err
	}
	company := &models.Company{CompanyName: name, Status: status}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateCompany 更新公司
func (s *DirectoryService) UpdateCompany(id uint, input CompanyInput) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		company.CompanyName = name
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := normalizeDirectoryStatus(input.Status)
		if err != nil {
			return nil, err
		}
		company.Status = status
	}
	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *DirectoryService) requireActiveCompany(id uint) error {
	if id == 0 {
		return ErrCompanyNotFound
	}
	company, err := s.companyRepo.GetActiveByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return ErrCompanyNotFound
	}
	return nil
}

// DepartmentInput 部门表单
type DepartmentInput struct {
	CompanyID uint
	Name      string
	Status    string
}

// ListDepartments 部门列表（含公司名）
func (s *DirectoryService) ListDepartments(companyID uint) ([]repository.DepartmentRow, error) {
	return s.departmentRepo.List(companyID)
}

// CreateDepartment 创建部门
func (s *DirectoryService) CreateDepartment(input DepartmentInput) (*models.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.requireActiveCompany(input.CompanyID); err != nil {
		return nil, err
	}
	status, err := normalizeDirectoryStatus(input.Status)
	if err != nil {
		return nil, err
	}
	department := &models.Department{CompanyID: input.CompanyID, DeptName: name, Status: status}
	if err := s.departmentRepo.Create(department); err != nil {
		return nil, err
	}
	return department, nil
}

// UpdateDepartment 更新部门
func (s *DirectoryService) UpdateDepartment(id uint, input DepartmentInput) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	if input.CompanyID != 0 && input.CompanyID != department.CompanyID {
		if err := s.requireActiveCompany(input.CompanyID); err != nil {
			return nil, err
		}
		department.CompanyID = input.CompanyID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		department.DeptName = name
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := normalizeDirectoryStatus(input.Status)
		if err != nil {
			return nil, err
		}
		department.Status = status
	}
	if err := s.departmentRepo.Update(department); err != nil {
		return nil, err
	}
	return department, nil
}

// DeactivateDepartment 停用部门（软删除）
func (s *DirectoryService) DeactivateDepartment(id uint) error {
	ok, err := s.departmentRepo.Deactivate(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDepartmentNotFound
	}
	return nil
}

// DesignationInput 岗位表单
type DesignationInput struct {
	CompanyID    uint
	DepartmentID uint
	Name         string
	Status       string
}

// ListDesignations 岗位列表
func (s *DirectoryService) ListDesignations(companyID, departmentID uint) ([]models.Designation, error) {
	return s.designationRepo.List(companyID, departmentID)
}

// CreateDesignation 创建岗位
func (s *DirectoryService) CreateDesignation(input DesignationInput) (*models.Designation, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.DepartmentID == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.requireActiveCompany(input.CompanyID); err != nil {
		return nil, err
	}
	department, err := s.departmentRepo.GetByID(input.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil || department.CompanyID != input.CompanyID {
		return nil, ErrDepartmentNotFound
	}
	status, err := normalizeDirectoryStatus(input.Status)
	if err != nil {
		return nil, err
	}
	designation := &models.Designation{
		CompanyID:       input.CompanyID,
		DepartmentID:    input.DepartmentID,
		DesignationName: name,
		Status:          status,
	}
	if err := s.designationRepo.Create(designation); err != nil {
		return nil, err
	}
	return designation, nil
}

// UpdateDesignation 更新岗位
func (s *DirectoryService) UpdateDesignation(id uint, input DesignationInput) (*models.Designation, error) {
	designation, err := s.designationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if designation == nil {
		return nil, ErrDesignationNotFound
	}
	if input.CompanyID != 0 {
		designation.CompanyID = input.CompanyID
	}
	if input.DepartmentID != 0 {
		designation.DepartmentID = input.DepartmentID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		designation.DesignationName = name
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := normalizeDirectoryStatus(input.Status)
		if err != nil {
			return nil, err
		}
		designation.Status = status
	}
	if err := s.designationRepo.Update(designation); err != nil {
		return nil, err
	}
	return designation, nil
}

// DeactivateDesignation 停用岗位
func (s *DirectoryService) DeactivateDesignation(id uint) error {
	ok, err := s.designationRepo.Deactivate(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDesignationNotFound
	}
	return nil
}

// EmployeeInput 员工表单
type EmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	CompanyID     uint
	DepartmentID  uint
	DesignationID uint
	Role          string
	Status        string
}

func normalizeEmployeeRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", constants.EmployeeRoleEmployee:
		return constants.EmployeeRoleEmployee, nil
	case constants.EmployeeRoleAdmin:
		return constants.EmployeeRoleAdmin, nil
	default:
		return "", ErrInvalidInput
	}
}

// ListEmployees 员工分页列表
func (s *DirectoryService) ListEmployees(filter repository.EmployeeListFilter) ([]repository.EmployeeRow, int64, error) {
	return s.employeeRepo.List(filter)
}

// GetEmployee 获取员工
func (s *DirectoryService) GetEmployee(id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

// CreateEmployee 创建员工，邮箱与手机号不可重复
func (s *DirectoryService) CreateEmployee(input EmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{}
	if err := s.applyEmployeeInput(employee, input, 0); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// UpdateEmployee 更新员工
func (s *DirectoryService) UpdateEmployee(id uint, input EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	if err := s.applyEmployeeInput(employee, input, id); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *DirectoryService) applyEmployeeInput(employee *models.Employee, input EmployeeInput, excludeID uint) error {
	firstName := strings.TrimSpace(input.FirstName)
	phone := strings.TrimSpace(input.Phone)
	if firstName == "" || phone == "" {
		return ErrInvalidInput
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return err
	}
	role, err := normalizeEmployeeRole(input.Role)
	if err != nil {
		return err
	}
	status, err := normalizeDirectoryStatus(input.Status)
	if err != nil {
		return err
	}
	if err := s.requireActiveCompany(input.CompanyID); err != nil {
		return err
	}
	existing, err := s.employeeRepo.FindByEmailOrPhone(email, phone, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmployeeExists
	}
	employee.FirstName = firstName
	employee.LastName = strings.TrimSpace(input.LastName)
	employee.Email = email
	employee.Phone = phone
	employee.CompanyID = input.CompanyID
	employee.DepartmentID = input.DepartmentID
	employee.DesignationID = input.DesignationID
	employee.Role = role
	employee.Status = status
	return nil
}

// ListPurposes 来访目的列表
func (s *DirectoryService) ListPurposes() ([]models.Purpose, error) {
	return s.purposeRepo.List()
}

// CreatePurpose 新增来访目的
func (s *DirectoryService) CreatePurpose(text string) (*models.Purpose, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}
	purpose := &models.Purpose{Purpose: text}
	if err := s.purposeRepo.Create(purpose); err != nil {
		return nil, err
	}
	return purpose, nil
}

// UpdatePurpose 修改来访目的
func (s *DirectoryService) UpdatePurpose(id uint, text string) (*models.Purpose, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}
	purpose, err := s.purposeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purpose == nil {
		return nil, ErrPurposeNotFound
	}
	purpose.Purpose = text
	if err := s.purposeRepo.Update(purpose); err != nil {
		return nil, err
	}
	return purpose, nil
}

// DeletePurpose 删除来访目的
func (s *DirectoryService) DeletePurpose(id uint) error {
	ok, err := s.purposeRepo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPurposeNotFound
	}
	return nil
}

// DropdownDepartments 公司下启用的部门
func (s *DirectoryService) DropdownDepartments(companyID uint) ([]models.Department, error) {
	if companyID == 0 {
		return []models.Department{}, nil
	}
	return s.departmentRepo.ListActiveByCompany(companyID)
}

// DropdownDesignations 公司与部门下启用的岗位
func (s *DirectoryService) DropdownDesignations(companyID, departmentID uint) ([]models.Designation, error) {
	if companyID == 0 || departmentID == 0 {
		return []models.Designation{}, nil
	}
	return s.designationRepo.List(companyID, departmentID)
}

// DropdownEmployees 级联筛选启用的员工
func (s *DirectoryService) DropdownEmployees(filter repository.DropdownFilter) ([]models.Employee, error) {
	if filter.CompanyID == 0 {
		return []models.Employee{}, nil
	}
	return s.employeeRepo.ListActiveForDropdown(filter)
}
