package admin

import (
	"strings"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var directoryErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrCompanyNotFound, Code: response.CodeNotFound, Key: "error.company_not_found"},
	{Target: service.ErrDepartmentNotFound, Code: response.CodeNotFound, Key: "error.department_not_found"},
	{Target: service.ErrDesignationNotFound, Code: response.CodeNotFound, Key: "error.designation_not_found"},
	{Target: service.ErrEmployeeNotFound, Code: response.CodeNotFound, Key: "error.employee_not_found"},
	{Target: service.ErrEmployeeExists, Code: response.CodeConflict, Key: "error.employee_exists"},
	{Target: service.ErrPurposeNotFound, Code: response.CodeNotFound, Key: "error.purpose_not_found"},
}

func respondDirectoryError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, directoryErrorRules, response.CodeInternal, fallbackKey)
}

type companyPayload struct {
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
}

type departmentPayload struct {
	CompanyID uint   `json:"company_id"`
	DeptName  string `json:"dept_name"`
	Status    string `json:"status"`
}

type designationPayload struct {
	CompanyID       uint   `json:"company_id"`
	DepartmentID    uint   `json:"department_id"`
	DesignationName string `json:"designation_name"`
	Status          string `json:"status"`
}

type employeePayload struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	CompanyID     uint   `json:"company_id"`
	DepartmentID  uint   `json:"department_id"`
	DesignationID uint   `json:"designation_id"`
	Role          string `json:"role"`
	Status        string `json:"status"`
}

func (p employeePayload) toInput(c *gin.Context) service.EmployeeInput {
	return service.EmployeeInput{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         p.Phone,
		CompanyID:     scopedCompanyID(c, p.CompanyID),
		DepartmentID:  p.DepartmentID,
		DesignationID: p.DesignationID,
		Role:          p.Role,
		Status:        p.Status,
	}
}

type purposePayload struct {
	Purpose string `json:"purpose" binding:"required"`
}

// ====================  公司  ====================

// ListCompanies 公司列表
func (h *Handler) ListCompanies(c *gin.Context) {
	items, err := h.DirectoryService.ListCompanies()
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// CreateCompany 创建公司
func (h *Handler) CreateCompany(c *gin.Context) {
	var req companyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	company, err := h.DirectoryService.CreateCompany(service.CompanyInput{Name: req.CompanyName, Status: req.Status})
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, company)
}

// UpdateCompany 更新公司
func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req companyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	company, err := h.DirectoryService.UpdateCompany(id, service.CompanyInput{Name: req.CompanyName, Status: req.Status})
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, company)
}

// ====================  部门  ====================

// ListDepartments 部门列表
func (h *Handler) ListDepartments(c *gin.Context) {
	items, err := h.DirectoryService.ListDepartments(scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")))
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// CreateDepartment 创建部门
func (h *Handler) CreateDepartment(c *gin.Context) {
	var req departmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.DirectoryService.CreateDepartment(service.DepartmentInput{
		CompanyID: scopedCompanyID(c, req.CompanyID),
		Name:      req.DeptName,
		Status:    req.Status,
	})
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, item)
}

// UpdateDepartment 更新部门
func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req departmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.DirectoryService.UpdateDepartment(id, service.DepartmentInput{
		CompanyID: scopedCompanyID(c, req.CompanyID),
		Name:      req.DeptName,
		Status:    req.Status,
	})
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, item)
}

// DeactivateDepartment 停用部门
func (h *Handler) DeactivateDepartment(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if err := h.DirectoryService.DeactivateDepartment(id); err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, nil)
}

// ====================  岗位  ====================

// ListDesignations 岗位列表
func (h *Handler) ListDesignations(c *gin.Context) {
	items, err := h.DirectoryService.ListDesignations(
		scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")),
		handlershared.ParseUintQuery(c, "department_id"),
	)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// CreateDesignation 创建岗位
func (h *Handler) CreateDesignation(c *gin.Context) {
	var req designationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.DirectoryService.CreateDesignation(service.DesignationInput{
		CompanyID:    scopedCompanyID(c, req.CompanyID),
		DepartmentID: req.DepartmentID,
		Name:         req.DesignationName,
		Status:       req.Status,
	})
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, item)
}

// UpdateDesignation 更新岗位
func (h *Handler) UpdateDesignation(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req designationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.DirectoryService.UpdateDesignation(id, service.DesignationInput{
		CompanyID:    scopedCompanyID(c, req.CompanyID),
		DepartmentID: req.DepartmentID,
		Name:         req.DesignationName,
		Status:       req.Status,
	})
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, item)
}

// DeactivateDesignation 停用岗位
func (h *Handler) DeactivateDesignation(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if err := h.DirectoryService.DeactivateDesignation(id); err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, nil)
}

// ====================  员工  ====================

// ListEmployees 员工分页列表
func (h *Handler) ListEmployees(c *gin.Context) {
	page, pageSize := parsePage(c)
	rows, total, err := h.DirectoryService.ListEmployees(repository.EmployeeListFilter{
		Page:      page,
		PageSize:  pageSize,
		CompanyID: scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")),
		Status:    strings.TrimSpace(c.Query("status")),
		Keyword:   strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	successWithPage(c, rows, page, pageSize, total)
}

// GetEmployee 员工详情
func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	employee, err := h.DirectoryService.GetEmployee(id)
	if err != nil {
		respondDirectoryError(c, err, "error.directory_fetch_failed")
		return
	}
	response.Success(c, employee)
}

// CreateEmployee 创建员工
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	employee, err := h.DirectoryService.CreateEmployee(req.toInput(c))
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, employee)
}

// UpdateEmployee 更新员工
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	employee, err := h.DirectoryService.UpdateEmployee(id, req.toInput(c))
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, employee)
}

// ====================  来访目的  ====================

// ListPurposes 来访目的列表
func (h *Handler) ListPurposes(c *gin.Context) {
	items, err := h.DirectoryService.ListPurposes()
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// CreatePurpose 新增来访目的
func (h *Handler) CreatePurpose(c *gin.Context) {
	var req purposePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.DirectoryService.CreatePurpose(req.Purpose)
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, item)
}

// UpdatePurpose 修改来访目的
func (h *Handler) UpdatePurpose(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req purposePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.DirectoryService.UpdatePurpose(id, req.Purpose)
	if err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, item)
}

// DeletePurpose 删除来访目的
func (h *Handler) DeletePurpose(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if err := h.DirectoryService.DeletePurpose(id); err != nil {
		respondDirectoryError(c, err, "error.directory_save_failed")
		return
	}
	response.Success(c, nil)
}
