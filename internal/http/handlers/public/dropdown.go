package public

import (
	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// 级联下拉：公司 → 部门 → 岗位 → 员工，只返回启用中的数据

// DropdownCompanies 公司下拉
func (h *Handler) DropdownCompanies(c *gin.Context) {
	items, err := h.DirectoryService.ListCompanies()
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// DropdownDepartments 部门下拉
func (h *Handler) DropdownDepartments(c *gin.Context) {
	items, err := h.DirectoryService.DropdownDepartments(handlershared.ParseUintQuery(c, "company_id"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// DropdownDesignations 岗位下拉
func (h *Handler) DropdownDesignations(c *gin.Context) {
	items, err := h.DirectoryService.DropdownDesignations(
		handlershared.ParseUintQuery(c, "company_id"),
		handlershared.ParseUintQuery(c, "department_id"),
	)
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// DropdownEmployees 被访员工下拉
func (h *Handler) DropdownEmployees(c *gin.Context) {
	items, err := h.DirectoryService.DropdownEmployees(repository.DropdownFilter{
		CompanyID:     handlershared.ParseUintQuery(c, "company_id"),
		DepartmentID:  handlershared.ParseUintQuery(c, "department_id"),
		DesignationID: handlershared.ParseUintQuery(c, "designation_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// DropdownPurposes 来访目的下拉
func (h *Handler) DropdownPurposes(c *gin.Context) {
	items, err := h.DirectoryService.ListPurposes()
	if err != nil {
		respondError(c, response.CodeInternal, "error.directory_fetch_failed", err)
		return
	}
	response.Success(c, items)
}
