package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var visitorAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrVisitorNotFound, Code: response.CodeNotFound, Key: "error.visitor_not_found"},
	{Target: service.ErrVisitorStatusInvalid, Code: response.CodeBadRequest, Key: "error.visitor_status_invalid"},
	{Target: service.ErrVisitorCardUnavailable, Code: response.CodeBadRequest, Key: "error.visitor_card_unavailable"},
}

type visitorUpdateRequest struct {
	FirstName     string `form:"first_name" json:"first_name"`
	LastName      string `form:"last_name" json:"last_name"`
	Email         string `form:"email" json:"email"`
	Phone         string `form:"phone" json:"phone"`
	Gender        string `form:"gender" json:"gender"`
	AadharNo      string `form:"aadhar_no" json:"aadhar_no"`
	Address       string `form:"address" json:"address"`
	CompanyID     uint   `form:"company_id" json:"company_id"`
	DepartmentID  uint   `form:"department_id" json:"department_id"`
	DesignationID uint   `form:"designation_id" json:"designation_id"`
	WhomToMeet    uint   `form:"whom_to_meet" json:"whom_to_meet"`
	EmployeeID    uint   `form:"employee_id" json:"employee_id"`
	Purpose       uint   `form:"purpose" json:"purpose"`
	PurposeID     uint   `form:"purpose_id" json:"purpose_id"`
}

type visitorStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListVisitors 访客列表，按签入时间倒序
func (h *Handler) ListVisitors(c *gin.Context) {
	page, pageSize := parsePage(c)
	filter := repository.VisitorListFilter{
		Page:      page,
		PageSize:  pageSize,
		QRStatus:  strings.TrimSpace(c.Query("qr_status")),
		CompanyID: scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")),
		Keyword:   strings.TrimSpace(c.Query("keyword")),
	}
	if raw := strings.TrimSpace(c.Query("is_verified")); raw != "" {
		state, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.IsVerified = &state
	}

	rows, total, err := h.VisitorService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.visitor_fetch_failed", err)
		return
	}
	successWithPage(c, rows, page, pageSize, total)
}

// GetVisitor 访客详情
func (h *Handler) GetVisitor(c *gin.Context) {
	visitorID, ok := h.requireScopedVisitor(c)
	if !ok {
		return
	}
	detail, err := h.VisitorService.VerifyDetails(visitorID)
	if err != nil {
		respondWithMappedError(c, err, visitorAdminErrorRules, response.CodeInternal, "error.visitor_fetch_failed")
		return
	}
	response.Success(c, detail)
}

// UpdateVisitor 修改访客资料，可同时替换照片
func (h *Handler) UpdateVisitor(c *gin.Context) {
	visitorID, ok := h.requireScopedVisitor(c)
	if !ok {
		return
	}
	var req visitorUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	imageRef := ""
	if file, err := c.FormFile("image"); err == nil {
		imageRef, err = h.UploadService.SaveFile(file, service.UploadSceneVisitor)
		if err != nil {
			respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	form := service.VisitorForm{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Gender:        req.Gender,
		AadharNo:      req.AadharNo,
		Address:       req.Address,
		CompanyID:     req.CompanyID,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		WhomToMeet:    req.WhomToMeet,
		EmployeeID:    req.EmployeeID,
		Purpose:       req.Purpose,
		PurposeID:     req.PurposeID,
	}
	if err := h.VisitorService.Update(visitorID, form, imageRef); err != nil {
		var missing *service.MissingFieldsError
		if errors.As(err, &missing) {
			respondErrorWithData(c, response.CodeBadRequest, "error.visitor_fields_missing", gin.H{"missing_fields": missing.Fields}, nil)
			return
		}
		respondWithMappedError(c, err, visitorAdminErrorRules, response.CodeInternal, "error.visitor_update_failed")
		return
	}
	response.Success(c, nil)
}

// UpdateVisitorStatus 修改前台状态标签
func (h *Handler) UpdateVisitorStatus(c *gin.Context) {
	visitorID, ok := h.requireScopedVisitor(c)
	if !ok {
		return
	}
	var req visitorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.VisitorService.UpdateStatusLabel(visitorID, req.Status); err != nil {
		respondWithMappedError(c, err, visitorAdminErrorRules, response.CodeInternal, "error.visitor_update_failed")
		return
	}
	response.Success(c, nil)
}

// GetVisitorCard 打印访客卡
func (h *Handler) GetVisitorCard(c *gin.Context) {
	visitorID, ok := h.requireScopedVisitor(c)
	if !ok {
		return
	}
	card, err := h.VisitorService.GenerateCard(visitorID)
	if err != nil {
		respondWithMappedError(c, err, visitorAdminErrorRules, response.CodeInternal, "error.visitor_fetch_failed")
		return
	}
	response.Success(c, card)
}

// ListVisitorAuditLogs 访客状态流转日志
func (h *Handler) ListVisitorAuditLogs(c *gin.Context) {
	page, pageSize := parsePage(c)
	logs, total, err := h.VisitorService.ListAuditLogs(repository.VisitorAuditLogListFilter{
		Page:      page,
		PageSize:  pageSize,
		VisitorID: handlershared.ParseUintQuery(c, "visitor_id"),
		Source:    strings.TrimSpace(c.Query("source")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.visitor_fetch_failed", err)
		return
	}
	successWithPage(c, logs, page, pageSize, total)
}

// requireScopedVisitor 解析访客 ID；绑定公司的账号访问其他公司访客按不存在处理
func (h *Handler) requireScopedVisitor(c *gin.Context) (uint, bool) {
	visitorID, ok := handlershared.ParseUintParam(c, "id", "error.visitor_id_invalid")
	if !ok {
		return 0, false
	}
	companyID := scopedCompanyID(c, 0)
	if companyID == 0 {
		return visitorID, true
	}
	visitor, err := h.VisitorService.GetVisitor(visitorID)
	if err != nil {
		respondWithMappedError(c, err, visitorAdminErrorRules, response.CodeInternal, "error.visitor_fetch_failed")
		return 0, false
	}
	if visitor.CompanyID != companyID {
		respondError(c, response.CodeNotFound, "error.visitor_not_found", nil)
		return 0, false
	}
	return visitorID, true
}
