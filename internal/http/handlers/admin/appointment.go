package admin

import (
	"errors"
	"net/http"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/repository"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var appointmentErrorRules = []mappedHandlerError{
	{Target: service.ErrAppointmentNotFound, Code: response.CodeNotFound, Key: "error.appointment_not_found"},
	{Target: service.ErrAppointmentInvalid, Code: response.CodeBadRequest, Key: "error.appointment_invalid"},
	{Target: service.ErrVisitorNotFound, Code: response.CodeNotFound, Key: "error.visitor_not_found"},
	{Target: service.ErrCompanyNotFound, Code: response.CodeNotFound, Key: "error.company_not_found"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// AppointmentScheduleRequest 预约排期字段
type AppointmentScheduleRequest struct {
	AppointmentDate string `form:"appointment_date" json:"appointment_date"`
	AppointmentTime string `form:"appointment_time" json:"appointment_time"`
	Duration        string `form:"duration" json:"duration"`
	PurposeOfVisit  uint   `form:"purpose_of_visit" json:"purpose_of_visit"`
	CompanyID       uint   `form:"company_id" json:"company_id"`
	DepartmentID    uint   `form:"department_id" json:"department_id"`
	DesignationID   uint   `form:"designation_id" json:"designation_id"`
	WhomToMeet      uint   `form:"whom_to_meet" json:"whom_to_meet"`
	Reminder        string `form:"reminder" json:"reminder"`
	Remarks         string `form:"remarks" json:"remarks"`
}

func (r AppointmentScheduleRequest) toSchedule(c *gin.Context) service.AppointmentSchedule {
	return service.AppointmentSchedule{
		AppointmentDate: r.AppointmentDate,
		AppointmentTime: r.AppointmentTime,
		Duration:        r.Duration,
		PurposeOfVisit:  r.PurposeOfVisit,
		CompanyID:       scopedCompanyID(c, r.CompanyID),
		DepartmentID:    r.DepartmentID,
		DesignationID:   r.DesignationID,
		WhomToMeet:      r.WhomToMeet,
		Reminder:        r.Reminder,
		Remarks:         r.Remarks,
	}
}

// AppointmentCreateRequest 创建预约（multipart，照片可选）
type AppointmentCreateRequest struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Phone     string `form:"phone"`
	Gender    string `form:"gender"`
	AadharNo  string `form:"aadhar_no"`
	Address   string `form:"address"`
	AppointmentScheduleRequest
}

// AppointmentUpdateRequest 更新预约
type AppointmentUpdateRequest struct {
	VisitorID uint `json:"visitor_id"`
	AppointmentScheduleRequest
}

// CreateAppointment 创建预约并登记访客
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req AppointmentCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	imageRef := ""
	file, err := c.FormFile("image")
	switch {
	case err == nil:
		imageRef, err = h.UploadService.SaveFile(file, service.UploadSceneVisitor)
		if err != nil {
			respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
			return
		}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.AppointmentService.Create(service.AppointmentCreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Gender:    req.Gender,
		AadharNo:  req.AadharNo,
		Address:   req.Address,
		Image:     imageRef,
		Schedule:  req.toSchedule(c),
	}, handlershared.AuditMetaFromContext(c))
	if err != nil {
		respondWithMappedError(c, err, appointmentErrorRules, response.CodeInternal, "error.appointment_save_failed")
		return
	}
	response.Success(c, result)
}

// UpdateAppointment 更新预约排期
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	var req AppointmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.ensureAppointmentScope(c, id) {
		return
	}
	appointment, err := h.AppointmentService.Update(id, service.AppointmentUpdateInput{
		VisitorID: req.VisitorID,
		Schedule:  req.toSchedule(c),
	})
	if err != nil {
		respondWithMappedError(c, err, appointmentErrorRules, response.CodeInternal, "error.appointment_save_failed")
		return
	}
	response.Success(c, appointment)
}

// GetAppointment 预约详情
func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	detail, err := h.AppointmentService.GetDetail(id)
	if err != nil {
		respondWithMappedError(c, err, appointmentErrorRules, response.CodeInternal, "error.appointment_fetch_failed")
		return
	}
	if !companyVisible(c, detail.CompanyID) {
		respondError(c, response.CodeNotFound, "error.appointment_not_found", nil)
		return
	}
	response.Success(c, detail)
}

// GetAppointmentRemarks 预约备注
func (h *Handler) GetAppointmentRemarks(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id", "error.bad_request")
	if !ok {
		return
	}
	if !h.ensureAppointmentScope(c, id) {
		return
	}
	remarks, err := h.AppointmentService.GetRemarks(id)
	if err != nil {
		respondWithMappedError(c, err, appointmentErrorRules, response.CodeInternal, "error.appointment_fetch_failed")
		return
	}
	response.Success(c, gin.H{"remarks": remarks})
}

// ListAppointments 预约表格，可按日期区间过滤
func (h *Handler) ListAppointments(c *gin.Context) {
	page, pageSize := parsePage(c)
	from, err := handlershared.ParseDateQuery(c.Query("from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	to, err := handlershared.ParseDateQuery(c.Query("to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rows, total, err := h.AppointmentService.ListTable(repository.AppointmentListFilter{
		Page:      page,
		PageSize:  pageSize,
		From:      from,
		To:        to,
		CompanyID: scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.appointment_fetch_failed", err)
		return
	}
	successWithPage(c, rows, page, pageSize, total)
}

func (h *Handler) ensureAppointmentScope(c *gin.Context, id uint) bool {
	if scopedCompanyID(c, 0) == 0 {
		return true
	}
	detail, err := h.AppointmentService.GetDetail(id)
	if err != nil {
		respondWithMappedError(c, err, appointmentErrorRules, response.CodeInternal, "error.appointment_fetch_failed")
		return false
	}
	if !companyVisible(c, detail.CompanyID) {
		respondError(c, response.CodeNotFound, "error.appointment_not_found", nil)
		return false
	}
	return true
}

// companyVisible 未绑定公司的账号可见全部
func companyVisible(c *gin.Context, companyID uint) bool {
	scoped := scopedCompanyID(c, 0)
	return scoped == 0 || scoped == companyID
}
