package admin

import (
	"strings"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var reportErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.report_query_invalid"},
}

func parseReportQuery(c *gin.Context) (service.ReportQuery, bool) {
	page, pageSize := parsePage(c)
	from, err := handlershared.ParseDateQuery(c.Query("from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.report_query_invalid", err)
		return service.ReportQuery{}, false
	}
	to, err := handlershared.ParseDateQuery(c.Query("to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.report_query_invalid", err)
		return service.ReportQuery{}, false
	}
	return service.ReportQuery{
		Page:      page,
		PageSize:  pageSize,
		From:      from,
		To:        to,
		CompanyID: scopedCompanyID(c, handlershared.ParseUintQuery(c, "company_id")),
		QRStatus:  strings.TrimSpace(c.Query("qr_status")),
	}, true
}

// GetVisitorReport 访客报表
func (h *Handler) GetVisitorReport(c *gin.Context) {
	query, ok := parseReportQuery(c)
	if !ok {
		return
	}
	rows, total, err := h.ReportService.VisitorReport(query)
	if err != nil {
		respondWithMappedError(c, err, reportErrorRules, response.CodeInternal, "error.report_fetch_failed")
		return
	}
	successWithPage(c, rows, query.Page, query.PageSize, total)
}

// GetAppointmentReport 预约报表
func (h *Handler) GetAppointmentReport(c *gin.Context) {
	query, ok := parseReportQuery(c)
	if !ok {
		return
	}
	rows, total, err := h.ReportService.AppointmentReport(query)
	if err != nil {
		respondWithMappedError(c, err, reportErrorRules, response.CodeInternal, "error.report_fetch_failed")
		return
	}
	successWithPage(c, rows, query.Page, query.PageSize, total)
}
