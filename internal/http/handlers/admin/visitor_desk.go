package admin

import (
	"errors"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/i18n"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

var visitorLookupErrorRules = []mappedHandlerError{
	{Target: service.ErrVisitorNotFound, Code: response.CodeNotFound, Key: "error.visitor_not_found"},
}

var visitorDecisionErrorRules = []mappedHandlerError{
	{Target: service.ErrVisitorNotFound, Code: response.CodeNotFound, Key: "error.visitor_not_found"},
	{Target: service.ErrVisitorAlreadyVerified, Code: response.CodeBadRequest, Key: "error.visitor_already_verified"},
	{Target: service.ErrVisitorRejected, Code: response.CodeBadRequest, Key: "error.visitor_rejected"},
}

var scanErrorRules = []mappedHandlerError{
	{Target: service.ErrQRCodeRequired, Code: response.CodeBadRequest, Key: "error.qr_code_required"},
	{Target: service.ErrQRFormatInvalid, Code: response.CodeBadRequest, Key: "error.qr_format_invalid"},
	{Target: service.ErrScanTypeInvalid, Code: response.CodeBadRequest, Key: "error.scan_type_invalid"},
	{Target: service.ErrVisitorNotFound, Code: response.CodeNotFound, Key: "error.visitor_not_found"},
	{Target: service.ErrScanConflict, Code: response.CodeConflict, Key: "error.scan_conflict"},
	{Target: service.ErrVisitorExpired, Code: response.CodeBadRequest, Key: "error.visitor_expired"},
	{Target: service.ErrAlreadyCheckedOut, Code: response.CodeBadRequest, Key: "error.visitor_already_checked_out"},
	{Target: service.ErrAlreadyCheckedIn, Code: response.CodeBadRequest, Key: "error.visitor_already_checked_in"},
	{Target: service.ErrNotCheckedIn, Code: response.CodeBadRequest, Key: "error.visitor_not_checked_in"},
	{Target: service.ErrQRStateInvalid, Code: response.CodeBadRequest, Key: "error.visitor_qr_state_invalid"},
	{Target: service.ErrExitCooldown, Code: response.CodeTooManyRequests, Key: "error.visitor_exit_cooldown"},
}

// ScanRequest 扫码请求，qrCode 与 qr_code 两种写法都接受
type ScanRequest struct {
	QRCode      string `json:"qrCode"`
	QRCodeSnake string `json:"qr_code"`
	ScanType    string `json:"scanType"`
}

// ScanVisitorQRCode 扫码签入或签出
func (h *Handler) ScanVisitorQRCode(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	code := req.QRCode
	if code == "" {
		code = req.QRCodeSnake
	}

	result, err := h.ScanService.Scan(service.ScanInput{
		QRCode:   code,
		ScanType: req.ScanType,
		Meta:     handlershared.AuditMetaFromContext(c),
	})
	if err != nil {
		respondScanError(c, err)
		return
	}
	response.Success(c, result)
}

// respondScanError 状态类拒绝在 data 中带上访客当前状态，方便前台展示
func respondScanError(c *gin.Context, err error) {
	var rejection *service.ScanRejection
	if !errors.As(err, &rejection) {
		respondWithMappedError(c, err, scanErrorRules, response.CodeInternal, "error.scan_failed")
		return
	}
	for _, rule := range scanErrorRules {
		if errors.Is(rejection.Err, rule.Target) {
			respondErrorWithData(c, rule.Code, rule.Key, gin.H{"visitor": rejection.Context}, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.scan_failed", err)
}

// ApproveVisitor 审核通过并签发二维码
func (h *Handler) ApproveVisitor(c *gin.Context) {
	visitorID, ok := handlershared.ParseUintParam(c, "id", "error.visitor_id_invalid")
	if !ok {
		return
	}
	result, err := h.VisitorService.Approve(visitorID, handlershared.AuditMetaFromContext(c))
	if err != nil {
		respondWithMappedError(c, err, visitorDecisionErrorRules, response.CodeInternal, "error.visitor_approve_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.visitor_approved"), gin.H{
		"visitorId": result.VisitorID,
		"qrCode":    result.QRCode,
	})
}

// RejectVisitor 拒绝来访申请
func (h *Handler) RejectVisitor(c *gin.Context) {
	visitorID, ok := handlershared.ParseUintParam(c, "id", "error.visitor_id_invalid")
	if !ok {
		return
	}
	if err := h.VisitorService.Reject(visitorID, handlershared.AuditMetaFromContext(c)); err != nil {
		respondWithMappedError(c, err, visitorDecisionErrorRules, response.CodeInternal, "error.visitor_reject_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.visitor_rejected"), nil)
}

// VerifyVisitorDetails 审核页读取访客详情（含被访人与来访目的）
func (h *Handler) VerifyVisitorDetails(c *gin.Context) {
	visitorID, ok := handlershared.ParseUintParam(c, "id", "error.visitor_id_invalid")
	if !ok {
		return
	}
	detail, err := h.VisitorService.VerifyDetails(visitorID)
	if err != nil {
		respondWithMappedError(c, err, visitorLookupErrorRules, response.CodeInternal, "error.visitor_fetch_failed")
		return
	}
	response.Success(c, detail)
}
