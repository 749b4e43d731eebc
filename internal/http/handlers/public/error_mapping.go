package public

import (
	"errors"

	handlershared "github.com/vms-next/internal/http/handlers/shared"
	"github.com/vms-next/internal/http/response"
	"github.com/vms-next/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedError

var contactErrorRules = []mappedHandlerError{
	{Target: service.ErrContactInvalid, Code: response.CodeBadRequest, Key: "error.contact_invalid"},
}

var otpVerifyErrorRules = []mappedHandlerError{
	{Target: service.ErrOtpNotFound, Code: response.CodeBadRequest, Key: "error.otp_not_found"},
	{Target: service.ErrOtpInvalid, Code: response.CodeBadRequest, Key: "error.otp_invalid"},
	{Target: service.ErrOtpExpired, Code: response.CodeBadRequest, Key: "error.otp_expired"},
	{Target: service.ErrOtpAttemptsExceeded, Code: response.CodeTooManyRequests, Key: "error.otp_attempts_exceeded"},
}

var uploadErrorRules = []mappedHandlerError{
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeInvalid, Code: response.CodeBadRequest, Key: "error.upload_type_invalid"},
	{Target: service.ErrUploadImageInvalid, Code: response.CodeBadRequest, Key: "error.upload_image_invalid"},
}

var visitorSubmitErrorRules = []mappedHandlerError{
	{Target: service.ErrVisitorNotVerified, Code: response.CodeForbidden, Key: "error.visitor_not_verified"},
}

var lookupCodeErrorRules = []mappedHandlerError{
	{Target: service.ErrAppointmentNotFound, Code: response.CodeNotFound, Key: "error.appointment_not_found"},
	{Target: service.ErrVerifyCodeTooFrequent, Code: response.CodeTooManyRequests, Key: "error.verify_code_too_frequent"},
	{Target: service.ErrVerifyCodeInvalid, Code: response.CodeBadRequest, Key: "error.verify_code_invalid"},
	{Target: service.ErrVerifyCodeExpired, Code: response.CodeBadRequest, Key: "error.verify_code_expired"},
	{Target: service.ErrVerifyCodeAttemptsExceeded, Code: response.CodeTooManyRequests, Key: "error.verify_code_attempts_exceeded"},
}

func respondOtpError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, handlershared.ConcatMappedErrors(contactErrorRules, otpVerifyErrorRules), response.CodeInternal, "error.otp_failed")
}

// respondSubmitError 缺字段时在 data 中返回缺失字段列表
func respondSubmitError(c *gin.Context, err error) {
	var missing *service.MissingFieldsError
	if errors.As(err, &missing) {
		respondErrorWithData(c, response.CodeBadRequest, "error.visitor_fields_missing", gin.H{"missing_fields": missing.Fields}, nil)
		return
	}
	rules := handlershared.ConcatMappedErrors(visitorSubmitErrorRules, contactErrorRules, uploadErrorRules)
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, "error.visitor_submit_failed")
}

func respondLookupError(c *gin.Context, err error) {
	rules := handlershared.ConcatMappedErrors(contactErrorRules, lookupCodeErrorRules)
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, "error.appointment_lookup_failed")
}
