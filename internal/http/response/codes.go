package response

import "net/http"

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// HTTPStatus 业务码映射为 HTTP 状态码
// 访客扫码端依赖真实状态码区分 409 竞争失败与 429 冷却。
func HTTPStatus(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeBadRequest, CodeUnauthorized, CodeForbidden, CodeNotFound,
		CodeConflict, CodeTooManyRequests, CodeInternal:
		return code
	default:
		if code >= 400 && code < 600 {
			return code
		}
		return http.StatusOK
	}
}
