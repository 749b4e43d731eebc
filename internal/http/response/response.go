package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const successMsg = "success"

// Response 统一响应信封：status_code 为业务码，0 表示成功
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 列表接口信封
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Success 成功
func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, successMsg, data)
}

// SuccessWithMsg 成功并自定义提示，访客流程的提示语放在 msg
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Msg: msg, Data: data})
}

// SuccessWithPage 分页列表
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{Msg: successMsg, Data: data},
		Pagination: pagination,
	})
}

// Error 失败，HTTP 状态由业务码推导
func Error(c *gin.Context, statusCode int, msg string) {
	ErrorWithData(c, statusCode, msg, nil)
}

// ErrorWithData 失败并在 data 中带上下文，自动附加 request_id
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(HTTPStatus(statusCode), Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, data),
	})
}

// Unauthorized 401
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

func requestIDOf(c *gin.Context) string {
	if c == nil {
		return ""
	}
	id, _ := c.Get("request_id")
	s, _ := id.(string)
	return s
}

// attachRequestID map 类数据原地补 request_id，其它类型包一层
func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := requestIDOf(c)
	if requestID == "" {
		return data
	}
	var fields map[string]interface{}
	switch v := data.(type) {
	case nil:
		return gin.H{"request_id": requestID}
	case gin.H:
		fields = v
	case map[string]interface{}:
		fields = v
	default:
		return gin.H{"request_id": requestID, "data": data}
	}
	if _, exists := fields["request_id"]; !exists {
		fields["request_id"] = requestID
	}
	return fields
}
