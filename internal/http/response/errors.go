package response

// AppError 统一错误包装
type AppError struct {
	Code    int
	Message string
	Data    interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapErrorWithData 包装错误并携带上下文数据（如扫码拒绝时的访客状态）
func WrapErrorWithData(code int, message string, data interface{}, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Data:    data,
		Err:     err,
	}
}
