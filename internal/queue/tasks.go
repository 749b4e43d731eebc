package queue

import (
	"encoding/json"

	"github.com/vms-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVisitorReviewEmail 通知管理员审核访客
	TaskVisitorReviewEmail = constants.TaskVisitorReviewEmail
	// TaskVisitorApprovedEmail 访客审核通过邮件
	TaskVisitorApprovedEmail = constants.TaskVisitorApprovedEmail
	// TaskVisitorRejectedEmail 访客审核拒绝邮件
	TaskVisitorRejectedEmail = constants.TaskVisitorRejectedEmail
	// TaskOtpDeliver 访客验证码投递
	TaskOtpDeliver = constants.TaskOtpDeliver
	// TaskAppointmentQRCodeMail 预约二维码邮件
	TaskAppointmentQRCodeMail = constants.TaskAppointmentQRCodeMail
)

// VisitorNotifyPayload 访客通知任务载荷
type VisitorNotifyPayload struct {
	VisitorID uint   `json:"visitor_id"`
	Locale    string `json:"locale,omitempty"`
}

// OtpDeliverPayload 验证码投递任务载荷
type OtpDeliverPayload struct {
	Contact     string `json:"contact"`
	ContactType string `json:"contact_type"`
	Code        string `json:"code"`
	Purpose     string `json:"purpose,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

// AppointmentMailPayload 预约邮件任务载荷
type AppointmentMailPayload struct {
	AppointmentID uint   `json:"appointment_id"`
	Locale        string `json:"locale,omitempty"`
}

// NewVisitorNotifyTask 创建访客通知任务，taskType 为审核、通过或拒绝
func NewVisitorNotifyTask(taskType string, payload VisitorNotifyPayload) (*asynq.Task, error) {
	return newJSONTask(taskType, payload)
}

// NewOtpDeliverTask 创建验证码投递任务
func NewOtpDeliverTask(payload OtpDeliverPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOtpDeliver, payload)
}

// NewAppointmentMailTask 创建预约邮件任务
func NewAppointmentMailTask(payload AppointmentMailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskAppointmentQRCodeMail, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
