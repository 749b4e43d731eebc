package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/provider"
	"github.com/vms-next/internal/queue"
	"github.com/vms-next/internal/service"

	"github.com/hibiken/asynq"
)

// notificationDeliverer 通知投递能力，由 service.NotificationService 实现
type notificationDeliverer interface {
	DeliverVisitorReview(visitorID uint, locale string) error
	DeliverVisitorApproved(visitorID uint, locale string) error
	DeliverVisitorRejected(visitorID uint, locale string) error
	DeliverOtp(payload queue.OtpDeliverPayload) error
	DeliverAppointmentMail(appointmentID uint, locale string) error
}

// staleVisitorSweeper 过期访客清理能力，由 service.VisitorService 实现
type staleVisitorSweeper interface {
	ExpireStale(limit int) (int, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	notifications notificationDeliverer
	visitors      staleVisitorSweeper
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return &Consumer{}
	}
	consumer := &Consumer{}
	if c.NotificationService != nil {
		consumer.notifications = c.NotificationService
	}
	if c.VisitorService != nil {
		consumer.visitors = c.VisitorService
	}
	return consumer
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVisitorReviewEmail, c.visitorHandler(queue.TaskVisitorReviewEmail, func(p queue.VisitorNotifyPayload) error {
		return c.notifications.DeliverVisitorReview(p.VisitorID, p.Locale)
	}))
	mux.HandleFunc(queue.TaskVisitorApprovedEmail, c.visitorHandler(queue.TaskVisitorApprovedEmail, func(p queue.VisitorNotifyPayload) error {
		return c.notifications.DeliverVisitorApproved(p.VisitorID, p.Locale)
	}))
	mux.HandleFunc(queue.TaskVisitorRejectedEmail, c.visitorHandler(queue.TaskVisitorRejectedEmail, func(p queue.VisitorNotifyPayload) error {
		return c.notifications.DeliverVisitorRejected(p.VisitorID, p.Locale)
	}))
	mux.HandleFunc(queue.TaskOtpDeliver, c.handleOtpDeliver)
	mux.HandleFunc(queue.TaskAppointmentQRCodeMail, c.handleAppointmentMail)
}

func (c *Consumer) visitorHandler(taskType string, deliver func(queue.VisitorNotifyPayload) error) asynq.HandlerFunc {
	return func(_ context.Context, task *asynq.Task) error {
		if c == nil || task == nil || c.notifications == nil {
			logger.Debugw("worker_visitor_notify_skip_nil", "task", taskType)
			return nil
		}
		var payload queue.VisitorNotifyPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Warnw("worker_visitor_notify_unmarshal_failed", "task", taskType, "error", err)
			return err
		}
		if payload.VisitorID == 0 {
			logger.Debugw("worker_visitor_notify_skip_invalid_payload", "task", taskType)
			return nil
		}
		return settleDelivery(taskType, deliver(payload), "visitor_id", payload.VisitorID)
	}
}

func (c *Consumer) handleOtpDeliver(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.notifications == nil {
		logger.Debugw("worker_otp_deliver_skip_nil")
		return nil
	}
	var payload queue.OtpDeliverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_otp_deliver_unmarshal_failed", "error", err)
		return err
	}
	if payload.Contact == "" || payload.Code == "" {
		logger.Debugw("worker_otp_deliver_skip_invalid_payload", "contact_type", payload.ContactType)
		return nil
	}
	return settleDelivery(queue.TaskOtpDeliver, c.notifications.DeliverOtp(payload), "contact_type", payload.ContactType)
}

func (c *Consumer) handleAppointmentMail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.notifications == nil {
		logger.Debugw("worker_appointment_mail_skip_nil")
		return nil
	}
	var payload queue.AppointmentMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_appointment_mail_unmarshal_failed", "error", err)
		return err
	}
	if payload.AppointmentID == 0 {
		logger.Debugw("worker_appointment_mail_skip_invalid_payload")
		return nil
	}
	err := c.notifications.DeliverAppointmentMail(payload.AppointmentID, payload.Locale)
	return settleDelivery(queue.TaskAppointmentQRCodeMail, err, "appointment_id", payload.AppointmentID)
}

// settleDelivery 不可重试的错误直接确认，其余交给 asynq 重试
func settleDelivery(taskType string, err error, kv ...interface{}) error {
	if err == nil {
		return nil
	}
	fields := append([]interface{}{"task", taskType, "error", err}, kv...)
	switch {
	case errors.Is(err, service.ErrVisitorNotFound),
		errors.Is(err, service.ErrAppointmentNotFound),
		errors.Is(err, service.ErrEmailServiceDisabled),
		errors.Is(err, service.ErrEmailRecipientRejected),
		errors.Is(err, service.ErrInvalidEmail):
		logger.Debugw("worker_delivery_skip", fields...)
		return nil
	default:
		logger.Warnw("worker_delivery_failed", fields...)
		return err
	}
}
