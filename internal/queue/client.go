package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 邮件类通知
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 验证码等时效敏感任务
	CriticalQueue = constants.QueueCritical

	defaultConcurrency = 10
)

// 各任务的默认投递选项，调用方传入的选项在其后追加并覆盖
var taskDefaults = map[string][]asynq.Option{
	TaskOtpDeliver:            {asynq.Queue(CriticalQueue), asynq.MaxRetry(2), asynq.Timeout(30 * time.Second)},
	TaskVisitorReviewEmail:    {asynq.Queue(DefaultQueue), asynq.MaxRetry(5)},
	TaskVisitorApprovedEmail:  {asynq.Queue(DefaultQueue), asynq.MaxRetry(5)},
	TaskVisitorRejectedEmail:  {asynq.Queue(DefaultQueue), asynq.MaxRetry(5)},
	TaskAppointmentQRCodeMail: {asynq.Queue(DefaultQueue), asynq.MaxRetry(5)},
}

// Client asynq 客户端封装；未启用时所有投递均为空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

// Enabled 是否真正投递到队列
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭连接
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *Client) enqueue(task *asynq.Task, buildErr error, opts []asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	if buildErr != nil {
		return buildErr
	}
	options := append(append([]asynq.Option{}, taskDefaults[task.Type()]...), opts...)
	if _, err := c.client.Enqueue(task, options...); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}

// EnqueueVisitorReviewEmail 通知接待人审核访客
func (c *Client) EnqueueVisitorReviewEmail(payload VisitorNotifyPayload, opts ...asynq.Option) error {
	task, err := NewVisitorNotifyTask(TaskVisitorReviewEmail, payload)
	return c.enqueue(task, err, opts)
}

// EnqueueVisitorApprovedEmail 审核通过邮件
func (c *Client) EnqueueVisitorApprovedEmail(payload VisitorNotifyPayload, opts ...asynq.Option) error {
	task, err := NewVisitorNotifyTask(TaskVisitorApprovedEmail, payload)
	return c.enqueue(task, err, opts)
}

// EnqueueVisitorRejectedEmail 审核拒绝邮件
func (c *Client) EnqueueVisitorRejectedEmail(payload VisitorNotifyPayload, opts ...asynq.Option) error {
	task, err := NewVisitorNotifyTask(TaskVisitorRejectedEmail, payload)
	return c.enqueue(task, err, opts)
}

// EnqueueOtpDeliver 验证码投递走 critical 队列，重试次数有限
func (c *Client) EnqueueOtpDeliver(payload OtpDeliverPayload, opts ...asynq.Option) error {
	task, err := NewOtpDeliverTask(payload)
	return c.enqueue(task, err, opts)
}

// EnqueueAppointmentMail 预约二维码邮件
func (c *Client) EnqueueAppointmentMail(payload AppointmentMailPayload, opts ...asynq.Option) error {
	task, err := NewAppointmentMailTask(payload)
	return c.enqueue(task, err, opts)
}

// BuildServerConfig 生成 worker 配置；配置中缺失的内置队列会被补上
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := defaultConcurrency
	queues := map[string]int{}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		for name, weight := range cfg.Queues {
			if name = strings.TrimSpace(name); name != "" && weight > 0 {
				queues[name] = weight
			}
		}
	}
	if _, ok := queues[CriticalQueue]; !ok {
		queues[CriticalQueue] = 6
	}
	if _, ok := queues[DefaultQueue]; !ok {
		queues[DefaultQueue] = 3
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
