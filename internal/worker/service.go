package worker

import (
	"context"
	"errors"
	"time"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultSweepInterval = 5 * time.Minute
	sweepBatchSize       = 200
	sweepMaxBatches      = 50
)

// Service 后台任务服务：asynq 消费者加过期访客巡检
// 队列关闭时只运行巡检。
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建后台任务服务
func NewService(cfg *config.QueueConfig, visitorCfg *config.VisitorConfig, consumer *Consumer) (*Service, error) {
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	svc := &Service{
		name:          "worker",
		consumer:      consumer,
		sweepInterval: resolveSweepInterval(visitorCfg),
	}
	if cfg != nil && cfg.Enabled {
		opt, serverCfg := queue.BuildServerConfig(cfg)
		svc.server = asynq.NewServer(opt, serverCfg)
		svc.mux = asynq.NewServeMux()
		consumer.Register(svc.mux)
	}
	return svc, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil {
		return errors.New("worker not initialized")
	}
	if s.server == nil {
		logger.Infow("worker_queue_disabled_sweep_only", "interval", s.sweepInterval.String())
		s.runSweepLoop(ctx)
		return nil
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	// 巡检循环随 ctx 结束，asynq 由 Stop 关闭
	s.runSweepLoop(ctx)
	return nil
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runSweepLoop(ctx context.Context) {
	if s.consumer.visitors == nil {
		<-ctx.Done()
		return
	}
	s.consumer.sweepStaleVisitors()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.consumer.sweepStaleVisitors()
		}
	}
}

// sweepStaleVisitors 分批过期签入超时的访客，返回本轮过期数量
func (c *Consumer) sweepStaleVisitors() int {
	if c == nil || c.visitors == nil {
		return 0
	}
	total := 0
	for i := 0; i < sweepMaxBatches; i++ {
		expired, err := c.visitors.ExpireStale(sweepBatchSize)
		if err != nil {
			logger.Warnw("worker_sweep_expire_failed", "error", err, "expired", total)
			return total
		}
		total += expired
		if expired < sweepBatchSize {
			break
		}
	}
	if total > 0 {
		logger.Infow("worker_sweep_expired", "count", total)
	}
	return total
}

func resolveSweepInterval(cfg *config.VisitorConfig) time.Duration {
	if cfg == nil || cfg.SweepIntervalSeconds <= 0 {
		return defaultSweepInterval
	}
	return time.Duration(cfg.SweepIntervalSeconds) * time.Second
}
