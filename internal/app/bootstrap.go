package app

import (
	"errors"

	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/provider"
	"github.com/vms-next/internal/router"
	"github.com/vms-next/internal/worker"
)

// BuildRunner 按模式组装服务：api 模式挂载路由，worker 模式启动通知消费与过期巡检
func BuildRunner(cfg *config.Config, opts Options) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	container := provider.NewContainer(cfg)

	services := make([]Service, 0, 2)
	if opts.runsAPI() {
		services = append(services, NewHTTPService(cfg.Server, router.SetupRouter(cfg, container)))
	}
	if opts.runsWorker() {
		workerService, err := worker.NewService(&cfg.Queue, &cfg.Visitor, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	opts.Mode = mode
	opts = normalizeOptions(opts)

	runner, err := BuildRunner(opts.Config, opts)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"mode", opts.Mode,
		"services", runner.Names(),
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return RunWithOptions(runner, opts)
}
