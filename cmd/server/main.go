package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/vms-next/internal/app"
	"github.com/vms-next/internal/cache"
	"github.com/vms-next/internal/config"
	"github.com/vms-next/internal/logger"
	"github.com/vms-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiDim     = "\033[2m"
	ansiCyan    = "\033[36m"
	ansiMagenta = "\033[95m"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	if err := run(*mode); err != nil {
		fmt.Fprintf(os.Stderr, "vms: %v\n", err)
		os.Exit(1)
	}
}

func run(rawMode string) error {
	mode, err := app.ParseMode(rawMode)
	if err != nil {
		return err
	}
	printBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = logger.Sync() }()
	release := cfg.Server.Mode == "release"
	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := checkJWTSecret(cfg.JWT.SecretKey, release); err != nil {
		return err
	}
	if err := prepareDatabase(cfg, release); err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	return app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})
}

// checkJWTSecret 生产环境拒绝弱密钥，其它模式只告警
func checkJWTSecret(secret string, release bool) error {
	if !isWeakSecret(secret) {
		return nil
	}
	if release {
		return errors.New("jwt secret is weak or still the default, set a random secret of at least 32 chars")
	}
	logger.Warnw("jwt_secret_weak", "hint", "replace before deploying")
	return nil
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	lower := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// prepareDatabase 连接、迁移并写入初始管理员与来访目的
func prepareDatabase(cfg *config.Config, release bool) error {
	if err := models.InitFromConfig(cfg.Database); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	username := os.Getenv("VMS_DEFAULT_ADMIN_USERNAME")
	password := os.Getenv("VMS_DEFAULT_ADMIN_PASSWORD")
	switch {
	case release && password == "":
		logger.Warnw("default_admin_skipped", "reason", "VMS_DEFAULT_ADMIN_PASSWORD not set")
	default:
		if err := models.InitDefaultAdmin(username, password); err != nil {
			logger.Warnw("default_admin_init_failed", "error", err)
		}
	}
	if err := models.InitDefaultPurposes(); err != nil {
		logger.Warnw("default_purposes_init_failed", "error", err)
	}
	return nil
}

func printBanner(mode string) {
	line := strings.Repeat("─", 56)
	fmt.Println(ansiMagenta + line + ansiReset)
	fmt.Println(ansiMagenta + ansiBold + "  VMS-Next  访客登记 · 审核 · 扫码签入签出 · 预约" + ansiReset)
	fmt.Println(ansiMagenta + line + ansiReset)
	fmt.Printf("%s  mode: %s%s\n", ansiCyan, mode, ansiReset)
	fmt.Println(ansiDim + "  all = HTTP API + worker | api = HTTP only | worker = queue + expiry sweep" + ansiReset)
}
