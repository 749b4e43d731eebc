package models

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vms-next/internal/config"
	vmslogger "github.com/vms-next/internal/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB 全局连接，由 InitDB 设置
var DB *gorm.DB

const slowQueryThreshold = 300 * time.Millisecond

// DBPoolConfig 数据库连接池配置，0 表示沿用驱动默认值
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// allModels 参与自动迁移的表，顺序即建表顺序
func allModels() []interface{} {
	return []interface{}{
		&Admin{},
		&AuthzAuditLog{},
		&Company{},
		&Department{},
		&Designation{},
		&Employee{},
		&Purpose{},
		&TempVisitor{},
		&Visitor{},
		&VisitorAuditLog{},
		&Appointment{},
		&VerifyCode{},
	}
}

func dialectorFor(driver, dsn string) (gorm.Dialector, bool, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		// 纯 Go 实现，无需 cgo
		return sqlite.Open(dsn), false, nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// newGormLogger SQL 日志写入 zap；postgres 只记录慢查询与错误
func newGormLogger(production bool) gormlogger.Interface {
	level := gormlogger.Info
	if production {
		level = gormlogger.Warn
	}
	return gormlogger.New(vmslogger.StdLogger(), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Open 打开连接并应用连接池配置
func Open(driver, dsn string, pool DBPoolConfig) (*gorm.DB, error) {
	dialector, production, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(production)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	applyDBPool(sqlDB, pool)
	return db, nil
}

// InitFromConfig 按配置打开全局连接
func InitFromConfig(cfg config.DatabaseConfig) error {
	return InitDB(cfg.Driver, cfg.DSN, DBPoolConfig{
		MaxOpenConns:           cfg.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Pool.ConnMaxIdleTimeSeconds,
	})
}

// InitDB 打开全局连接
func InitDB(driver, dsn string, pool DBPoolConfig) error {
	db, err := Open(driver, dsn, pool)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

func applyDBPool(sqlDB *sql.DB, pool DBPoolConfig) {
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// Migrate 对指定连接执行自动迁移
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return db.AutoMigrate(allModels()...)
}

// AutoMigrate 迁移全局连接
func AutoMigrate() error {
	return Migrate(DB)
}
