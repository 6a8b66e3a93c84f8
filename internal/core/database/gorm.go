package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

// Opts Username / Password 只对 mysql 生效，覆盖 DSN 中的账号
type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	AutoMigrate        bool
	Models             []any // AutoMigrate 建表用
}

// OpenGorm 建连并配置连接池；AutoMigrate 为 true 时顺带按 Models 建表
func OpenGorm(ctx context.Context, o Opts, l *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(o, l)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         gormLogger(l, o.LogLevel),
		TranslateError: true, // 唯一约束冲突统一为 gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	if o.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(o.Models...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done", zap.String("driver", o.Driver), zap.Int("models", len(o.Models)))
	}

	return db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存
		SkipDefaultTransaction: true, // 每次写都是单文档覆盖，不需要隐式事务
	}), nil
}

func dialector(o Opts, l *zap.Logger) (gorm.Dialector, error) {
	switch o.Driver {
	case "postgres":
		return postgres.Open(o.DSN), nil
	case "mysql":
		cfg, err := mysqlConfig(o.DSN, o.Username, o.Password)
		if err != nil {
			return nil, err
		}
		l.Info("mysql dsn", zap.String("dsn", maskedDSN(cfg)))
		return mysql.Open(cfg.FormatDSN()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
}

// mysqlConfig 接受 go-sql-driver 格式 user:pass@tcp(host:3306)/db?...；
// 时间列一律按 UTC 解析为 time.Time
func mysqlConfig(dsn, user, pass string) (*mysqldrv.Config, error) {
	cfg, err := mysqldrv.ParseDSN(strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	if user != "" {
		cfg.User = user
	}
	if pass != "" {
		cfg.Passwd = pass
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg, nil
}

func maskedDSN(cfg *mysqldrv.Config) string {
	c := cfg.Clone()
	if c.Passwd != "" {
		c.Passwd = "****"
	}
	return c.FormatDSN()
}

// gormLogger SQL 日志走 zap；慢查询和错误按 level 输出
func gormLogger(l *zap.Logger, level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(zap.NewStdLog(l.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
