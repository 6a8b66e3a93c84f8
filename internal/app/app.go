// Package app 按配置组装存储、缓存、service 与路由模块，供 cmd/api 与 cmd/admin 共用。
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"devconnector/internal/core/auth"
	"devconnector/internal/core/cache"
	"devconnector/internal/core/config"
	"devconnector/internal/core/database"
	"devconnector/internal/domain"
	"devconnector/internal/repo"
	"devconnector/internal/repo/memory"
	"devconnector/internal/repo/mongorepo"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/handler"
	"devconnector/internal/transport/http/router"
	"devconnector/pkg/utils"
)

type stores struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	posts    domain.PostRepository
}

// App 组装好的依赖；Close 逆序释放
type App struct {
	Auth     *service.AuthService
	Registry *router.Registry

	closers []func(context.Context) error
}

func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i](ctx)
	}
}

func openStores(ctx context.Context, cfg *config.Config, l *zap.Logger, a *App) (stores, error) {
	switch cfg.DB.Driver {
	case "memory":
		st := memory.New()
		l.Warn("using in-memory store; data is lost on restart")
		return stores{st.Users(), st.Profiles(), st.Posts()}, nil

	case "mongo":
		db, closeFn, err := database.NewMongo(ctx, database.MongoOpts{
			URI:         cfg.DB.DSN,
			Database:    cfg.DB.Database,
			MaxPoolSize: uint64(max(cfg.DB.MaxOpenConns, 0)),
		})
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, closeFn)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			return stores{}, err
		}
		return stores{mongorepo.NewUserRepo(db), mongorepo.NewProfileRepo(db), mongorepo.NewPostRepo(db)}, nil

	default: // postgres / mysql
		db, err := database.OpenGorm(ctx, database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			Username:           cfg.DB.Username,
			Password:           cfg.DB.Password,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
			AutoMigrate:        cfg.DB.AutoMigrate,
			Models:             repo.Models(),
		}, l)
		if err != nil {
			return stores{}, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		}
		return stores{repo.NewUserRepo(db), repo.NewProfileRepo(db), repo.NewPostRepo(db)}, nil
	}
}

// withCache redis 可用时给公开读路径加缓存；连不上只告警，不影响启动
func withCache(ctx context.Context, cfg *config.Config, l *zap.Logger, st stores, a *App) stores {
	if cfg.Redis.Addr == "" {
		return st
	}
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Ping(ctx); err != nil {
		l.Warn("redis unavailable, cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = c.Close()
		return st
	}
	a.closers = append(a.closers, func(context.Context) error { return c.Close() })
	ttl := time.Duration(cfg.Redis.TTLSec) * time.Second
	st.posts = repo.NewCachedPostRepo(st.posts, c, ttl)
	st.profiles = repo.NewCachedProfileRepo(st.profiles, c, ttl)
	l.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", ttl))
	return st
}

// Build reg 为 nil 时不注册业务计数（同一进程内只能注册一次）
func Build(ctx context.Context, cfg *config.Config, l *zap.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{}
	st, err := openStores(ctx, cfg, l, a)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("open store %s: %w", cfg.DB.Driver, err)
	}
	l.Info("store ready", zap.String("driver", cfg.DB.Driver))
	st = withCache(ctx, cfg, l, st, a)

	var m *service.Metrics
	if reg != nil {
		m = service.NewMetrics(reg)
	}

	ttl := auth.DefaultTTL
	if cfg.JWT.AccessTokenTTLMin > 0 {
		ttl = time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute
	}
	jwter := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, TTL: ttl}

	authSvc := service.NewAuthService(st.users, utils.BcryptHasher{}, jwter, l.Named("auth"), m)
	profiles := service.NewProfileService(st.profiles, st.users, l.Named("profile"))
	posts := service.NewPostService(st.posts, l.Named("post"), m)
	users := service.NewUserService(st.users, st.profiles, l.Named("user"))

	a.Auth = authSvc
	a.Registry = (&router.Registry{}).Register(
		handler.NewUserHandler(authSvc),
		handler.NewProfileHandler(profiles),
		handler.NewPostHandler(posts),
		handler.NewAdminHandler(users, posts),
	)
	return a, nil
}
