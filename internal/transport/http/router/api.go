package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"devconnector/internal/core/config"
	"devconnector/internal/core/server"
	"devconnector/internal/transport/http/ez"
	mdw "devconnector/internal/transport/http/middleware"
)

// base 两个引擎共用的中间件栈与运维路由；限流类配置为 0 时不启用
func base(l *zap.Logger, lim config.Limits) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(mdw.RequestID(), mdw.Metrics(), mdw.AccessLog(l))
	if lim.RPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst))
	}
	if lim.PerIPRPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst))
	}
	if lim.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.TimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(lim.TimeoutSec) * time.Second))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewAPIEngine /api 下挂所有 API 模块；需要登录的动作各自挂 auth
func NewAPIEngine(l *zap.Logger, lim config.Limits, reg *Registry, resolver mdw.PrincipalResolver) *gin.Engine {
	r := base(l, lim)
	api := r.Group("/api")
	reg.MountAllAPI(ez.New(api, mdw.AuthJWT(resolver)))
	return r
}
