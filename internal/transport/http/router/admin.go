package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devconnector/internal/core/config"
	"devconnector/internal/domain"
	"devconnector/internal/transport/http/ez"
	mdw "devconnector/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, lim config.Limits, reg *Registry, resolver mdw.PrincipalResolver) *gin.Engine {
	r := base(l, lim)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(resolver, domain.RoleAdmin))
	reg.MountAllAdmin(ez.New(admin, nil))
	return r
}
