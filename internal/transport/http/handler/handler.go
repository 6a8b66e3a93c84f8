// Package handler HTTP 边界：每个 handler 只做参数提取，业务全部在 service。
package handler

import (
	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	mdw "devconnector/internal/transport/http/middleware"
)

type empty struct{}

// principal AuthJWT 之后一定存在
func principal(c *gin.Context) *domain.User { return mdw.Principal(c) }
