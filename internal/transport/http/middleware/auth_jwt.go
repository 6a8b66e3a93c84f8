package middleware

import (
	"context"
	"slices"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	resp "devconnector/internal/transport/http/response"
)

const (
	KeyPrincipal = "principal"
	KeyUserID    = "userId"
	KeyRole      = "role"
)

// PrincipalResolver 由 service.AuthService 实现
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*domain.User, error)
}

// AuthJWT 解析 bearer token 并加载当前用户；roles 非空时要求角色匹配
func AuthJWT(r PrincipalResolver, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := r.ResolvePrincipal(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			resp.AbortErr(c, err)
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, u.Role) {
			resp.AbortErr(c, domain.Forbidden("unauthorized", "User not authorized"))
			return
		}
		c.Set(KeyPrincipal, u)
		c.Set(KeyUserID, u.ID)
		c.Set(KeyRole, u.Role)
		c.Next()
	}
}

// Principal 取 AuthJWT 放入的当前用户
func Principal(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
