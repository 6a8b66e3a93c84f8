package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/ez"
	resp "devconnector/internal/transport/http/response"
)

// AdminHandler 管理端；分组已统一要求 admin 角色
type AdminHandler struct {
	users *service.UserService
	posts *service.PostService
}

func NewAdminHandler(users *service.UserService, posts *service.PostService) *AdminHandler {
	return &AdminHandler{users: users, posts: posts}
}

type listUsersQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

// MountAdmin /admin/v1
func (h *AdminHandler) MountAdmin(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[listUsersQ, *service.UserPage]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *listUsersQ) (*service.UserPage, error) {
			return h.users.List(c.Request.Context(), in.Offset, in.Limit, in.Q)
		},
	})

	ez.RegisterAction(e, ez.Action[empty, resp.Success]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *empty) (resp.Success, error) {
			if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
				return resp.Success{}, err
			}
			return resp.Success{Success: true}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[empty, resp.Success]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, _ *empty) (resp.Success, error) {
			if err := h.posts.Remove(c.Request.Context(), c.Param("id")); err != nil {
				return resp.Success{}, err
			}
			return resp.Success{Success: true}, nil
		},
	})
}
