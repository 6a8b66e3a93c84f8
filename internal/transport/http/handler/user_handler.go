package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/ez"
)

type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

func (h *UserHandler) Priority() int { return 10 }

type tokenOut struct {
	Token string `json:"token"`
}

type meOut struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MountAPI /api/users
func (h *UserHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[domain.RegisterInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users/register",
		Binder: ez.BindBody,
		Handler: func(c *gin.Context, in *domain.RegisterInput) (*domain.User, error) {
			return h.auth.Register(c.Request.Context(), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[domain.LoginInput, tokenOut]{
		Method: http.MethodPost,
		Path:   "/users/login",
		Binder: ez.BindBody,
		Handler: func(c *gin.Context, in *domain.LoginInput) (tokenOut, error) {
			tok, err := h.auth.Login(c.Request.Context(), *in)
			return tokenOut{Token: tok}, err
		},
	})

	ez.RegisterAction(e, ez.Action[empty, meOut]{
		Method: http.MethodGet,
		Path:   "/users/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (meOut, error) {
			u := principal(c)
			return meOut{ID: u.ID, Name: u.Name, Email: u.Email}, nil
		},
	})
}
