package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/ez"
	resp "devconnector/internal/transport/http/response"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Priority() int { return 20 }

// MountAPI /api/profile
func (h *ProfileHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[empty, *domain.Profile]{
		Method: http.MethodGet,
		Path:   "/profile",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (*domain.Profile, error) {
			return h.profiles.GetOwn(c.Request.Context(), principal(c))
		},
	})

	// 列表为空时返回 404，沿用旧客户端依赖的行为
	ez.RegisterAction(e, ez.Action[empty, []domain.Profile]{
		Method: http.MethodGet,
		Path:   "/profile/all",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *empty) ([]domain.Profile, error) {
			ps, err := h.profiles.ListAll(c.Request.Context())
			if err != nil {
				return nil, err
			}
			if len(ps) == 0 {
				return nil, domain.NotFound("noprofile", "There are no profiles")
			}
			return ps, nil
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Profile]{
		Method: http.MethodGet,
		Path:   "/profile/handle/:handle",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *empty) (*domain.Profile, error) {
			return h.profiles.GetByHandle(c.Request.Context(), c.Param("handle"))
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Profile]{
		Method: http.MethodGet,
		Path:   "/profile/user/:user_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *empty) (*domain.Profile, error) {
			return h.profiles.GetByUserID(c.Request.Context(), c.Param("user_id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.ProfileInput, *domain.Profile]{
		Method: http.MethodPost,
		Path:   "/profile",
		Binder: ez.BindBody,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.ProfileInput) (*domain.Profile, error) {
			return h.profiles.Upsert(c.Request.Context(), principal(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[empty, resp.Success]{
		Method: http.MethodDelete,
		Path:   "/profile",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (resp.Success, error) {
			if err := h.profiles.DeleteOwn(c.Request.Context(), principal(c)); err != nil {
				return resp.Success{}, err
			}
			return resp.Success{Success: true}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[domain.ExperienceInput, *domain.Profile]{
		Method: http.MethodPost,
		Path:   "/profile/experience",
		Binder: ez.BindBody,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.ExperienceInput) (*domain.Profile, error) {
			return h.profiles.AddExperience(c.Request.Context(), principal(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Profile]{
		Method: http.MethodDelete,
		Path:   "/profile/experience/:exp_id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (*domain.Profile, error) {
			return h.profiles.RemoveExperience(c.Request.Context(), principal(c), c.Param("exp_id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.EducationInput, *domain.Profile]{
		Method: http.MethodPost,
		Path:   "/profile/education",
		Binder: ez.BindBody,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.EducationInput) (*domain.Profile, error) {
			return h.profiles.AddEducation(c.Request.Context(), principal(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Profile]{
		Method: http.MethodDelete,
		Path:   "/profile/education/:edu_id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (*domain.Profile, error) {
			return h.profiles.RemoveEducation(c.Request.Context(), principal(c), c.Param("edu_id"))
		},
	})
}
