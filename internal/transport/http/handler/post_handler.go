package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/ez"
	resp "devconnector/internal/transport/http/response"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Priority() int { return 30 }

// MountAPI /api/posts
func (h *PostHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[empty, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *empty) ([]domain.Post, error) {
			return h.posts.ListAll(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Post]{
		Method: http.MethodGet,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *empty) (*domain.Post, error) {
			return h.posts.GetByID(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.PostInput, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts",
		Binder: ez.BindBody,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.PostInput) (*domain.Post, error) {
			return h.posts.Create(c.Request.Context(), principal(c), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[empty, resp.Success]{
		Method: http.MethodDelete,
		Path:   "/posts/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (resp.Success, error) {
			if err := h.posts.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
				return resp.Success{}, err
			}
			return resp.Success{Success: true}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts/like/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (*domain.Post, error) {
			return h.posts.Like(c.Request.Context(), principal(c), c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts/unlike/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (*domain.Post, error) {
			return h.posts.Unlike(c.Request.Context(), principal(c), c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[domain.PostInput, *domain.Post]{
		Method: http.MethodPost,
		Path:   "/posts/comment/:id",
		Binder: ez.BindBody,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.PostInput) (*domain.Post, error) {
			return h.posts.AddComment(c.Request.Context(), principal(c), c.Param("id"), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[empty, *domain.Post]{
		Method: http.MethodDelete,
		Path:   "/posts/comment/:id/:comment_id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *empty) (*domain.Post, error) {
			return h.posts.RemoveComment(c.Request.Context(), principal(c), c.Param("id"), c.Param("comment_id"))
		},
	})
}
