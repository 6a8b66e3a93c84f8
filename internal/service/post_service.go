package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"devconnector/internal/domain"
	"devconnector/internal/validation"
	"devconnector/pkg/utils"
)

func errNoPost() error { return domain.NotFound("nopost", "Unable to find post") }

func errNotAuthorized() error { return domain.Forbidden("unauthorized", "User not authorized") }

type PostService struct {
	posts domain.PostRepository
	log   *zap.Logger
	m     *Metrics
	now   func() time.Time
}

func NewPostService(posts domain.PostRepository, log *zap.Logger, m *Metrics) *PostService {
	return &PostService{posts: posts, log: nopIfNil(log), m: m, now: time.Now}
}

// ListAll 按 date 倒序；没有帖子时返回空切片
func (s *PostService) ListAll(ctx context.Context) ([]domain.Post, error) {
	ps, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if ps == nil {
		ps = []domain.Post{}
	}
	return ps, nil
}

// load 校验 id 并读取帖子
func (s *PostService) load(ctx context.Context, id string) (*domain.Post, error) {
	if !utils.ValidID(id) {
		return nil, domain.Invalid("post_id", "Unable to find Post")
	}
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if p == nil {
		return nil, errNoPost()
	}
	return p, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.load(ctx, id)
}

// byline 请求体里的 name / avatar 优先，缺省用当前用户的
func byline(principal *domain.User, in domain.PostInput) (string, string) {
	name, avatar := in.Name, in.Avatar
	if name == "" {
		name = principal.Name
	}
	if avatar == "" {
		avatar = principal.Avatar
	}
	return name, avatar
}

func (s *PostService) Create(ctx context.Context, principal *domain.User, in domain.PostInput) (*domain.Post, error) {
	if errs := validation.Post(in); !errs.IsValid() {
		return nil, domain.Validation(errs)
	}
	name, avatar := byline(principal, in)
	p := &domain.Post{
		ID:        utils.NewID(),
		UserID:    principal.ID,
		Text:      in.Text,
		Name:      name,
		Avatar:    avatar,
		Likes:     []domain.Like{},
		Comments:  []domain.Comment{},
		CreatedAt: s.now().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.m.postCreated()
	return p, nil
}

// Delete 只有作者本人可以删除
func (s *PostService) Delete(ctx context.Context, principal *domain.User, id string) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != principal.ID {
		return errNotAuthorized()
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Remove 后台审核删除，不校验作者
func (s *PostService) Remove(ctx context.Context, id string) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.log.Info("post removed by moderator", zap.String("post_id", p.ID), zap.String("author", p.UserID))
	return nil
}

func (s *PostService) save(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return p, nil
}

func (s *PostService) Like(ctx context.Context, principal *domain.User, id string) (*domain.Post, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.LikedBy(principal.ID) {
		return nil, domain.Conflict("alreadyliked", "User already liked this post")
	}
	p.Likes = append([]domain.Like{{UserID: principal.ID}}, p.Likes...)
	return s.save(ctx, p)
}

func (s *PostService) Unlike(ctx context.Context, principal *domain.User, id string) (*domain.Post, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Unlike(principal.ID) {
		return nil, domain.Conflict("notliked", "You have not yet liked this post")
	}
	return s.save(ctx, p)
}

func (s *PostService) AddComment(ctx context.Context, principal *domain.User, id string, in domain.PostInput) (*domain.Post, error) {
	if errs := validation.Post(in); !errs.IsValid() {
		return nil, domain.Validation(errs)
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name, avatar := byline(principal, in)
	c := domain.Comment{
		ID:        utils.NewID(),
		UserID:    principal.ID,
		Text:      in.Text,
		Name:      name,
		Avatar:    avatar,
		CreatedAt: s.now().UTC(),
	}
	p.Comments = append([]domain.Comment{c}, p.Comments...)
	return s.save(ctx, p)
}

// RemoveComment 评论不存在时不报错；存在时只有评论作者或帖子作者可删
func (s *PostService) RemoveComment(ctx context.Context, principal *domain.User, id, commentID string) (*domain.Post, error) {
	if !utils.ValidID(id) {
		return nil, domain.Invalid("post_id", "Unable to find Post")
	}
	if !utils.ValidID(commentID) {
		return nil, domain.Invalid("comment_id", "Unable to find Comment")
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c := p.Comment(commentID)
	if c == nil {
		return p, nil
	}
	if c.UserID != principal.ID && p.UserID != principal.ID {
		return nil, errNotAuthorized()
	}
	p.RemoveComment(commentID)
	return s.save(ctx, p)
}
