package repo

import (
	"context"
	"time"

	"devconnector/internal/core/cache"
	"devconnector/internal/domain"
)

// 只缓存公开读路径（列表、按 handle 查）；读-改-写路径（FindByID / FindByUserID）始终直连存储

const (
	keyPosts    = "posts:all"
	keyProfiles = "profiles:all"
)

func keyHandle(h string) string { return "profile:handle:" + h }

type CachedPostRepo struct {
	domain.PostRepository
	c   *cache.Cache
	ttl time.Duration
}

func NewCachedPostRepo(inner domain.PostRepository, c *cache.Cache, ttl time.Duration) *CachedPostRepo {
	return &CachedPostRepo{PostRepository: inner, c: c, ttl: ttl}
}

func (r *CachedPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	out, err := cache.GetOrLoadJSON(r.c, ctx, keyPosts, r.ttl, func(ctx context.Context) (*[]domain.Post, error) {
		posts, err := r.PostRepository.List(ctx)
		if err != nil {
			return nil, err
		}
		return &posts, nil
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (r *CachedPostRepo) Create(ctx context.Context, p *domain.Post) error {
	if err := r.PostRepository.Create(ctx, p); err != nil {
		return err
	}
	_ = r.c.Invalidate(ctx, keyPosts)
	return nil
}

func (r *CachedPostRepo) Save(ctx context.Context, p *domain.Post) error {
	if err := r.PostRepository.Save(ctx, p); err != nil {
		return err
	}
	_ = r.c.Invalidate(ctx, keyPosts)
	return nil
}

func (r *CachedPostRepo) Delete(ctx context.Context, id string) error {
	if err := r.PostRepository.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.c.Invalidate(ctx, keyPosts)
	return nil
}

type CachedProfileRepo struct {
	domain.ProfileRepository
	c   *cache.Cache
	ttl time.Duration
}

func NewCachedProfileRepo(inner domain.ProfileRepository, c *cache.Cache, ttl time.Duration) *CachedProfileRepo {
	return &CachedProfileRepo{ProfileRepository: inner, c: c, ttl: ttl}
}

func (r *CachedProfileRepo) FindByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return cache.GetOrLoadJSON(r.c, ctx, keyHandle(handle), r.ttl, func(ctx context.Context) (*domain.Profile, error) {
		return r.ProfileRepository.FindByHandle(ctx, handle)
	})
}

func (r *CachedProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	out, err := cache.GetOrLoadJSON(r.c, ctx, keyProfiles, r.ttl, func(ctx context.Context) (*[]domain.Profile, error) {
		ps, err := r.ProfileRepository.List(ctx)
		if err != nil {
			return nil, err
		}
		return &ps, nil
	})
	if err != nil || out == nil {
		return nil, err
	}
	return *out, nil
}

func (r *CachedProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if err := r.ProfileRepository.Create(ctx, p); err != nil {
		return err
	}
	_ = r.c.Invalidate(ctx, keyProfiles, keyHandle(p.Handle))
	return nil
}

// Save handle 可能变更，旧 handle 的缓存也要删
func (r *CachedProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	keys := []string{keyProfiles, keyHandle(p.Handle)}
	if old, err := r.ProfileRepository.FindByUserID(ctx, p.UserID); err == nil && old != nil {
		keys = append(keys, keyHandle(old.Handle))
	}
	if err := r.ProfileRepository.Save(ctx, p); err != nil {
		return err
	}
	_ = r.c.Invalidate(ctx, keys...)
	return nil
}

func (r *CachedProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	keys := []string{keyProfiles}
	if old, err := r.ProfileRepository.FindByUserID(ctx, userID); err == nil && old != nil {
		keys = append(keys, keyHandle(old.Handle))
	}
	if err := r.ProfileRepository.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	_ = r.c.Invalidate(ctx, keys...)
	return nil
}
