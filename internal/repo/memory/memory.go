// Package memory 进程内文档存储：读写都做深拷贝，行为与真实存储一致（整文档覆盖，last write wins）。
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"devconnector/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	profiles map[string]domain.Profile // key: profile id
	posts    map[string]domain.Post
}

func New() *Store {
	return &Store{
		users:    map[string]domain.User{},
		profiles: map[string]domain.Profile{},
		posts:    map[string]domain.Post{},
	}
}

func (s *Store) Users() *UserRepo       { return &UserRepo{s} }
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s} }
func (s *Store) Posts() *PostRepo       { return &PostRepo{s} }

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q = strings.TrimSpace(q)
	all := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if q == "" || strings.Contains(u.Email, q) || strings.Contains(u.Name, q) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.User{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

type ProfileRepo struct{ s *Store }

func cloneProfile(p domain.Profile) domain.Profile {
	p.User = nil
	p.Skills = slices.Clone(p.Skills)
	p.Experience = slices.Clone(p.Experience)
	p.Education = slices.Clone(p.Education)
	return p
}

func (r *ProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.profiles {
		if existing.UserID == p.UserID {
			return domain.ErrDuplicate
		}
	}
	r.s.profiles[p.ID] = cloneProfile(*p)
	return nil
}

func (r *ProfileRepo) Save(_ context.Context, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.profiles[p.ID] = cloneProfile(*p)
	return nil
}

func (r *ProfileRepo) find(match func(domain.Profile) bool) *domain.Profile {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.profiles {
		if match(p) {
			out := cloneProfile(p)
			return &out
		}
	}
	return nil
}

func (r *ProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	return r.find(func(p domain.Profile) bool { return p.UserID == userID }), nil
}

func (r *ProfileRepo) FindByHandle(_ context.Context, handle string) (*domain.Profile, error) {
	return r.find(func(p domain.Profile) bool { return p.Handle == handle }), nil
}

func (r *ProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.profiles {
		if p.UserID == userID {
			delete(r.s.profiles, id)
		}
	}
	return nil
}

type PostRepo struct{ s *Store }

func clonePost(p domain.Post) domain.Post {
	p.Likes = slices.Clone(p.Likes)
	p.Comments = slices.Clone(p.Comments)
	return p
}

func (r *PostRepo) Create(_ context.Context, p *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.posts[p.ID] = clonePost(*p)
	return nil
}

func (r *PostRepo) Save(_ context.Context, p *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[p.ID] = clonePost(*p)
	return nil
}

func (r *PostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	out := clonePost(p)
	return &out, nil
}

func (r *PostRepo) List(_ context.Context) ([]domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PostRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	return nil
}

var (
	_ domain.UserRepository    = (*UserRepo)(nil)
	_ domain.ProfileRepository = (*ProfileRepo)(nil)
	_ domain.PostRepository    = (*PostRepo)(nil)
)
