package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"devconnector/internal/domain"
	"devconnector/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService 后台用户管理
type UserService struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	log      *zap.Logger
}

func NewUserService(users domain.UserRepository, profiles domain.ProfileRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, profiles: profiles, log: nopIfNil(log)}
}

type UserPage struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

// List q 按 name / email 模糊匹配；limit 越界时回落到默认值
func (s *UserService) List(ctx context.Context, offset, limit int, q string) (*UserPage, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.users.List(ctx, offset, limit, strings.TrimSpace(q))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if items == nil {
		items = []domain.User{}
	}
	for i := range items {
		items[i].PasswordHash = ""
	}
	return &UserPage{Total: total, Items: items}, nil
}

// Delete 级联删除资料与用户
func (s *UserService) Delete(ctx context.Context, id string) error {
	if !utils.ValidID(id) {
		return domain.Invalid("user_id", "Unable to find user")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return domain.NotFound("nouser", "User not found")
	}
	return deleteAccount(ctx, s.profiles, s.users, s.log, id)
}
