package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"devconnector/internal/core/auth"
	"devconnector/internal/domain"
	"devconnector/internal/validation"
	"devconnector/pkg/utils"
)

var (
	// ErrUserNotFound 登录邮箱不存在；对外与 ErrPasswordMismatch 同一条消息
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch 密码不匹配
	ErrPasswordMismatch = errors.New("password mismatch")
)

const msgBadCredentials = "Invalid email or password"

// TokenIssuer 由 auth.JWTer 实现
type TokenIssuer interface {
	Issue(id, name, avatar, role string) (string, error)
	Parse(token string) (*auth.Claims, error)
}

var _ TokenIssuer = (*auth.JWTer)(nil)

type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	jwt    TokenIssuer
	log    *zap.Logger
	m      *Metrics
	now    func() time.Time
}

func NewAuthService(users domain.UserRepository, hasher PasswordHasher, jwt TokenIssuer, log *zap.Logger, m *Metrics) *AuthService {
	return &AuthService{users: users, hasher: hasher, jwt: jwt, log: nopIfNil(log), m: m, now: time.Now}
}

// Register 返回的用户不带密码哈希
func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if errs := validation.Register(in); !errs.IsValid() {
		return nil, domain.Validation(errs)
	}
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email", "Email already exists")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Avatar:       utils.Gravatar(in.Email),
		Role:         domain.RoleUser,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("email", "Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.m.registered()
	s.log.Info("user registered", zap.String("user_id", u.ID))

	out := *u
	out.PasswordHash = ""
	return &out, nil
}

// Login 成功返回 bearer token（不含 "Bearer " 前缀）
func (s *AuthService) Login(ctx context.Context, in domain.LoginInput) (string, error) {
	if errs := validation.Login(in); !errs.IsValid() {
		return "", domain.Validation(errs)
	}
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("find user by email: %w", err)
	}
	if u == nil {
		s.m.login("not_found")
		return "", domain.Unauthorized(http.StatusBadRequest, "email", msgBadCredentials, ErrUserNotFound)
	}
	if !s.hasher.Compare(u.PasswordHash, in.Password) {
		s.m.login("mismatch")
		return "", domain.Unauthorized(http.StatusBadRequest, "email", msgBadCredentials, ErrPasswordMismatch)
	}

	tok, err := s.jwt.Issue(u.ID, u.Name, u.Avatar, u.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.m.login("ok")
	return tok, nil
}

// bearerToken scheme 不区分大小写（RFC 7235）；没有 scheme 时整串当作 token
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, rest, ok := strings.Cut(header, " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

// ResolvePrincipal 校验 bearer token 并加载当前用户；用户已被删除同样是 401
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (*domain.User, error) {
	token = bearerToken(token)
	if token == "" {
		return nil, domain.Unauthorized(http.StatusUnauthorized, "unauthorized", "Unauthorized", auth.ErrInvalidToken)
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, domain.Unauthorized(http.StatusUnauthorized, "unauthorized", "Unauthorized", err)
	}
	if !utils.ValidID(claims.ID) {
		return nil, domain.Unauthorized(http.StatusUnauthorized, "unauthorized", "Unauthorized", auth.ErrInvalidToken)
	}
	u, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("find principal: %w", err)
	}
	if u == nil {
		return nil, domain.Unauthorized(http.StatusUnauthorized, "unauthorized", "Unauthorized", ErrUserNotFound)
	}
	return u, nil
}
