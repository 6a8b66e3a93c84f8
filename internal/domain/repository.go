package domain

import "context"

// 读操作查不到时返回 (nil, nil)；唯一约束冲突返回 ErrDuplicate

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int, q string) ([]User, int64, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	// Save 整体覆盖写回，last write wins
	Save(ctx context.Context, p *Profile) error
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindByHandle(ctx context.Context, handle string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	Save(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	// List 按 date 倒序
	List(ctx context.Context) ([]Post, error)
	Delete(ctx context.Context, id string) error
}
