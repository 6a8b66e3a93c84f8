package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"devconnector/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return wrapWrite("create profile", r.db.WithContext(ctx).Create(toProfileModel(p)).Error)
}

// Save 整行覆盖（含内嵌 JSON 列）
func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	return wrapWrite("save profile", r.db.WithContext(ctx).Save(toProfileModel(p)).Error)
}

func (r *ProfileRepo) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *ProfileRepo) FindByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return r.first(ctx, "handle = ?", handle)
}

func (r *ProfileRepo) first(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var m ProfileModel
	err := r.db.WithContext(ctx).First(&m, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	var ms []ProfileModel
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]domain.Profile, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].toDomain())
	}
	return out, nil
}

func (r *ProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&ProfileModel{}).Error; err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
