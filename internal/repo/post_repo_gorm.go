package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"devconnector/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return wrapWrite("create post", r.db.WithContext(ctx).Create(toPostModel(p)).Error)
}

func (r *PostRepo) Save(ctx context.Context, p *domain.Post) error {
	return wrapWrite("save post", r.db.WithContext(ctx).Save(toPostModel(p)).Error)
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var m PostModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return m.toDomain(), nil
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	var ms []PostModel
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	out := make([]domain.Post, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].toDomain())
	}
	return out, nil
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PostModel{}).Error; err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
