// Package mongorepo 基于 mongo-driver 的文档存储实现；内嵌序列原样存为子文档数组。
package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnector/internal/domain"
)

const (
	colUsers    = "users"
	colProfiles = "profiles"
	colPosts    = "posts"
)

// EnsureIndexes email / profile.user 唯一；handle 只建普通索引（唯一性由业务层检查）
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colProfiles: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "handle", Value: 1}}},
		},
		colPosts: {
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}
	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", col, err)
		}
	}
	return nil
}

func wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// findOne 查不到返回 (nil, nil)
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	err := col.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}

type UserRepo struct{ col *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo { return &UserRepo{col: db.Collection(colUsers)} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.col.InsertOne(ctx, u)
	return wrapWrite("insert user", err)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"_id": id})
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](ctx, r.col, bson.M{"email": email})
}

func (r *UserRepo) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	filter := bson.M{}
	if q != "" {
		re := ciRegex(q)
		filter = bson.M{"$or": bson.A{bson.M{"email": re}, bson.M{"name": re}}}
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	users, err := findMany[domain.User](ctx, r.col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

type ProfileRepo struct{ col *mongo.Collection }

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{col: db.Collection(colProfiles)}
}

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.col.InsertOne(ctx, p)
	return wrapWrite("insert profile", err)
}

// Save 整文档 ReplaceOne
func (r *ProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	return wrapWrite("replace profile", err)
}

func (r *ProfileRepo) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return findOne[domain.Profile](ctx, r.col, bson.M{"user": userID})
}

func (r *ProfileRepo) FindByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return findOne[domain.Profile](ctx, r.col, bson.M{"handle": handle})
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	return findMany[domain.Profile](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *ProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

type PostRepo struct{ col *mongo.Collection }

func NewPostRepo(db *mongo.Database) *PostRepo { return &PostRepo{col: db.Collection(colPosts)} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	_, err := r.col.InsertOne(ctx, p)
	return wrapWrite("insert post", err)
}

func (r *PostRepo) Save(ctx context.Context, p *domain.Post) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	return wrapWrite("replace post", err)
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	return findOne[domain.Post](ctx, r.col, bson.M{"_id": id})
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	return findMany[domain.Post](ctx, r.col, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

var (
	_ domain.UserRepository    = (*UserRepo)(nil)
	_ domain.ProfileRepository = (*ProfileRepo)(nil)
	_ domain.PostRepository    = (*PostRepo)(nil)
)

func ciRegex(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}
