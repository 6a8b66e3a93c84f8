package repo

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"devconnector/internal/core/cache"
	"devconnector/internal/domain"
	"devconnector/internal/repo/memory"
)

// redis 不可达时装饰器退化为直连存储
func TestCachedReposPassThroughWhenRedisDown(t *testing.T) {
	t.Parallel()
	c := &cache.Cache{RDB: redis.NewClient(&redis.Options{
		Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond,
	})}
	defer c.Close()

	st := memory.New()
	posts := NewCachedPostRepo(st.Posts(), c, time.Minute)
	profiles := NewCachedProfileRepo(st.Profiles(), c, time.Minute)
	ctx := context.Background()

	if err := posts.Create(ctx, &domain.Post{ID: "p1", Text: "hello"}); err != nil {
		t.Fatal(err)
	}
	list, err := posts.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("posts = %v, err = %v", list, err)
	}

	if err := profiles.Create(ctx, &domain.Profile{ID: "f1", UserID: "u1", Handle: "ann"}); err != nil {
		t.Fatal(err)
	}
	if err := profiles.Save(ctx, &domain.Profile{ID: "f1", UserID: "u1", Handle: "ann2"}); err != nil {
		t.Fatal(err)
	}
	p, err := profiles.FindByHandle(ctx, "ann2")
	if err != nil || p == nil || p.UserID != "u1" {
		t.Fatalf("by handle = %+v, err = %v", p, err)
	}
	if old, _ := profiles.FindByHandle(ctx, "ann"); old != nil {
		t.Fatalf("old handle still resolves: %+v", old)
	}
	if err := profiles.DeleteByUserID(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	all, _ := profiles.List(ctx)
	if len(all) != 0 {
		t.Fatalf("profiles = %d", len(all))
	}
}
