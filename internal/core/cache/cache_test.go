package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// offline 指向不可达地址：所有读都回源，写缓存失败被忽略
func offline() *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			MaxRetries:  -1,
			DialTimeout: 200 * time.Millisecond,
		}),
		Prefix: "test:",
	}
}

type item struct {
	Name string `json:"name"`
}

func TestGetOrLoadFallsBackWhenRedisDown(t *testing.T) {
	t.Parallel()
	c := offline()
	defer c.Close()
	ctx := context.Background()

	calls := 0
	got, err := GetOrLoadJSON(c, ctx, "k", time.Minute, func(context.Context) (*item, error) {
		calls++
		return &item{Name: "go"}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "go" || calls != 1 {
		t.Fatalf("got = %+v, calls = %d", got, calls)
	}
}

func TestGetOrLoadJSONNil(t *testing.T) {
	t.Parallel()
	c := offline()
	defer c.Close()

	got, err := GetOrLoadJSON(c, context.Background(), "missing", time.Minute, func(context.Context) (*item, error) {
		return nil, nil
	})
	if err != nil || got != nil {
		t.Fatalf("got = %+v, err = %v", got, err)
	}
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	t.Parallel()
	c := offline()
	defer c.Close()
	boom := errors.New("boom")

	_, err := GetOrLoadJSON(c, context.Background(), "err", time.Minute, func(context.Context) (*item, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestInvalidateNoKeys(t *testing.T) {
	t.Parallel()
	c := offline()
	defer c.Close()
	if err := c.Invalidate(context.Background()); err != nil {
		t.Fatalf("err = %v", err)
	}
}

// 回源进行中发生 Invalidate：之后的读不再搭旧的回源，而是重新加载
func TestInvalidateDetachesInFlightLoad(t *testing.T) {
	t.Parallel()
	c := offline()
	defer c.Close()
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan []byte, 1)
	go func() {
		b, _ := c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("old"), nil
		})
		done <- b
	}()
	<-started

	// redis 不可达，删键报错可以忽略
	_ = c.Invalidate(ctx, "k")

	b, err := c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("new"), nil
	})
	close(release)
	if err != nil || string(b) != "new" {
		t.Fatalf("after invalidate: %q, %v", b, err)
	}
	if old := <-done; string(old) != "old" {
		t.Fatalf("in-flight load = %q", old)
	}
}
