package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// versionTTL 版本键远长于数据 TTL，过期只会让回填更保守
const versionTTL = 24 * time.Hour

var errStale = errors.New("cache: key invalidated during load")

type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "devconnector:",
	}
}

func (c *Cache) key(k string) string { return c.Prefix + k }

// 每个数据键一个版本号，Invalidate 时自增
func versionKey(full string) string { return "ver:" + full }

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	key = c.key(key)
	// 先读缓存；redis 不可用时直接回源
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		ver, verErr := c.version(ctx, key)
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		// 读不到版本号时不回填
		if verErr == nil {
			_ = c.fill(ctx, key, ver, b, ttl)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) version(ctx context.Context, key string) (int64, error) {
	n, err := c.RDB.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// fill 仅当回源期间版本号未变时写入；WATCH 保证跨进程的 Invalidate 也能打断
func (c *Cache) fill(ctx context.Context, key string, ver int64, b []byte, ttl time.Duration) error {
	vk := versionKey(key)
	return c.RDB.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != ver {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, vk)
}

// Invalidate 写路径调用：摘掉进行中的回源，版本号自增后删键。
// 失败只影响到 TTL 过期前的读
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
		c.sf.Forget(full[i])
	}
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range full {
			p.Incr(ctx, versionKey(k))
			p.Expire(ctx, versionKey(k), versionTTL)
		}
		p.Del(ctx, full...)
		return nil
	})
	return err
}
