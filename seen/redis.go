package seen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store shared between processes. Entries live in one sorted set
// scored by their last-seen unix time.
type Redis struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
	now    Clock
}

var _ Store = (*Redis)(nil)

// NewRedis creates a store on the sorted set key. A nil clock uses time.Now.
func NewRedis(client redis.Cmdable, key string, ttl time.Duration, now Clock) *Redis {
	if now == nil {
		now = time.Now
	}
	if key == "" {
		key = "newscard:seen"
	}
	return &Redis{client: client, key: key, ttl: ttl, now: now}
}

func (r *Redis) Seen(ctx context.Context, id string) (bool, error) {
	if _, err := r.Prune(ctx); err != nil {
		return false, err
	}
	_, err := r.client.ZScore(ctx, r.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seen: 查询 %s 失败: %w", id, err)
	}
	return true, nil
}

func (r *Redis) Mark(ctx context.Context, id string) error {
	if _, err := r.Prune(ctx); err != nil {
		return err
	}
	z := redis.Z{Score: float64(r.now().Unix()), Member: id}
	if err := r.client.ZAdd(ctx, r.key, z).Err(); err != nil {
		return fmt.Errorf("seen: 记录 %s 失败: %w", id, err)
	}
	return nil
}

func (r *Redis) Prune(ctx context.Context) (int, error) {
	if r.ttl <= 0 {
		return 0, nil
	}
	cutoff := r.now().Add(-r.ttl).Unix()
	// "(" 表示开区间：只删除早于 cutoff 的条目，与 Memory 一致
	n, err := r.client.ZRemRangeByScore(ctx, r.key, "-inf", "("+strconv.FormatInt(cutoff, 10)).Result()
	if err != nil {
		return 0, fmt.Errorf("seen: 清理过期条目失败: %w", err)
	}
	return int(n), nil
}
