package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const courseCodesKey = "campusrate:course_codes"

// Client wraps the optional redis connection used to accelerate the
// course-code autocomplete index. A nil *Client (or a nil inner client)
// is valid and makes every operation a no-op miss, so the service layer
// always falls through to the database.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Connect(redisURL string) (*Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Client{rdb: rdb, ttl: 10 * time.Minute}, nil
}

// GetCourseCodes returns the cached autocomplete index, or ok=false on any
// miss or error.
func (c *Client) GetCourseCodes(ctx context.Context) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	codes, err := c.rdb.LRange(ctx, courseCodesKey, 0, -1).Result()
	if err != nil || len(codes) == 0 {
		return nil, false
	}
	return codes, true
}

// SetCourseCodes rebuilds the cached index. The delete+push runs in a
// pipeline so readers never observe a half-built list.
func (c *Client) SetCourseCodes(ctx context.Context, codes []string) {
	if c == nil || c.rdb == nil || len(codes) == 0 {
		return
	}
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, courseCodesKey)
	vals := make([]interface{}, len(codes))
	for i, code := range codes {
		vals[i] = code
	}
	pipe.RPush(ctx, courseCodesKey, vals...)
	pipe.Expire(ctx, courseCodesKey, c.ttl)
	_, _ = pipe.Exec(ctx)
}

// InvalidateCourseCodes drops the index; the next read rebuilds it from
// review rows.
func (c *Client) InvalidateCourseCodes(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, courseCodesKey).Err()
}
