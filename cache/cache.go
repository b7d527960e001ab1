// Package cache stores extraction results in redis, keyed by the fingerprint
// of the sentence and the extraction configuration.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/svo"
)

const (
	keyPrefix = "relex"

	// lockExpiration bounds the time a computation holds its key.
	lockExpiration = 10 * time.Second
)

type Client struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(addr string, db int, ttl time.Duration) *Client {
	options := redis.Options{
		Addr:       addr,
		MaxRetries: 6,
		DB:         db,
	}
	return NewFromClient(redis.NewClient(&options), ttl)
}

func NewFromClient(client redis.UniversalClient, ttl time.Duration) *Client {
	return &Client{client: client, ttl: ttl}
}

// Key returns the redis key of the sentence results under cfg.
func Key(s sent.Sentence, cfg svo.Config) string {
	return fmt.Sprintf("%s:%x:%t", keyPrefix, s.Hash(), cfg.AdjectiveAsObject)
}

// Get returns the cached result. The bool is false on a miss.
func (c *Client) Get(ctx context.Context, key string) (svo.Result, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return svo.Result{}, false, nil
	}
	if err != nil {
		return svo.Result{}, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var res svo.Result
	if err := json.Unmarshal(b, &res); err != nil {
		return svo.Result{}, false, fmt.Errorf("cache decode %s: %w", key, err)
	}

	return res, true, nil
}

func (c *Client) Set(ctx context.Context, key string, res svo.Result) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// GetOrCompute returns the cached result or runs compute and stores its
// result. Concurrent callers of the same key wait on a redis lock, so that
// compute runs once.
func (c *Client) GetOrCompute(ctx context.Context, key string, compute func() svo.Result) (svo.Result, error) {
	if res, ok, err := c.Get(ctx, key); err != nil || ok {
		return res, err
	}

	release, err := c.lock(ctx, key)
	if err != nil {
		return svo.Result{}, err
	}
	defer release()

	// filled while waiting for the lock
	if res, ok, err := c.Get(ctx, key); err != nil || ok {
		return res, err
	}

	res := compute()
	return res, c.Set(ctx, key, res)
}

func (c *Client) lock(ctx context.Context, key string) (func(), error) {
	locker := redislock.New(c.client)
	retry := redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50)
	lock, err := locker.Obtain(ctx, "lock:"+key, lockExpiration, &redislock.Options{RetryStrategy: retry})
	if err != nil {
		return nil, fmt.Errorf("cache lock %s: %w", key, err)
	}

	return func() {
		// an expired lock is released by redis
		_ = lock.Release(ctx)
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
