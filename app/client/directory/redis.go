package directory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"festbot/app/config"
	"festbot/app/util/textnorm"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const keyPrefix = "guest:"

var _ do.Shutdownable = (*Client)(nil)

// Client is the Redis-backed guest directory, an eventually consistent
// mapping keyed by normalized guest name.
type Client struct {
	rdb *redis.Client
}

func New(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, oops.Wrapf(err, "failed to connect to redis at %s", cfg.Redis.Addr)
	}

	slog.Info("Connected to redis", "addr", cfg.Redis.Addr)

	return &Client{rdb: rdb}, nil
}

// Lookup returns the profile stored under the normalized name, or
// (nil, nil) when the guest is unknown.
func (c *Client) Lookup(ctx context.Context, name string) (*Profile, error) {
	data, err := c.rdb.Get(ctx, key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Wrapf(err, "failed to get guest %q", name)
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, oops.Wrapf(err, "failed to decode guest %q", name)
	}

	return &profile, nil
}

// ListAll scans every guest key. The directory is small (one party), so
// a full scan per aggregate read is fine.
func (c *Client) ListAll(ctx context.Context) ([]Profile, error) {
	profiles := make([]Profile, 0)

	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := c.rdb.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, oops.Wrapf(err, "failed to get key %q", iter.Val())
		}

		var profile Profile
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, oops.Wrapf(err, "failed to decode key %q", iter.Val())
		}

		profiles = append(profiles, profile)
	}

	if err := iter.Err(); err != nil {
		return nil, oops.Wrapf(err, "failed to scan guests")
	}

	return profiles, nil
}

// Update upserts a profile under its normalized name.
func (c *Client) Update(ctx context.Context, profile Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return oops.Wrapf(err, "failed to encode guest %q", profile.Name)
	}

	if err := c.rdb.Set(ctx, key(profile.Name), data, 0).Err(); err != nil {
		return oops.Wrapf(err, "failed to store guest %q", profile.Name)
	}

	return nil
}

func (c *Client) Shutdown() error {
	return c.rdb.Close()
}

func key(name string) string {
	return keyPrefix + textnorm.Normalize(name)
}
