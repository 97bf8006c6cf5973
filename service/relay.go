package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Nizam1989/Nizam-CP-sub001/config"
	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// UpdateRelay publishes appended update-feed records on a redis channel so
// push consumers (terminal gateways) don't have to poll. The feed table stays
// the single source of truth; the relay is a fan-out subscriber of it, and a
// missed publish only means a consumer falls back to polling.
type UpdateRelay struct {
	rdb     *goredis.Client
	channel string
}

func NewUpdateRelay(cfg *config.RedisConfig) (*UpdateRelay, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &UpdateRelay{
		rdb:     rdb,
		channel: cfg.Channel,
	}, nil
}

// Notify publishes one feed record. Implements workflow.Notifier.
func (r *UpdateRelay) Notify(ctx context.Context, rec model.UpdateRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.channel, raw).Err()
}

// Close releases the redis connection
func (r *UpdateRelay) Close() error {
	return r.rdb.Close()
}
