package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/clinic-readiness-api/pkg/config"
)

const keyPrefix = "readiness"

// NewRedis returns a configured Redis client, failing fast when the server is unreachable.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return client, nil
}

// ChildReadinessKey is the cache key of a child's readiness summary.
func ChildReadinessKey(childID string) string {
	return fmt.Sprintf("%s:child:%s", keyPrefix, childID)
}

// DashboardKey is the cache key of a clinician's dashboard.
func DashboardKey(clinicianID string) string {
	return fmt.Sprintf("%s:dashboard:%s", keyPrefix, clinicianID)
}
