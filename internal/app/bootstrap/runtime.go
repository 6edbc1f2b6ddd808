package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/thebar-catering/thebar-site/internal/config"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available; duplicate suppression disabled", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildDuplicateGuard returns the Redis duplicate guard, or nil without Redis.
func BuildDuplicateGuard(client *redis.Client, cfg *appconfig.Config) submissions.DuplicateGuard {
	if client == nil || cfg == nil {
		return nil
	}
	return submissions.NewRedisDuplicateGuard(client, cfg.DuplicateWindow)
}

// Location resolves the configured operator timezone, falling back to UTC.
func Location(cfg *appconfig.Config, logger *logging.Logger) *time.Location {
	if cfg == nil || strings.TrimSpace(cfg.Timezone) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		if logger != nil {
			logger.Warn("unknown timezone; using UTC", "timezone", cfg.Timezone, "error", err)
		}
		return time.UTC
	}
	return loc
}
