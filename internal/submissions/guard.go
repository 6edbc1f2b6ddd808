package submissions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DuplicateGuard rejects a payload that was already accepted within a window,
// which is what a double-clicked submit button produces.
type DuplicateGuard interface {
	// Claim returns false when the key is already held.
	Claim(ctx context.Context, key string) (bool, error)
	// Release drops a claim so a failed attempt can be retried.
	Release(ctx context.Context, key string) error
}

// RedisDuplicateGuard holds claims as expiring Redis keys.
type RedisDuplicateGuard struct {
	client *redis.Client
	window time.Duration
	prefix string
}

// NewRedisDuplicateGuard returns nil when client is nil so callers can pass the
// result straight through as an optional dependency.
func NewRedisDuplicateGuard(client *redis.Client, window time.Duration) *RedisDuplicateGuard {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = 30 * time.Second
	}
	return &RedisDuplicateGuard{client: client, window: window, prefix: "submission:dedupe:"}
}

func (g *RedisDuplicateGuard) Claim(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+key, time.Now().UTC().Format(time.RFC3339), g.window).Result()
}

func (g *RedisDuplicateGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.prefix+key).Err()
}

// Fingerprint hashes the normalized payload. Email and name compare case
// insensitively and phone numbers by digits only.
func Fingerprint(req *CreateSubmissionRequest) string {
	parts := []string{
		string(req.Form),
		strings.ToLower(req.Name),
		strings.ToLower(req.Email),
		digitsOnly(req.Phone),
		strings.ToLower(req.Service),
		strings.ToLower(req.EventType),
		req.EventDate,
		req.Message,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
