package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pollwise/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates JWT tokens before they expire, e.g. on logout
type TokenBlacklist interface {
	// AddToBlacklist records a token's JTI with a ttl covering the
	// token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted reports whether a token's JTI has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist invalidates every token the user holds;
	// tokens issued before the recorded moment are treated as revoked
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserTokenInvalidated reports whether a token predates the
	// user's invalidation moment
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

const (
	jtiKeyPrefix  = "token:blacklist:jti:"
	userKeyPrefix = "token:blacklist:user:"
)

// RedisTokenBlacklist implements TokenBlacklist on Redis. Entries expire
// with the tokens they revoke, so the set stays bounded.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist connects to Redis and verifies the connection
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for token blacklist: %w", err)
	}

	return NewRedisTokenBlacklistWithClient(client), nil
}

// NewRedisTokenBlacklistWithClient wraps an existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// AddToBlacklist records a revoked JTI until the token would expire anyway
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, jtiKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether the JTI has been revoked
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, jtiKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// AddUserTokensToBlacklist stores the current unix time under the user's
// key; all tokens issued up to that moment become invalid
func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := b.client.Set(ctx, userKeyPrefix+userID, now, ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

// IsUserTokenInvalidated compares the token's issue time against the
// user's stored invalidation moment
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	stored, err := b.client.Get(ctx, userKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}

	invalidatedAt, err := strconv.ParseInt(stored, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}
	return tokenIssuedAt.Unix() <= invalidatedAt, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist backs single-instance deployments without Redis
// and the test suite. Revocations are lost on restart.
type InMemoryTokenBlacklist struct {
	mu            sync.Mutex
	revokedJTIs   map[string]time.Time // JTI -> expiration
	userRevokedAt map[string]time.Time // userID -> invalidation moment
}

// NewInMemoryTokenBlacklist creates an empty in-memory blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		revokedJTIs:   make(map[string]time.Time),
		userRevokedAt: make(map[string]time.Time),
	}
}

// AddToBlacklist records a revoked JTI with its expiration
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revokedJTIs[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted reports whether the JTI is revoked; expired entries are
// dropped on lookup
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, exists := b.revokedJTIs[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(b.revokedJTIs, jti)
		return false, nil
	}
	return true, nil
}

// AddUserTokensToBlacklist records now as the user's invalidation moment
func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userRevokedAt[userID] = time.Now()
	return nil
}

// IsUserTokenInvalidated compares the token's issue time against the
// user's invalidation moment
func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	revokedAt, exists := b.userRevokedAt[userID]
	if !exists {
		return false, nil
	}
	return !tokenIssuedAt.After(revokedAt), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
