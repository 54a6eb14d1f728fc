package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coreshop-storefront/internal/config"
	"coreshop-storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var ErrExpired = errors.New("session token already expired")

const keyPrefix = "session:"

func key(id string) string {
	return keyPrefix + id
}

// Connect opens the Redis client and checks it answers.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Store keeps sessions in Redis for as long as their API token is valid.
type Store struct {
	client      *redis.Client
	fallbackTTL time.Duration
	now         func() time.Time
}

func NewStore(client *redis.Client, fallbackTTL time.Duration) *Store {
	return &Store{client: client, fallbackTTL: fallbackTTL, now: time.Now}
}

// Expiry returns when the session for token should end: the token's exp
// claim when it has one, otherwise now plus the fallback TTL. The token is
// not verified; the API remains the authority on its validity.
func (s *Store) Expiry(token string) time.Time {
	if exp, ok := TokenExpiry(token); ok {
		return exp
	}
	return s.now().Add(s.fallbackTTL)
}

func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	ttl := s.fallbackTTL
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return ErrExpired
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, key(sess.ID), raw, ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}

// Ping reports whether Redis answers; used by the health check.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
