package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Срок хранения отметки об инвалидации: дольше максимального
// времени жизни токена, чтобы истекший токен не «ожил»
const invalidationTTL = 48 * time.Hour

// TokenBlacklistRepo реализует repository.TokenBlacklist поверх Redis
type TokenBlacklistRepo struct {
	client *redis.Client
}

// NewTokenBlacklistRepo создает новое Redis-хранилище отметок об инвалидации
func NewTokenBlacklistRepo(client *redis.Client) *TokenBlacklistRepo {
	return &TokenBlacklistRepo{client: client}
}

func blacklistKey(userID uint) string {
	return fmt.Sprintf("auth:invalidated:%d", userID)
}

// Invalidate помечает токены пользователя, выданные до at, недействительными
func (r *TokenBlacklistRepo) Invalidate(ctx context.Context, userID uint, at time.Time) error {
	return r.client.Set(ctx, blacklistKey(userID), at.Unix(), invalidationTTL).Err()
}

// InvalidatedAt возвращает момент инвалидации или nil, если отметки нет
func (r *TokenBlacklistRepo) InvalidatedAt(ctx context.Context, userID uint) (*time.Time, error) {
	raw, err := r.client.Get(ctx, blacklistKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed invalidation mark for user %d: %w", userID, err)
	}

	at := time.Unix(unix, 0)
	return &at, nil
}

// Clear снимает отметку об инвалидации
func (r *TokenBlacklistRepo) Clear(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, blacklistKey(userID)).Err()
}
