package repository

import (
	"context"
	"time"
)

// TokenBlacklist хранит отметки об инвалидации токенов пользователей.
// Токен считается недействительным, если он выдан не позже момента инвалидации.
type TokenBlacklist interface {
	// Invalidate помечает все токены пользователя, выданные до at, недействительными
	Invalidate(ctx context.Context, userID uint, at time.Time) error

	// InvalidatedAt возвращает момент инвалидации или nil, если отметки нет
	InvalidatedAt(ctx context.Context, userID uint) (*time.Time, error)

	// Clear снимает отметку об инвалидации
	Clear(ctx context.Context, userID uint) error
}
