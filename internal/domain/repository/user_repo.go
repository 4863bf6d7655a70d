package repository

import (
	"context"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Delete удаляет пользователя; результаты владельца удаляются
	// каскадно на уровне хранилища
	Delete(ctx context.Context, user *entity.User) error
}
