package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create сохраняет нового пользователя
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID возвращает пользователя по идентификатору
func (r *UserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete удаляет пользователя; результаты владельца удаляются каскадно
// за счет ограничения внешнего ключа
func (r *UserRepo) Delete(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Delete(user).Error
}
