package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
	"github.com/OlgaArenas22/phpMiW/internal/domain/repository"
	"github.com/OlgaArenas22/phpMiW/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register создает нового пользователя с базовой ролью и выдает токен
func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{
		Email:    email,
		Password: string(hashed),
		Roles:    entity.Roles{entity.RoleUser},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("[AuthService] Ошибка при создании пользователя %s: %v", email, err)
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login проверяет учетные данные и выдает токен
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUnauthorized
		}
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout инвалидирует все выданные пользователю токены
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	return s.jwtService.InvalidateTokensForUser(ctx, userID)
}
