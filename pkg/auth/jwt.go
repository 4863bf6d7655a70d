package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
	"github.com/OlgaArenas22/phpMiW/internal/domain/repository"
)

// JWTCustomClaims содержит пользовательские поля токена
type JWTCustomClaims struct {
	UserID uint          `json:"user_id"`
	Email  string        `json:"email"`
	Roles  []entity.Role `json:"roles"`
	jwt.RegisteredClaims
}

// JWTService предоставляет методы для работы с JWT
type JWTService struct {
	secretKey     string
	expirationHrs int
	// Хранилище отметок об инвалидации; может быть nil (проверка пропускается)
	blacklist repository.TokenBlacklist
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secretKey string, expirationHrs int, blacklist repository.TokenBlacklist) *JWTService {
	return &JWTService{
		secretKey:     secretKey,
		expirationHrs: expirationHrs,
		blacklist:     blacklist,
	}
}

// GenerateToken создает новый JWT токен для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * time.Duration(s.expirationHrs))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для пользователя ID=%d: %v", user.ID, err)
		return "", err
	}

	return tokenString, nil
}

// ParseToken проверяет и расшифровывает JWT токен
func (s *JWTService) ParseToken(ctx context.Context, tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, errors.New("token is malformed")
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, errors.New("token is expired")
			case ve.Errors&jwt.ValidationErrorNotValidYet != 0:
				return nil, errors.New("token not valid yet")
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return nil, errors.New("signature is invalid")
			default:
				return nil, errors.New("token validation failed")
			}
		}
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Проверка отметки об инвалидации (logout, принудительный сброс)
	if s.blacklist != nil && claims.IssuedAt != nil {
		invalidatedAt, err := s.blacklist.InvalidatedAt(ctx, claims.UserID)
		if err != nil {
			log.Printf("[JWT] Ошибка при проверке инвалидации токена пользователя ID=%d: %v", claims.UserID, err)
		} else if invalidatedAt != nil && !claims.IssuedAt.Time.After(*invalidatedAt) {
			return nil, errors.New("token has been invalidated")
		}
	}

	return claims, nil
}

// InvalidateTokensForUser делает все ранее выданные токены пользователя
// недействительными
func (s *JWTService) InvalidateTokensForUser(ctx context.Context, userID uint) error {
	if s.blacklist == nil {
		return nil
	}

	if err := s.blacklist.Invalidate(ctx, userID, time.Now()); err != nil {
		log.Printf("[JWT] Ошибка при инвалидации токенов пользователя ID=%d: %v", userID, err)
		return err
	}

	log.Printf("[JWT] Токены инвалидированы для пользователя ID=%d", userID)
	return nil
}

// ResetInvalidationForUser снимает отметку об инвалидации,
// разрешая использование существующих токенов
func (s *JWTService) ResetInvalidationForUser(ctx context.Context, userID uint) error {
	if s.blacklist == nil {
		return nil
	}
	return s.blacklist.Clear(ctx, userID)
}
