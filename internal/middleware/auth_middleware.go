package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OlgaArenas22/phpMiW/internal/domain/repository"
	"github.com/OlgaArenas22/phpMiW/internal/service"
	"github.com/OlgaArenas22/phpMiW/pkg/apiutil"
	"github.com/OlgaArenas22/phpMiW/pkg/auth"
)

// Ключ контекста, под которым хранится аутентифицированный вызывающий
const CallerContextKey = "caller"

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repository.UserRepository
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// RequireAuth проверяет, аутентифицирован ли пользователь.
// Токен без существующей в БД учетной записи также отклоняется:
// удаление пользователя отзывает его доступ немедленно.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apiutil.ErrorMessage(c, http.StatusUnauthorized, "UNAUTHORIZED: Invalid credentials.")
			c.Abort()
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			apiutil.ErrorMessage(c, http.StatusUnauthorized, "UNAUTHORIZED: Invalid credentials.")
			c.Abort()
			return
		}

		claims, err := m.jwtService.ParseToken(c.Request.Context(), parts[1])
		if err != nil {
			apiutil.ErrorMessage(c, http.StatusUnauthorized, "UNAUTHORIZED: Invalid credentials.")
			c.Abort()
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil {
			apiutil.ErrorMessage(c, http.StatusUnauthorized, "UNAUTHORIZED: Invalid credentials.")
			c.Abort()
			return
		}

		c.Set(CallerContextKey, &service.Caller{
			ID:    user.ID,
			Email: user.Email,
			Roles: user.Roles,
		})

		c.Next()
	}
}

// CallerFromContext извлекает вызывающего, установленного RequireAuth
func CallerFromContext(c *gin.Context) *service.Caller {
	v, exists := c.Get(CallerContextKey)
	if !exists {
		return nil
	}

	caller, ok := v.(*service.Caller)
	if !ok {
		return nil
	}
	return caller
}
