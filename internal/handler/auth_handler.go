package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
	"github.com/OlgaArenas22/phpMiW/internal/middleware"
	"github.com/OlgaArenas22/phpMiW/internal/service"
	"github.com/OlgaArenas22/phpMiW/pkg/apiutil"
)

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse содержит данные пользователя и выданный токен
type AuthResponse struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
}

// Register обрабатывает запрос на регистрацию
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.ErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// Login обрабатывает запрос на вход
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiutil.ErrorMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// Logout инвалидирует все выданные вызывающему токены
func (h *AuthHandler) Logout(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	if caller == nil {
		apiutil.ErrorMessage(c, http.StatusUnauthorized, "UNAUTHORIZED: Invalid credentials.")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), caller.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me возвращает данные аутентифицированного вызывающего
func (h *AuthHandler) Me(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	if caller == nil {
		apiutil.ErrorMessage(c, http.StatusUnauthorized, "UNAUTHORIZED: Invalid credentials.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    caller.ID,
		"email": caller.Email,
		"roles": caller.Roles,
	})
}
