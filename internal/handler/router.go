package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/OlgaArenas22/phpMiW/internal/middleware"
	"github.com/OlgaArenas22/phpMiW/pkg/apiutil"
)

// Handlers агрегирует обработчики, необходимые для сборки роутера
type Handlers struct {
	Auth    *AuthHandler
	Query   *ResultQueryHandler
	Command *ResultCommandHandler
	AuthMW  *middleware.AuthMiddleware
}

// Суффиксы форматов, под которыми регистрируются маршруты коллекции.
// Пустой суффикс оставляет согласование формата заголовку Accept.
var formatSuffixes = []struct {
	suffix string
	format apiutil.Format
}{
	{"", ""},
	{".json", apiutil.FormatJSON},
	{".xml", apiutil.FormatXML},
}

// SetupRouter собирает gin-роутер со всеми маршрутами API.
// Используется и в main, и в тестах обработчиков.
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.Default()

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-Match", "If-None-Match"},
		ExposeHeaders:    []string{"Content-Length", "ETag", "Location", "Allow"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		// Аутентификация
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)

			authed := auth.Group("")
			authed.Use(h.AuthMW.RequireAuth())
			{
				authed.POST("/logout", h.Auth.Logout)
			}
		}

		// Пользователи
		users := api.Group("/users")
		users.Use(h.AuthMW.RequireAuth())
		{
			users.GET("/me", h.Auth.Me)
		}

		// OPTIONS доступны без аутентификации
		for _, sfx := range formatSuffixes {
			api.OPTIONS("/results"+sfx.suffix, h.Query.OptionsCollection)
		}
		api.OPTIONS("/results/:key", h.Query.OptionsItem)

		// Защищенные маршруты результатов
		results := api.Group("")
		results.Use(h.AuthMW.RequireAuth())
		{
			for _, sfx := range formatSuffixes {
				path := "/results" + sfx.suffix
				format := sfx.format
				register := func(method, p string, fn gin.HandlerFunc) {
					if format != "" {
						fn = withFormat(format, fn)
					}
					results.Handle(method, p, fn)
				}

				register(http.MethodPost, path, h.Command.Post)
				register(http.MethodGet, path, h.Query.CGet)
				register(http.MethodHead, path, h.Query.CGet)

				// Сортировка задается сегментом после расширения:
				// /results.json/{id|value|time}
				if sfx.suffix != "" {
					register(http.MethodGet, path+"/:sort", h.Query.CGet)
					register(http.MethodHead, path+"/:sort", h.Query.CGet)
				}
			}

			// Одиночный ресурс, топ и статистика разрешаются по сегменту key
			results.GET("/results/:key", h.Query.GetItem)
			results.HEAD("/results/:key", h.Query.GetItem)
			results.PUT("/results/:key", h.Command.Put)
			results.DELETE("/results/:key", h.Command.Delete)
		}
	}

	return router
}
