package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OlgaArenas22/phpMiW/internal/config"
	"github.com/OlgaArenas22/phpMiW/internal/handler"
	"github.com/OlgaArenas22/phpMiW/internal/middleware"
	pgRepo "github.com/OlgaArenas22/phpMiW/internal/repository/postgres"
	redisRepo "github.com/OlgaArenas22/phpMiW/internal/repository/redis"
	"github.com/OlgaArenas22/phpMiW/internal/service"
	"github.com/OlgaArenas22/phpMiW/pkg/auth"
	"github.com/OlgaArenas22/phpMiW/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	blacklistRepo := redisRepo.NewTokenBlacklistRepo(redisClient)

	// Создаем JWT сервис с поддержкой инвалидации токенов через Redis
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, blacklistRepo)

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	resultService := service.NewResultService(resultRepo)

	// Инициализируем middleware и обработчики
	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo)

	router := handler.SetupRouter(handler.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Query:   handler.NewResultQueryHandler(resultService),
		Command: handler.NewResultCommandHandler(resultService),
		AuthMW:  authMiddleware,
	})

	// Настраиваем HTTP сервер
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ждем сигнал остановки и завершаем работу корректно
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
