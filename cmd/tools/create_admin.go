package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/OlgaArenas22/phpMiW/internal/config"
	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
	"github.com/OlgaArenas22/phpMiW/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Новый пароль для администратора
	newPassword := "12345678" // Поменяй на свой
	adminEmail := "admin@example.com"

	// Проверяем, существует ли уже администратор
	var existingUser entity.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)

	if result.Error == nil {
		fmt.Println("Администратор уже существует, сбрасываем пароль...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Ошибка при хешировании пароля:", err)
		}

		existingUser.Password = string(hashedPassword)
		existingUser.Roles = entity.Roles{entity.RoleAdmin, entity.RoleUser}
		db.Save(&existingUser)

		fmt.Println("✅ Пароль успешно изменён! Новый пароль:", newPassword)
		return
	}

	// Создаём нового администратора, если его нет
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)

	admin := &entity.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Roles:    entity.Roles{entity.RoleAdmin, entity.RoleUser},
	}

	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("✅ Администратор успешно создан:")
	fmt.Printf("ID: %d, Email: %s\n", admin.ID, admin.Email)
	fmt.Println("Пароль:", newPassword)
}
