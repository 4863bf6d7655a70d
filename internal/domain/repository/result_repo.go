package repository

import (
	"context"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами.
// Параметр ownerID ограничивает выборку конкретным владельцем;
// nil означает отсутствие ограничения.
type ResultRepository interface {
	Create(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, id uint) (*entity.Result, error)
	Update(ctx context.Context, result *entity.Result) error
	Delete(ctx context.Context, result *entity.Result) error

	// Find возвращает результаты в порядке возрастания orderBy
	// (имя столбца из допустимого списка сервиса)
	Find(ctx context.Context, ownerID *uint, orderBy string) ([]entity.Result, error)

	// FindTop возвращает до limit результатов, отсортированных
	// по значению по убыванию, при равенстве — по времени по убыванию
	FindTop(ctx context.Context, ownerID *uint, limit int) ([]entity.Result, error)

	// Stats считает count/min/max/avg по значению в рамках выборки
	Stats(ctx context.Context, ownerID *uint) (*entity.ResultStats, error)
}
