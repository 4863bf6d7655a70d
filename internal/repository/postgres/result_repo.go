package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Create сохраняет новый результат
func (r *ResultRepo) Create(ctx context.Context, result *entity.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// GetByID возвращает результат по идентификатору
func (r *ResultRepo) GetByID(ctx context.Context, id uint) (*entity.Result, error) {
	var result entity.Result
	if err := r.db.WithContext(ctx).First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Update сохраняет измененные поля результата
func (r *ResultRepo) Update(ctx context.Context, result *entity.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

// Delete физически удаляет результат
func (r *ResultRepo) Delete(ctx context.Context, result *entity.Result) error {
	return r.db.WithContext(ctx).Delete(result).Error
}

// Find возвращает результаты, опционально ограниченные владельцем,
// в порядке возрастания orderBy (имя столбца проверяет сервис)
func (r *ResultRepo) Find(ctx context.Context, ownerID *uint, orderBy string) ([]entity.Result, error) {
	var results []entity.Result

	query := r.db.WithContext(ctx).Order(orderBy + " ASC")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	err := query.Find(&results).Error
	return results, err
}

// FindTop возвращает до limit результатов: по значению по убыванию,
// при равенстве — более свежие первыми
func (r *ResultRepo) FindTop(ctx context.Context, ownerID *uint, limit int) ([]entity.Result, error) {
	var results []entity.Result

	query := r.db.WithContext(ctx).
		Order("value DESC").
		Order("recorded_at DESC").
		Limit(limit)
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	err := query.Find(&results).Error
	return results, err
}

// Stats считает count/min/max/avg по значению в рамках выборки.
// Min, max и avg остаются NULL, когда строк нет.
func (r *ResultRepo) Stats(ctx context.Context, ownerID *uint) (*entity.ResultStats, error) {
	var stats entity.ResultStats

	query := r.db.WithContext(ctx).
		Model(&entity.Result{}).
		Select("COUNT(id) AS count, MIN(value) AS min, MAX(value) AS max, AVG(value) AS avg")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
