package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
	"github.com/OlgaArenas22/phpMiW/internal/domain/repository"
	"github.com/OlgaArenas22/phpMiW/pkg/etag"
)

// Пределы параметра limit для топ-выборки
const (
	TopLimitDefault = 10
	TopLimitMin     = 1
	TopLimitMax     = 100
)

// Допустимые значения сортировки коллекции и их столбцы в БД.
// Неизвестное значение молча заменяется сортировкой по id — это
// намеренно мягкое поведение, в отличие от строгой валидации
// limit и ownerId.
var sortColumns = map[string]string{
	"id":    "id",
	"value": "value",
	"time":  "recorded_at",
}

// Форматы меток времени, принимаемые на входе. Метки без часового
// пояса трактуются как UTC, чтобы отпечатки были стабильны.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResultPayload — разобранное тело запроса создания/обновления.
// Поля хранятся сырыми, чтобы различать отсутствующее поле,
// null, пустую строку и нечисловое значение.
type ResultPayload struct {
	Value      json.RawMessage `json:"value"`
	RecordedAt json.RawMessage `json:"recordedAt"`
}

// ResultService реализует команды и запросы над результатами
type ResultService struct {
	resultRepo repository.ResultRepository
}

// NewResultService создает новый сервис результатов
func NewResultService(resultRepo repository.ResultRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo}
}

// errValueEmpty — внутренний маркер «поле есть, но пустое/нулевое»;
// создание трактует его как 422, обновление — как 400
var errValueEmpty = errors.New("value is empty")

// parseValue разбирает сырое значение value: принимаются числовые
// литералы и числовые строки ("321"), дробные значения усекаются
func parseValue(raw json.RawMessage) (int64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, errValueEmpty
	}

	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, ErrInvalidValue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, errValueEmpty
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), nil
		}
		return 0, ErrInvalidValue
	}

	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f), nil
	}

	return 0, ErrInvalidValue
}

// parseRecordedAt разбирает сырое значение recordedAt.
// Пустая строка и null считаются некорректными — вызывающая
// сторона сама решает, что делать с отсутствующим полем.
func parseRecordedAt(raw json.RawMessage) (time.Time, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return time.Time{}, ErrInvalidTime
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, ErrInvalidTime
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTime
	}

	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidTime
}

// Create создает результат от имени вызывающего.
// Отсутствующее/пустое value — 422, нечисловое — 400,
// отсутствующее recordedAt — текущее время.
func (s *ResultService) Create(ctx context.Context, caller *Caller, payload ResultPayload) (*entity.Result, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	if payload.Value == nil {
		return nil, ErrMissingValue
	}
	value, err := parseValue(payload.Value)
	if err != nil {
		if errors.Is(err, errValueEmpty) {
			return nil, ErrMissingValue
		}
		return nil, err
	}

	recordedAt := time.Now().UTC()
	if payload.RecordedAt != nil && !isEmptyRaw(payload.RecordedAt) {
		recordedAt, err = parseRecordedAt(payload.RecordedAt)
		if err != nil {
			return nil, err
		}
	}

	result := &entity.Result{
		Value:      value,
		RecordedAt: recordedAt,
		UserID:     caller.ID,
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		log.Printf("[ResultService] Ошибка при создании результата: %v", err)
		return nil, err
	}

	return result, nil
}

// isEmptyRaw сообщает, является ли сырое поле null или пустой строкой
func isEmptyRaw(raw json.RawMessage) bool {
	text := strings.TrimSpace(string(raw))
	return text == "" || text == "null" || text == `""`
}

// Update применяет частичное обновление результата под защитой
// оптимистической блокировки: If-Match должен совпадать с отпечатком
// текущего представления ресурса.
func (s *ResultService) Update(ctx context.Context, caller *Caller, id uint, payload ResultPayload, ifMatch string) (*entity.Result, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	result, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CanAccess(caller, result); err != nil {
		return nil, err
	}

	current, err := etag.Fingerprint(result)
	if err != nil {
		return nil, err
	}
	if !etag.Match(ifMatch, current) {
		return nil, ErrPreconditionFailed
	}

	if payload.Value == nil && payload.RecordedAt == nil {
		return nil, ErrNothingToUpdate
	}

	if payload.Value != nil {
		value, err := parseValue(payload.Value)
		if err != nil {
			// при обновлении пустое значение — такая же ошибка формата
			return nil, ErrInvalidValue
		}
		result.Value = value
	}

	if payload.RecordedAt != nil {
		recordedAt, err := parseRecordedAt(payload.RecordedAt)
		if err != nil {
			return nil, err
		}
		result.RecordedAt = recordedAt
	}

	if err := s.resultRepo.Update(ctx, result); err != nil {
		log.Printf("[ResultService] Ошибка при обновлении результата #%d: %v", id, err)
		return nil, err
	}

	return result, nil
}

// Delete физически удаляет результат
func (s *ResultService) Delete(ctx context.Context, caller *Caller, id uint) error {
	if caller == nil {
		return ErrUnauthorized
	}

	result, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if err := CanAccess(caller, result); err != nil {
		return err
	}

	if err := s.resultRepo.Delete(ctx, result); err != nil {
		log.Printf("[ResultService] Ошибка при удалении результата #%d: %v", id, err)
		return err
	}

	return nil
}

// Get возвращает результат по id с проверкой владения
func (s *ResultService) Get(ctx context.Context, caller *Caller, id uint) (*entity.Result, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	result, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CanAccess(caller, result); err != nil {
		return nil, err
	}

	return result, nil
}

// List возвращает результаты в области видимости вызывающего,
// отсортированные по запрошенному полю. Пустая выборка — NotFound.
func (s *ResultService) List(ctx context.Context, caller *Caller, sort string) ([]entity.Result, error) {
	scope, err := ResolveOwnerScope(caller, nil)
	if err != nil {
		return nil, err
	}

	column, ok := sortColumns[sort]
	if !ok {
		column = "id"
	}

	results, err := s.resultRepo.Find(ctx, scope.OwnerID, column)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return results, nil
}

// Top возвращает до limit лучших результатов в области видимости:
// по значению по убыванию, при равенстве — более свежие первыми
func (s *ResultService) Top(ctx context.Context, caller *Caller, requestedOwner *uint, limit int) ([]entity.Result, error) {
	if limit < TopLimitMin || limit > TopLimitMax {
		return nil, ErrInvalidLimit
	}

	scope, err := ResolveOwnerScope(caller, requestedOwner)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.FindTop(ctx, scope.OwnerID, limit)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return results, nil
}

// Stats возвращает агрегированную статистику по области видимости.
// Пустая область (count == 0) — NotFound.
func (s *ResultService) Stats(ctx context.Context, caller *Caller, requestedOwner *uint) (*entity.ResultStats, error) {
	scope, err := ResolveOwnerScope(caller, requestedOwner)
	if err != nil {
		return nil, err
	}

	stats, err := s.resultRepo.Stats(ctx, scope.OwnerID)
	if err != nil {
		return nil, err
	}
	if stats.Count == 0 {
		return nil, ErrNotFound
	}

	return stats, nil
}

func (s *ResultService) getByID(ctx context.Context, id uint) (*entity.Result, error) {
	result, err := s.resultRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}
	return result, nil
}
