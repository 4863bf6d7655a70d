package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

// memResultRepo — минимальное хранилище в памяти для тестов сервиса

type memResultRepo struct {
	nextID uint
	items  map[uint]entity.Result
}

func newMemResultRepo() *memResultRepo {
	return &memResultRepo{items: make(map[uint]entity.Result)}
}

func (r *memResultRepo) Create(_ context.Context, result *entity.Result) error {
	r.nextID++
	result.ID = r.nextID
	r.items[result.ID] = *result
	return nil
}

func (r *memResultRepo) GetByID(_ context.Context, id uint) (*entity.Result, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memResultRepo) Update(_ context.Context, result *entity.Result) error {
	r.items[result.ID] = *result
	return nil
}

func (r *memResultRepo) Delete(_ context.Context, result *entity.Result) error {
	delete(r.items, result.ID)
	return nil
}

func (r *memResultRepo) Find(_ context.Context, ownerID *uint, _ string) ([]entity.Result, error) {
	out := []entity.Result{}
	for _, item := range r.items {
		if ownerID == nil || item.UserID == *ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memResultRepo) FindTop(_ context.Context, ownerID *uint, _ int) ([]entity.Result, error) {
	return r.Find(context.Background(), ownerID, "")
}

func (r *memResultRepo) Stats(_ context.Context, ownerID *uint) (*entity.ResultStats, error) {
	items, _ := r.Find(context.Background(), ownerID, "")
	return &entity.ResultStats{Count: int64(len(items))}, nil
}

func testCaller(id uint, roles ...entity.Role) *Caller {
	if len(roles) == 0 {
		roles = []entity.Role{entity.RoleUser}
	}
	return &Caller{ID: id, Email: "caller@example.com", Roles: roles}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
		err  error
	}{
		{"целое число", `321`, 321, nil},
		{"числовая строка", `"321"`, 321, nil},
		{"отрицательное", `-5`, -5, nil},
		{"дробное усекается", `3.9`, 3, nil},
		{"дробная строка усекается", `"3.9"`, 3, nil},
		{"null", `null`, 0, errValueEmpty},
		{"пустая строка", `""`, 0, errValueEmpty},
		{"строка из пробелов", `"  "`, 0, errValueEmpty},
		{"нечисловая строка", `"abc"`, 0, ErrInvalidValue},
		{"массив", `[1]`, 0, ErrInvalidValue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseValue(json.RawMessage(tc.raw))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRecordedAt(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{"RFC3339", `"2020-02-03T10:11:12Z"`, time.Date(2020, 2, 3, 10, 11, 12, 0, time.UTC), true},
		{"без часового пояса", `"2020-02-03T10:11:12"`, time.Date(2020, 2, 3, 10, 11, 12, 0, time.UTC), true},
		{"с пробелом", `"2020-02-03 10:11:12"`, time.Date(2020, 2, 3, 10, 11, 12, 0, time.UTC), true},
		{"только дата", `"2020-02-03"`, time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC), true},
		{"мусор", `"not-a-date"`, time.Time{}, false},
		{"число вместо строки", `123`, time.Time{}, false},
		{"null", `null`, time.Time{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRecordedAt(json.RawMessage(tc.raw))
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got))
		})
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewResultService(newMemResultRepo())
	ctx := context.Background()
	caller := testCaller(1)

	// Отсутствующее value — отдельная ошибка для 422
	_, err := svc.Create(ctx, caller, ResultPayload{})
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = svc.Create(ctx, caller, ResultPayload{Value: json.RawMessage(`null`)})
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = svc.Create(ctx, caller, ResultPayload{Value: json.RawMessage(`""`)})
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = svc.Create(ctx, caller, ResultPayload{Value: json.RawMessage(`"abc"`)})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = svc.Create(ctx, caller, ResultPayload{
		Value:      json.RawMessage(`1`),
		RecordedAt: json.RawMessage(`"bad"`),
	})
	assert.ErrorIs(t, err, ErrInvalidTime)

	// Без recordedAt подставляется текущее время
	before := time.Now().UTC().Add(-time.Second)
	result, err := svc.Create(ctx, caller, ResultPayload{Value: json.RawMessage(`42`)})
	require.NoError(t, err)
	assert.Equal(t, caller.ID, result.UserID)
	assert.False(t, result.RecordedAt.Before(before))
}

func TestUpdatePrecondition(t *testing.T) {
	repo := newMemResultRepo()
	svc := NewResultService(repo)
	ctx := context.Background()
	caller := testCaller(1)

	created, err := svc.Create(ctx, caller, ResultPayload{
		Value:      json.RawMessage(`100`),
		RecordedAt: json.RawMessage(`"2022-01-01T00:00:00Z"`),
	})
	require.NoError(t, err)

	payload := ResultPayload{Value: json.RawMessage(`200`)}

	// Отсутствующий и неверный отпечаток отклоняются одинаково
	_, err = svc.Update(ctx, caller, created.ID, payload, "")
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	_, err = svc.Update(ctx, caller, created.ID, payload, `"bogus"`)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	// Звездочка совпадает с любым текущим состоянием
	updated, err := svc.Update(ctx, caller, created.ID, payload, "*")
	require.NoError(t, err)
	assert.Equal(t, int64(200), updated.Value)

	// Пустое тело под верным отпечатком — нечего обновлять
	_, err = svc.Update(ctx, caller, created.ID, ResultPayload{}, "*")
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	// Чужой вызывающий получает отказ до проверки отпечатка
	_, err = svc.Update(ctx, testCaller(2), created.ID, payload, "*")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, caller, 999, payload, "*")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopLimitBounds(t *testing.T) {
	repo := newMemResultRepo()
	svc := NewResultService(repo)
	ctx := context.Background()
	admin := testCaller(1, entity.RoleAdmin)

	require.NoError(t, repo.Create(ctx, &entity.Result{Value: 1, UserID: 1, RecordedAt: time.Now()}))

	_, err := svc.Top(ctx, admin, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = svc.Top(ctx, admin, nil, TopLimitMax+1)
	assert.ErrorIs(t, err, ErrInvalidLimit)

	_, err = svc.Top(ctx, admin, nil, TopLimitMin)
	assert.NoError(t, err)

	_, err = svc.Top(ctx, admin, nil, TopLimitMax)
	assert.NoError(t, err)
}
