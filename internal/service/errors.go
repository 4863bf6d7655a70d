package service

import "errors"

// Ошибки уровня сервисов. Обработчики преобразуют их в HTTP-статусы
// на своей границе; ни одна из них не является фатальной для процесса.
var (
	// ErrUnauthorized — вызывающий не аутентифицирован (401)
	ErrUnauthorized = errors.New("UNAUTHORIZED: Invalid credentials.")

	// ErrForbidden — доступ к чужому ресурсу без административной роли (403)
	ErrForbidden = errors.New("FORBIDDEN: you don't have permission to access")

	// ErrNotFound — ресурс или выборка не найдены (404)
	ErrNotFound = errors.New("NOT FOUND")

	// ErrMissingValue — обязательное поле value отсутствует или пусто (422)
	ErrMissingValue = errors.New("UNPROCESSABLE ENTITY: value is missing")

	// ErrInvalidValue — поле value присутствует, но не является числом (400)
	ErrInvalidValue = errors.New("BAD REQUEST: invalid value")

	// ErrInvalidTime — поле recordedAt не разбирается как метка времени (400)
	ErrInvalidTime = errors.New("BAD REQUEST: invalid recordedAt")

	// ErrNothingToUpdate — в теле обновления нет ни одного известного поля (400)
	ErrNothingToUpdate = errors.New("BAD REQUEST: no data to update")

	// ErrInvalidLimit — параметр limit вне диапазона или не число (400)
	ErrInvalidLimit = errors.New("BAD REQUEST: invalid limit")

	// ErrInvalidOwnerID — параметр ownerId не является числом (400)
	ErrInvalidOwnerID = errors.New("BAD REQUEST: invalid ownerId")

	// ErrPreconditionFailed — If-Match отсутствует или не совпадает (412)
	ErrPreconditionFailed = errors.New("PRECONDITION FAILED: stale or missing fingerprint")

	// ErrEmailTaken — попытка регистрации с занятым email
	ErrEmailTaken = errors.New("BAD REQUEST: email already in use")
)
