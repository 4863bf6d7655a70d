package service

import (
	"github.com/OlgaArenas22/phpMiW/internal/domain/entity"
)

// Caller описывает аутентифицированного вызывающего
type Caller struct {
	ID    uint
	Email string
	Roles entity.Roles
}

// Scope определяет эффективный фильтр владения для запроса.
// OwnerID == nil означает выборку без ограничений (только для
// административной роли).
type Scope struct {
	OwnerID *uint
}

// ResolveOwnerScope вычисляет область видимости вызывающего.
// Администратор видит все и может запросить любого владельца;
// базовая роль — только саму себя, запрос чужого владельца запрещен.
func ResolveOwnerScope(caller *Caller, requestedOwner *uint) (Scope, error) {
	if caller == nil {
		return Scope{}, ErrUnauthorized
	}

	if caller.Roles.Elevated() {
		return Scope{OwnerID: requestedOwner}, nil
	}

	if requestedOwner != nil && *requestedOwner != caller.ID {
		return Scope{}, ErrForbidden
	}

	own := caller.ID
	return Scope{OwnerID: &own}, nil
}

// CanAccess проверяет право доступа к конкретному ресурсу после выборки:
// администратору доступно все, владельцу — свое.
func CanAccess(caller *Caller, result *entity.Result) error {
	if caller == nil {
		return ErrUnauthorized
	}

	if caller.Roles.Elevated() || result.UserID == caller.ID {
		return nil
	}

	return ErrForbidden
}
