package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Role представляет роль пользователя в системе
type Role string

const (
	// RoleUser — базовая роль, видит только собственные результаты
	RoleUser Role = "ROLE_USER"
	// RoleAdmin — административная роль, без ограничений по владельцу
	RoleAdmin Role = "ROLE_ADMIN"
)

// Elevated сообщает, дает ли роль административные привилегии
func (r Role) Elevated() bool {
	return r == RoleAdmin
}

// Roles хранит набор ролей пользователя.
// В БД сериализуется как JSON-массив строк.
type Roles []Role

// Has проверяет наличие конкретной роли в наборе
func (rs Roles) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Elevated сообщает, содержит ли набор административную роль
func (rs Roles) Elevated() bool {
	return rs.Has(RoleAdmin)
}

// Value реализует driver.Valuer для сохранения в БД
func (rs Roles) Value() (driver.Value, error) {
	if rs == nil {
		rs = Roles{}
	}
	data, err := json.Marshal(rs)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (rs *Roles) Scan(value interface{}) error {
	if value == nil {
		*rs = Roles{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, rs)
	case string:
		return json.Unmarshal([]byte(v), rs)
	default:
		return errors.New("unsupported type for Roles")
	}
}
