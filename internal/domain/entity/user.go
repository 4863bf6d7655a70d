package entity

import (
	"time"
)

// User представляет учетную запись в системе
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id" xml:"id"`
	Email     string    `gorm:"uniqueIndex;size:180;not null" json:"email" xml:"email"`
	Password  string    `gorm:"not null" json:"-" xml:"-"`
	Roles     Roles     `gorm:"type:text;not null" json:"roles" xml:"roles>role"`
	CreatedAt time.Time `json:"-" xml:"-"`
	UpdatedAt time.Time `json:"-" xml:"-"`
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}
