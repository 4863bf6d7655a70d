package entity

import (
	"encoding/json"
	"time"
)

// Result представляет один зачтенный результат пользователя
type Result struct {
	ID         uint      `gorm:"primaryKey" xml:"id"`
	Value      int64     `gorm:"column:value;not null" xml:"value"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null" xml:"recordedAt"`
	UserID     uint      `gorm:"column:user_id;not null;index" xml:"ownerId"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-" xml:"-"`
}

// TableName задает имя таблицы в БД
func (Result) TableName() string {
	return "results"
}

// MarshalJSON сериализует результат в каноническом виде:
// фиксированный порядок полей, метка времени в UTC (RFC3339).
// От этого представления считается отпечаток ресурса,
// поэтому оно должно быть стабильным между процессами.
func (r Result) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID         uint   `json:"id"`
		Value      int64  `json:"value"`
		RecordedAt string `json:"recordedAt"`
		OwnerID    uint   `json:"ownerId"`
	}
	return json.Marshal(wire{
		ID:         r.ID,
		Value:      r.Value,
		RecordedAt: r.RecordedAt.UTC().Format(time.RFC3339),
		OwnerID:    r.UserID,
	})
}

// ResultStats содержит агрегированную статистику по результатам.
// Min, Max и Avg равны nil, когда в выборке нет ни одной строки.
type ResultStats struct {
	Count int64    `json:"count" xml:"count"`
	Min   *int64   `json:"min" xml:"min"`
	Max   *int64   `json:"max" xml:"max"`
	Avg   *float64 `json:"avg" xml:"avg"`
}
