package entity

import "time"

// Buddy представляет виртуального питомца пользователя.
// На бэкенде ресурс называется "tomadachi", здесь используется доменное имя.
type Buddy struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Species    string    `gorm:"size:50;not null" json:"species"`
	Level      int       `gorm:"not null;default:1" json:"level"`
	Experience int       `gorm:"not null;default:0" json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Buddy) TableName() string {
	return "buddies"
}
