package entity

import "time"

// User представляет пользователя приложения. Профиль живет на бэкенде,
// клиент держит только минимальный срез для отображения и связи с питомцем.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	XP        int       `gorm:"not null;default:0" json:"xp"`
	Streak    int       `gorm:"not null;default:0" json:"streak"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}
