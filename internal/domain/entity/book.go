package entity

import "time"

// Book представляет учебный материал пользователя (отсканированную книгу)
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	Category    string    `gorm:"size:100" json:"category"`
	LastStudied time.Time `json:"last_studied"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Book) TableName() string {
	return "books"
}
