package devserver

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// EnsureDevUser создает локального пользователя-владельца, если его еще нет.
// Книги и питомцы контрактного сервера ссылаются на devUserID, поэтому
// строка в users должна существовать до первой записи. Повторный вызов
// ничего не меняет.
func EnsureDevUser(db *gorm.DB) error {
	user := entity.User{ID: devUserID, Name: "dev"}
	if err := db.FirstOrCreate(&user, entity.User{ID: devUserID}).Error; err != nil {
		return fmt.Errorf("не удалось создать dev-пользователя: %w", err)
	}
	return nil
}
