package repository

import (
	"context"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// BookDraft содержит поля для создания книги
type BookDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// BookUpdate содержит частичное обновление книги; nil-поле означает "не менять"
type BookUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// BookRepository определяет методы для работы с книгами пользователя
type BookRepository interface {
	List(ctx context.Context) ([]entity.Book, error)
	Create(ctx context.Context, draft BookDraft) (*entity.Book, error)
	Update(ctx context.Context, bookID uint, updates BookUpdate) (*entity.Book, error)
	Delete(ctx context.Context, bookID uint) error
	// MarkStudied обновляет отметку last_studied; возвращает книгу с новым значением
	MarkStudied(ctx context.Context, bookID uint) (*entity.Book, error)
}
