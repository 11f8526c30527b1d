package devserver

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// devUserID — единственный пользователь контрактного сервера.
// Аутентификации в контракте нет, поэтому все книги принадлежат ему.
const devUserID uint = 1

// BookRepo реализует repository.BookRepository на PostgreSQL
type BookRepo struct {
	db *gorm.DB
}

// NewBookRepo создает новый репозиторий книг
func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

// List возвращает все книги в порядке создания
func (r *BookRepo) List(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if err := r.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Create создает книгу
func (r *BookRepo) Create(ctx context.Context, draft repository.BookDraft) (*entity.Book, error) {
	book := &entity.Book{
		UserID:      devUserID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Update частично обновляет книгу
func (r *BookRepo) Update(ctx context.Context, bookID uint, updates repository.BookUpdate) (*entity.Book, error) {
	book, err := r.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		book.Title = *updates.Title
	}
	if updates.Description != nil {
		book.Description = *updates.Description
	}
	if updates.Category != nil {
		book.Category = *updates.Category
	}

	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Delete удаляет книгу вместе с ее вопросами
func (r *BookRepo) Delete(ctx context.Context, bookID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Book{}, bookID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// MarkStudied проставляет текущее время в last_studied
func (r *BookRepo) MarkStudied(ctx context.Context, bookID uint) (*entity.Book, error) {
	book, err := r.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book.LastStudied = time.Now()
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID возвращает книгу по идентификатору
func (r *BookRepo) GetByID(ctx context.Context, bookID uint) (*entity.Book, error) {
	var book entity.Book
	err := r.db.WithContext(ctx).First(&book, bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}
