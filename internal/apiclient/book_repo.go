package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
)

// BookRepo реализует repository.BookRepository поверх REST API
type BookRepo struct {
	client *Client
}

// NewBookRepo создает репозиторий книг поверх HTTP-клиента
func NewBookRepo(client *Client) *BookRepo {
	return &BookRepo{client: client}
}

// List возвращает все книги пользователя
func (r *BookRepo) List(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	if err := r.client.doJSON(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Create создает книгу
func (r *BookRepo) Create(ctx context.Context, draft repository.BookDraft) (*entity.Book, error) {
	var created entity.Book
	if err := r.client.doJSON(ctx, http.MethodPost, "/api/books", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update частично обновляет книгу
func (r *BookRepo) Update(ctx context.Context, bookID uint, updates repository.BookUpdate) (*entity.Book, error) {
	var updated entity.Book
	path := fmt.Sprintf("/api/books/%d", bookID)
	if err := r.client.doJSON(ctx, http.MethodPatch, path, updates, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет книгу
func (r *BookRepo) Delete(ctx context.Context, bookID uint) error {
	path := fmt.Sprintf("/api/books/%d", bookID)
	return r.client.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// MarkStudied обновляет отметку последнего занятия по книге
func (r *BookRepo) MarkStudied(ctx context.Context, bookID uint) (*entity.Book, error) {
	var updated entity.Book
	path := fmt.Sprintf("/api/books/%d/study", bookID)
	if err := r.client.doJSON(ctx, http.MethodPatch, path, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
