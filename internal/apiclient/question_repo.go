package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
)

// QuestionRepo реализует repository.QuestionRepository поверх REST API
type QuestionRepo struct {
	client *Client
}

// NewQuestionRepo создает репозиторий вопросов поверх HTTP-клиента
func NewQuestionRepo(client *Client) *QuestionRepo {
	return &QuestionRepo{client: client}
}

// GetByBookID возвращает все вопросы книги
func (r *QuestionRepo) GetByBookID(ctx context.Context, bookID uint) ([]entity.Question, error) {
	var questions []entity.Question
	path := fmt.Sprintf("/api/questions/book/%d", bookID)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Create создает вопрос для книги; идентификатор назначает бэкенд
func (r *QuestionRepo) Create(ctx context.Context, bookID uint, draft repository.QuestionDraft) (*entity.Question, error) {
	var created entity.Question
	path := fmt.Sprintf("/api/questions/book/%d", bookID)
	if err := r.client.doJSON(ctx, http.MethodPost, path, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update частично обновляет вопрос и возвращает его актуальное состояние
func (r *QuestionRepo) Update(ctx context.Context, questionID uint, updates repository.QuestionUpdate) (*entity.Question, error) {
	var updated entity.Question
	path := fmt.Sprintf("/api/questions/%d", questionID)
	if err := r.client.doJSON(ctx, http.MethodPut, path, updates, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет вопрос на бэкенде
func (r *QuestionRepo) Delete(ctx context.Context, questionID uint) error {
	path := fmt.Sprintf("/api/questions/%d", questionID)
	return r.client.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
