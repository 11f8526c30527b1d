package devserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository на PostgreSQL.
// Это хранилище контрактного сервера: настоящий бэкенд живет вне репозитория,
// devserver лишь воспроизводит его поведение для разработки и тестов клиента.
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByBookID возвращает все вопросы книги в стабильном порядке
func (r *QuestionRepo) GetByBookID(ctx context.Context, bookID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Create создает вопрос. Дубликат текста вопроса внутри книги отклоняется
// по уникальному индексу (unique_violation, код 23505).
func (r *QuestionRepo) Create(ctx context.Context, bookID uint, draft repository.QuestionDraft) (*entity.Question, error) {
	question := &entity.Question{
		BookID:        bookID,
		QuestionText:  draft.QuestionText,
		CorrectAnswer: draft.CorrectAnswer,
		WrongAnswers:  draft.WrongAnswers,
	}
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return question, nil
}

// Update частично обновляет вопрос и возвращает актуальное состояние
func (r *QuestionRepo) Update(ctx context.Context, questionID uint, updates repository.QuestionUpdate) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if err := applyQuestionUpdate(&question, updates); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Save(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// applyQuestionUpdate накладывает частичное обновление и проверяет итоговое
// состояние. Обновление может нарушить инварианты так же, как и создание
// (например сделать правильный ответ одним из неправильных), поэтому
// проверяется результат слияния, а не присланные поля по отдельности.
func applyQuestionUpdate(question *entity.Question, updates repository.QuestionUpdate) error {
	if updates.QuestionText != nil {
		question.QuestionText = *updates.QuestionText
	}
	if updates.CorrectAnswer != nil {
		question.CorrectAnswer = *updates.CorrectAnswer
	}
	if updates.WrongAnswers != nil {
		question.WrongAnswers = *updates.WrongAnswers
	}
	if err := question.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, questionID uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, questionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateBatch создает пакет вопросов одной транзакцией.
// Используется генерацией урока для вопросов-заглушек.
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}
