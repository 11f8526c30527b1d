package repository

import (
	"context"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// QuestionDraft содержит поля для создания нового вопроса.
// Идентификатор и время создания назначает бэкенд.
type QuestionDraft struct {
	QuestionText  string             `json:"question_text"`
	CorrectAnswer string             `json:"correct_answer"`
	WrongAnswers  entity.StringArray `json:"wrong_answers"`
}

// QuestionUpdate содержит частичное обновление вопроса.
// nil-поле означает "не менять".
type QuestionUpdate struct {
	QuestionText  *string             `json:"question_text,omitempty"`
	CorrectAnswer *string             `json:"correct_answer,omitempty"`
	WrongAnswers  *entity.StringArray `json:"wrong_answers,omitempty"`
}

// QuestionRepository определяет методы для работы с вопросами.
// Реализуется HTTP-клиентом (источник истины — бэкенд) и gorm-репозиторием devserver.
type QuestionRepository interface {
	GetByBookID(ctx context.Context, bookID uint) ([]entity.Question, error)
	Create(ctx context.Context, bookID uint, draft QuestionDraft) (*entity.Question, error)
	Update(ctx context.Context, questionID uint, updates QuestionUpdate) (*entity.Question, error)
	Delete(ctx context.Context, questionID uint) error
}
