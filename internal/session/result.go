package session

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// Уровни оценки результата. Границы — включительные нижние пороги,
// проверяются сверху вниз, срабатывает первый подходящий.
const (
	TierExcellent    = "excellent"
	TierGreat        = "great"
	TierGood         = "good"
	TierNotBad       = "not bad"
	TierKeepStudying = "keep studying"
)

// Accuracy возвращает долю правильных ответов в процентах, округленную
// до целого. Вызывается только для завершенной сессии; вопросов всегда
// больше нуля (пустой список отклоняется при создании сессии).
func (s *Session) Accuracy() int {
	return int(math.Round(100 * float64(s.score) / float64(len(s.questions))))
}

// Tier возвращает текстовую оценку по проценту правильных ответов
func Tier(accuracy int) string {
	switch {
	case accuracy >= 90:
		return TierExcellent
	case accuracy >= 80:
		return TierGreat
	case accuracy >= 70:
		return TierGood
	case accuracy >= 60:
		return TierNotBad
	default:
		return TierKeepStudying
	}
}

// Result собирает итог завершенной сессии. До завершения возвращает ошибку:
// точность и оценка по недоигранной викторине не имеют смысла.
func (s *Session) Result(bookID uint, bookTitle string) (*entity.SessionResult, error) {
	if !s.finished {
		return nil, fmt.Errorf("session is not finished yet")
	}
	accuracy := s.Accuracy()
	return &entity.SessionResult{
		BookID:         bookID,
		BookTitle:      bookTitle,
		Score:          s.score,
		TotalQuestions: len(s.questions),
		Accuracy:       accuracy,
		Tier:           Tier(accuracy),
		CompletedAt:    time.Now(),
	}, nil
}
