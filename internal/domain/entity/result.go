package entity

import "time"

// SessionResult представляет итог одной завершенной сессии викторины
type SessionResult struct {
	BookID         uint      `json:"book_id"`
	BookTitle      string    `json:"book_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Accuracy       int       `json:"accuracy"`
	Tier           string    `json:"tier"`
	CompletedAt    time.Time `json:"completed_at"`
}
