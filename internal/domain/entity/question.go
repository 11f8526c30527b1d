package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		// sqlite-драйвер в тестах возвращает текст вместо []byte
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte or string")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет один вопрос викторины по книге.
// Имена JSON-полей повторяют контракт бэкенда студенческого приложения.
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	BookID        uint        `gorm:"not null;index;uniqueIndex:idx_book_question_text" json:"book_id"`
	QuestionText  string      `gorm:"size:500;not null;uniqueIndex:idx_book_question_text" json:"question_text"`
	CorrectAnswer string      `gorm:"size:500;not null" json:"correct_answer"`
	WrongAnswers  StringArray `gorm:"type:jsonb;not null" json:"wrong_answers"`
	CreatedAt     time.Time   `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, совпадает ли выбранный вариант с правильным ответом
func (q *Question) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// Choices возвращает полный набор вариантов: правильный ответ плюс неправильные.
// Порядок фиксированный (правильный первым), перемешивание — забота сессии.
func (q *Question) Choices() []string {
	choices := make([]string, 0, 1+len(q.WrongAnswers))
	choices = append(choices, q.CorrectAnswer)
	choices = append(choices, q.WrongAnswers...)
	return choices
}

// ChoiceCount возвращает количество вариантов ответа
func (q *Question) ChoiceCount() int {
	return 1 + len(q.WrongAnswers)
}

// Validate проверяет инварианты вопроса. Бэкенд считается источником истины,
// поэтому нарушение не исправляется локально, а возвращается как ошибка.
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return errors.New("question text is empty")
	}
	if q.CorrectAnswer == "" {
		return errors.New("correct answer is empty")
	}
	for _, w := range q.WrongAnswers {
		if w == q.CorrectAnswer {
			return errors.New("correct answer duplicated in wrong answers")
		}
	}
	return nil
}
