package session

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// Ошибки переходов состояния сессии
var (
	// ErrSessionFinished возвращается при любом переходе после завершения сессии
	ErrSessionFinished = fmt.Errorf("session is finished")
	// ErrFeedbackShown возвращается при попытке изменить выбор после показа ответа
	ErrFeedbackShown = fmt.Errorf("feedback already shown for current question")
	// ErrFeedbackNotShown возвращается при попытке перейти дальше до проверки ответа
	ErrFeedbackNotShown = fmt.Errorf("feedback not shown yet")
	// ErrNoSelection возвращается при проверке ответа без выбранного варианта
	ErrNoSelection = fmt.Errorf("no choice selected")
	// ErrUnknownChoice возвращается, если выбор не входит в варианты текущего вопроса
	ErrUnknownChoice = fmt.Errorf("choice is not among current question options")
)

// Session управляет прохождением одной викторины: последовательность вопросов,
// текущий выбор, показ правильного ответа, счет и завершение.
//
// Сессия рассчитана на работу из одной горутины: все переходы синхронные,
// блокировок нет. Единственный разделяемый ресурс — хранилище вопросов,
// и сессия его не мутирует (вопросы копируются при создании).
type Session struct {
	questions []entity.Question
	current   int
	selected  string
	feedback  bool
	score     int
	finished  bool

	// choices — зафиксированная перестановка вариантов текущего вопроса.
	// Пересчитывается только при смене индекса, чтобы порядок на экране
	// не менялся, пока пользователь думает или смотрит на разбор ответа.
	choices []string

	rng *rand.Rand
}

// New создает сессию по списку вопросов. Порядок вопросов сохраняется,
// варианты первого вопроса сразу перемешиваются.
// Для пустого списка возвращается apperrors.ErrNoQuestions: сессия без
// вопросов не существует, и деления на ноль при подсчете точности не бывает.
func New(questions []entity.Question) (*Session, error) {
	return NewWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand создает сессию с заданным источником случайности.
// Используется в тестах для детерминированных перестановок.
func NewWithRand(questions []entity.Question, rng *rand.Rand) (*Session, error) {
	if len(questions) == 0 {
		return nil, apperrors.ErrNoQuestions
	}

	// Копируем срез: хранилище может заменить свой список во время сессии
	qs := make([]entity.Question, len(questions))
	copy(qs, questions)

	s := &Session{
		questions: qs,
		rng:       rng,
	}
	s.reshuffle()
	return s, nil
}

// reshuffle фиксирует новую равномерную перестановку вариантов текущего вопроса
func (s *Session) reshuffle() {
	s.choices = s.questions[s.current].Choices()
	s.rng.Shuffle(len(s.choices), func(i, j int) {
		s.choices[i], s.choices[j] = s.choices[j], s.choices[i]
	})
}

// Select выбирает вариант ответа. Разрешен только до показа правильного ответа;
// повторный выбор того же варианта — no-op. Выбор вне текущих вариантов отклоняется.
func (s *Session) Select(choice string) error {
	if s.finished {
		return ErrSessionFinished
	}
	if s.feedback {
		return ErrFeedbackShown
	}
	found := false
	for _, c := range s.choices {
		if c == choice {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownChoice
	}
	s.selected = choice
	return nil
}

// CheckAnswer открывает правильный ответ и начисляет очко за верный выбор.
// Срабатывает не более одного раза на вопрос: повторный вызов при уже
// открытом ответе отклоняется и счет не меняет.
func (s *Session) CheckAnswer() error {
	if s.finished {
		return ErrSessionFinished
	}
	if s.feedback {
		// Явная защита от двойного начисления, а не только дисциплина UI
		return ErrFeedbackShown
	}
	if s.selected == "" {
		return ErrNoSelection
	}
	s.feedback = true
	if s.questions[s.current].IsCorrect(s.selected) {
		s.score++
	}
	return nil
}

// Advance переходит к следующему вопросу либо завершает сессию.
// Разрешен только после показа правильного ответа.
func (s *Session) Advance() error {
	if s.finished {
		return ErrSessionFinished
	}
	if !s.feedback {
		return ErrFeedbackNotShown
	}
	if s.current+1 < len(s.questions) {
		s.current++
		s.selected = ""
		s.feedback = false
		s.reshuffle()
		return nil
	}
	s.finished = true
	log.Printf("[Session] Сессия завершена: %d из %d правильных", s.score, len(s.questions))
	return nil
}

// Restart возвращает сессию к началу с теми же вопросами, без повторной
// загрузки: индекс и счет обнуляются, варианты первого вопроса перемешиваются заново.
func (s *Session) Restart() {
	s.current = 0
	s.selected = ""
	s.feedback = false
	s.score = 0
	s.finished = false
	s.reshuffle()
}

// Current возвращает текущий вопрос. После завершения сессии — nil.
func (s *Session) Current() *entity.Question {
	if s.finished {
		return nil
	}
	return &s.questions[s.current]
}

// Choices возвращает зафиксированную перестановку вариантов текущего вопроса.
// Между вызовами внутри одного вопроса порядок не меняется.
func (s *Session) Choices() []string {
	if s.finished {
		return nil
	}
	out := make([]string, len(s.choices))
	copy(out, s.choices)
	return out
}

// CurrentIndex возвращает индекс текущего вопроса (от нуля)
func (s *Session) CurrentIndex() int {
	return s.current
}

// Selected возвращает выбранный вариант; пустая строка — выбора нет
func (s *Session) Selected() string {
	return s.selected
}

// FeedbackShown сообщает, открыт ли правильный ответ текущего вопроса
func (s *Session) FeedbackShown() bool {
	return s.feedback
}

// Score возвращает количество правильных ответов на данный момент
func (s *Session) Score() int {
	return s.score
}

// Total возвращает общее количество вопросов сессии
func (s *Session) Total() int {
	return len(s.questions)
}

// Finished сообщает, пройдены ли все вопросы
func (s *Session) Finished() bool {
	return s.finished
}

// Progress возвращает номер текущего вопроса и общее количество для показа "3 из 10"
func (s *Session) Progress() (answered, total int) {
	return s.current + 1, len(s.questions)
}
