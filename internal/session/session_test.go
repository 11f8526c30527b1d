package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// testQuestions возвращает фиксированный набор вопросов для тестов
func testQuestions(n int) []entity.Question {
	base := []entity.Question{
		{ID: 1, BookID: 42, QuestionText: "Столица Франции?", CorrectAnswer: "Париж", WrongAnswers: entity.StringArray{"Мадрид", "Берлин", "Рим"}},
		{ID: 2, BookID: 42, QuestionText: "Красная планета?", CorrectAnswer: "Марс", WrongAnswers: entity.StringArray{"Земля", "Венера", "Юпитер"}},
		{ID: 3, BookID: 42, QuestionText: "Кто написал «Гамлета»?", CorrectAnswer: "Шекспир", WrongAnswers: entity.StringArray{"Диккенс", "Остин", "Твен"}},
		{ID: 4, BookID: 42, QuestionText: "Самый большой океан?", CorrectAnswer: "Тихий", WrongAnswers: entity.StringArray{"Атлантический", "Индийский", "Северный Ледовитый"}},
		{ID: 5, BookID: 42, QuestionText: "Химический символ O?", CorrectAnswer: "Кислород", WrongAnswers: entity.StringArray{"Золото", "Осмий", "Цинк"}},
		{ID: 6, BookID: 42, QuestionText: "Сколько континентов?", CorrectAnswer: "7", WrongAnswers: entity.StringArray{"5", "6", "8"}},
		{ID: 7, BookID: 42, QuestionText: "Год гибели Титаника?", CorrectAnswer: "1912", WrongAnswers: entity.StringArray{"1905", "1920", "1898"}},
		{ID: 8, BookID: 42, QuestionText: "Язык Бразилии?", CorrectAnswer: "Португальский", WrongAnswers: entity.StringArray{"Испанский", "Французский", "Итальянский"}},
		{ID: 9, BookID: 42, QuestionText: "Корень из 64?", CorrectAnswer: "8", WrongAnswers: entity.StringArray{"6", "7", "9"}},
		{ID: 10, BookID: 42, QuestionText: "Автор Моны Лизы?", CorrectAnswer: "Леонардо да Винчи", WrongAnswers: entity.StringArray{"Ван Гог", "Пикассо", "Микеланджело"}},
	}
	return base[:n]
}

// newTestSession создает сессию с детерминированной случайностью
func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := NewWithRand(testQuestions(n), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return s
}

// answer проходит текущий вопрос: выбирает правильный или первый неправильный вариант
func answer(t *testing.T, s *Session, correctly bool) {
	t.Helper()
	q := s.Current()
	require.NotNil(t, q)
	choice := q.CorrectAnswer
	if !correctly {
		choice = q.WrongAnswers[0]
	}
	require.NoError(t, s.Select(choice))
	require.NoError(t, s.CheckAnswer())
	require.NoError(t, s.Advance())
}

func TestNew_EmptyQuestions(t *testing.T) {
	// Act
	s, err := New(nil)

	// Assert: сессия без вопросов не создается, подсчет точности не достигается
	assert.Nil(t, s)
	assert.ErrorIs(t, err, apperrors.ErrNoQuestions, "пустой список вопросов должен давать ErrNoQuestions")
}

func TestSession_InitialState(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)

	// Assert
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, "", s.Selected())
	assert.False(t, s.FeedbackShown())
	assert.False(t, s.Finished())
	assert.Equal(t, 3, s.Total())
}

func TestSession_ChoicesArePermutation(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)

	// Act
	choices := s.Choices()

	// Assert: перестановка {правильный} ∪ неправильные без дубликатов
	q := s.Current()
	require.Len(t, choices, 1+len(q.WrongAnswers))
	seen := map[string]bool{}
	for _, c := range choices {
		assert.False(t, seen[c], "вариант %q не должен повторяться", c)
		seen[c] = true
	}
	assert.True(t, seen[q.CorrectAnswer], "правильный ответ должен присутствовать среди вариантов")
	for _, w := range q.WrongAnswers {
		assert.True(t, seen[w], "неправильный ответ %q должен присутствовать среди вариантов", w)
	}
}

func TestSession_ChoicesStableWithinQuestion(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)

	// Act: порядок вариантов не должен дрожать между чтениями
	first := s.Choices()
	require.NoError(t, s.Select(first[0]))
	second := s.Choices()
	require.NoError(t, s.CheckAnswer())
	third := s.Choices()

	// Assert: выбор и показ ответа не меняют перестановку
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestSession_SelectRepeatedly(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)
	choices := s.Choices()

	// Act: многократный выбор до проверки ответа
	require.NoError(t, s.Select(choices[0]))
	require.NoError(t, s.Select(choices[1]))
	require.NoError(t, s.Select(choices[1])) // повторный выбор того же варианта
	require.NoError(t, s.Select(choices[2]))

	// Assert: меняется только выбор, счет и показ ответа нетронуты
	assert.Equal(t, choices[2], s.Selected())
	assert.Equal(t, 0, s.Score())
	assert.False(t, s.FeedbackShown())
}

func TestSession_SelectUnknownChoice(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)

	// Act & Assert
	err := s.Select("вариант не из списка")
	assert.ErrorIs(t, err, ErrUnknownChoice)
	assert.Equal(t, "", s.Selected())
}

func TestSession_SelectAfterFeedback(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)
	q := s.Current()
	require.NoError(t, s.Select(q.CorrectAnswer))
	require.NoError(t, s.CheckAnswer())

	// Act: попытка сменить выбор после показа ответа
	err := s.Select(q.WrongAnswers[0])

	// Assert: выбор неизменен до перехода к следующему вопросу
	assert.ErrorIs(t, err, ErrFeedbackShown)
	assert.Equal(t, q.CorrectAnswer, s.Selected())
}

func TestSession_CheckAnswerWithoutSelection(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)

	// Act & Assert
	assert.ErrorIs(t, s.CheckAnswer(), ErrNoSelection)
	assert.False(t, s.FeedbackShown())
}

func TestSession_CheckAnswerSingleFire(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)
	q := s.Current()
	require.NoError(t, s.Select(q.CorrectAnswer))
	require.NoError(t, s.CheckAnswer())
	require.Equal(t, 1, s.Score())

	// Act: повторная проверка того же вопроса
	err := s.CheckAnswer()

	// Assert: счет не удваивается
	assert.ErrorIs(t, err, ErrFeedbackShown)
	assert.Equal(t, 1, s.Score(), "повторный CheckAnswer не должен начислять очко второй раз")
}

func TestSession_CheckAnswerWrongChoice(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)
	q := s.Current()
	require.NoError(t, s.Select(q.WrongAnswers[1]))

	// Act
	require.NoError(t, s.CheckAnswer())

	// Assert
	assert.True(t, s.FeedbackShown())
	assert.Equal(t, 0, s.Score())
}

func TestSession_AdvanceBeforeFeedback(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)
	require.NoError(t, s.Select(s.Choices()[0]))

	// Act & Assert
	assert.ErrorIs(t, s.Advance(), ErrFeedbackNotShown)
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestSession_AdvanceResetsPerQuestionState(t *testing.T) {
	// Arrange
	s := newTestSession(t, 3)
	q := s.Current()
	require.NoError(t, s.Select(q.CorrectAnswer))
	require.NoError(t, s.CheckAnswer())

	// Act
	require.NoError(t, s.Advance())

	// Assert
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, "", s.Selected())
	assert.False(t, s.FeedbackShown())
	assert.Equal(t, uint(2), s.Current().ID)
}

func TestSession_FinishedIsTerminal(t *testing.T) {
	// Arrange: проходим все вопросы
	s := newTestSession(t, 3)
	for i := 0; i < 3; i++ {
		answer(t, s, true)
	}
	require.True(t, s.Finished())

	// Act & Assert: после завершения переходы не принимаются
	assert.ErrorIs(t, s.Select("Париж"), ErrSessionFinished)
	assert.ErrorIs(t, s.CheckAnswer(), ErrSessionFinished)
	assert.ErrorIs(t, s.Advance(), ErrSessionFinished)
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Choices())
}

func TestSession_ScoreInvariant(t *testing.T) {
	// Arrange: счет никогда не превышает число отвеченных вопросов
	s := newTestSession(t, 10)
	checkInvariant := func() {
		answered := s.CurrentIndex()
		if s.FeedbackShown() {
			answered++
		}
		assert.GreaterOrEqual(t, s.Score(), 0)
		assert.LessOrEqual(t, s.Score(), answered, "счет не должен превышать число отвеченных вопросов")
	}

	// Act: чередуем правильные и неправильные ответы, проверяя после каждого перехода
	for i := 0; i < 10 && !s.Finished(); i++ {
		q := s.Current()
		choice := q.CorrectAnswer
		if i%2 == 1 {
			choice = q.WrongAnswers[0]
		}
		require.NoError(t, s.Select(choice))
		checkInvariant()
		require.NoError(t, s.CheckAnswer())
		checkInvariant()
		require.NoError(t, s.Advance())
		if !s.Finished() {
			checkInvariant()
		}
	}
	assert.True(t, s.Finished())
	assert.Equal(t, 5, s.Score())
}

func TestSession_Restart(t *testing.T) {
	// Arrange: завершенная сессия с ненулевым счетом
	s := newTestSession(t, 3)
	for i := 0; i < 3; i++ {
		answer(t, s, i != 1)
	}
	require.True(t, s.Finished())
	require.Equal(t, 2, s.Score())

	// Act
	s.Restart()

	// Assert: те же вопросы, начальное состояние, свежая перестановка
	assert.False(t, s.Finished())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, "", s.Selected())
	assert.False(t, s.FeedbackShown())
	assert.Equal(t, 3, s.Total())
	assert.Len(t, s.Choices(), 4)
}

func TestSession_QuestionsCopiedFromCaller(t *testing.T) {
	// Arrange: сессия не должна зависеть от последующих мутаций среза вызывающего
	questions := testQuestions(3)
	s, err := NewWithRand(questions, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// Act: хранилище "заменяет" свой список во время сессии
	questions[0] = entity.Question{ID: 99, QuestionText: "другой вопрос", CorrectAnswer: "x"}

	// Assert
	assert.Equal(t, uint(1), s.Current().ID, "сессия должна работать с копией списка вопросов")
}
