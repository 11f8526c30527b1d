package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// questionStorage расширяет репозиторий вопросов пакетным созданием
// для генерации урока
type questionStorage interface {
	repository.QuestionRepository
	CreateBatch(ctx context.Context, questions []entity.Question) error
}

// bookStorage расширяет репозиторий книг чтением по идентификатору
type bookStorage interface {
	repository.BookRepository
	GetByID(ctx context.Context, bookID uint) (*entity.Book, error)
}

// Handler обрабатывает все маршруты контрактного сервера
type Handler struct {
	questions questionStorage
	books     bookStorage
	buddies   repository.BuddyRepository

	// placeholderQuestions — сколько вопросов-заглушек создает генерация урока
	placeholderQuestions int
}

// NewHandler создает обработчик контрактного сервера
func NewHandler(questions questionStorage, books bookStorage, buddies repository.BuddyRepository, placeholderQuestions int) *Handler {
	if placeholderQuestions <= 0 {
		placeholderQuestions = 5
	}
	return &Handler{
		questions:            questions,
		books:                books,
		buddies:              buddies,
		placeholderQuestions: placeholderQuestions,
	}
}

// handleError отображает общие ошибки приложения на HTTP-статусы
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate question for this book"})
	default:
		log.Printf("[Devserver] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ============================================================================
// Вопросы
// ============================================================================

// CreateQuestionRequest представляет тело запроса на создание вопроса
type CreateQuestionRequest struct {
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,min=1,max=500"`
	WrongAnswers  []string `json:"wrong_answers" binding:"required,min=1"`
}

// GetQuestionsByBook возвращает все вопросы книги
// GET /api/questions/book/:bookId
func (h *Handler) GetQuestionsByBook(c *gin.Context) {
	bookID := c.MustGet("bookID").(uint)

	questions, err := h.questions.GetByBookID(c.Request.Context(), bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion создает вопрос для книги
// POST /api/questions/book/:bookId
func (h *Handler) CreateQuestion(c *gin.Context) {
	bookID := c.MustGet("bookID").(uint)

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := repository.QuestionDraft{
		QuestionText:  req.QuestionText,
		CorrectAnswer: req.CorrectAnswer,
		WrongAnswers:  entity.StringArray(req.WrongAnswers),
	}

	// Правильный ответ среди неправильных — ошибка данных, а не повод чистить
	candidate := entity.Question{
		QuestionText:  draft.QuestionText,
		CorrectAnswer: draft.CorrectAnswer,
		WrongAnswers:  draft.WrongAnswers,
	}
	if err := candidate.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.questions.Create(c.Request.Context(), bookID, draft)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateQuestion частично обновляет вопрос
// PUT /api/questions/:questionId
func (h *Handler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var updates repository.QuestionUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.questions.Update(c.Request.Context(), questionID, updates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteQuestion удаляет вопрос
// DELETE /api/questions/:questionId
func (h *Handler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questions.Delete(c.Request.Context(), questionID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Книги
// ============================================================================

// CreateBookRequest представляет тело запроса на создание книги
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Category    string `json:"category" binding:"omitempty,max=100"`
}

// ListBooks возвращает все книги
// GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// CreateBook создает книгу
// POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.books.Create(c.Request.Context(), repository.BookDraft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateBook частично обновляет книгу
// PATCH /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	bookID := c.MustGet("bookID").(uint)

	var updates repository.BookUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.books.Update(c.Request.Context(), bookID, updates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBook удаляет книгу и ее вопросы
// DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	bookID := c.MustGet("bookID").(uint)

	if err := h.books.Delete(c.Request.Context(), bookID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkBookStudied проставляет отметку последнего занятия
// PATCH /api/books/:id/study
func (h *Handler) MarkBookStudied(c *gin.Context) {
	bookID := c.MustGet("bookID").(uint)

	updated, err := h.books.MarkStudied(c.Request.Context(), bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ============================================================================
// Питомец
// ============================================================================

// CreateBuddyRequest представляет тело запроса на создание питомца
type CreateBuddyRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Species string `json:"species" binding:"required,min=1,max=50"`
}

// CreateBuddy создает питомца
// POST /api/tomadachi
func (h *Handler) CreateBuddy(c *gin.Context) {
	var req CreateBuddyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.buddies.Create(c.Request.Context(), repository.BuddyDraft{
		Name:    req.Name,
		Species: req.Species,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBuddy возвращает питомца пользователя
// GET /api/tomadachi/:userId/:buddyId
func (h *Handler) GetBuddy(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	buddyID := c.MustGet("buddyID").(uint)

	buddy, err := h.buddies.Get(c.Request.Context(), userID, buddyID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, buddy)
}

// UpdateBuddy частично обновляет питомца
// PUT /api/tomadachi/:userId/:buddyId
func (h *Handler) UpdateBuddy(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	buddyID := c.MustGet("buddyID").(uint)

	var updates repository.BuddyUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.buddies.Update(c.Request.Context(), userID, buddyID, updates)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBuddy удаляет питомца
// DELETE /api/tomadachi/:userId/:buddyId
func (h *Handler) DeleteBuddy(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	buddyID := c.MustGet("buddyID").(uint)

	if err := h.buddies.Delete(c.Request.Context(), userID, buddyID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================================================
// Генерация урока
// ============================================================================

// GenerateLesson принимает multipart-загрузку страниц и создает
// вопросы-заглушки для книги. Настоящая генерация — забота внешнего
// бэкенда; здесь важна только проверка формы запроса и сквозной сценарий.
// POST /api/generate-lesson/
func (h *Handler) GenerateLesson(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}

	bookIDValues := form.Value["book_id"]
	if len(bookIDValues) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "book_id field is required"})
		return
	}
	bookID64, err := strconv.ParseUint(bookIDValues[0], 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book_id"})
		return
	}
	bookID := uint(bookID64)

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file part named 'files' is required"})
		return
	}

	book, err := h.books.GetByID(c.Request.Context(), bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	questions := make([]entity.Question, 0, h.placeholderQuestions)
	for i := 1; i <= h.placeholderQuestions; i++ {
		questions = append(questions, entity.Question{
			BookID:        bookID,
			QuestionText:  fmt.Sprintf("[%s] Вопрос-заглушка %d по %d страницам", book.Title, i, len(files)),
			CorrectAnswer: fmt.Sprintf("Правильный ответ %d", i),
			WrongAnswers:  entity.StringArray{"Вариант A", "Вариант B", "Вариант C"},
		})
	}
	if err := h.questions.CreateBatch(c.Request.Context(), questions); err != nil {
		h.handleError(c, err)
		return
	}

	log.Printf("[Devserver] Генерация урока для книги #%d: %d страниц, %d вопросов-заглушек", bookID, len(files), len(questions))
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "questions_created": len(questions)})
}
