package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// Моки хранилищ контрактного сервера
// ============================================================================

type MockQuestionStorage struct {
	mock.Mock
}

func (m *MockQuestionStorage) GetByBookID(ctx context.Context, bookID uint) ([]entity.Question, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionStorage) Create(ctx context.Context, bookID uint, draft repository.QuestionDraft) (*entity.Question, error) {
	args := m.Called(ctx, bookID, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionStorage) Update(ctx context.Context, questionID uint, updates repository.QuestionUpdate) (*entity.Question, error) {
	args := m.Called(ctx, questionID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionStorage) Delete(ctx context.Context, questionID uint) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

func (m *MockQuestionStorage) CreateBatch(ctx context.Context, questions []entity.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

type MockBookStorage struct {
	mock.Mock
}

func (m *MockBookStorage) List(ctx context.Context) ([]entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Book), args.Error(1)
}

func (m *MockBookStorage) Create(ctx context.Context, draft repository.BookDraft) (*entity.Book, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookStorage) Update(ctx context.Context, bookID uint, updates repository.BookUpdate) (*entity.Book, error) {
	args := m.Called(ctx, bookID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookStorage) Delete(ctx context.Context, bookID uint) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookStorage) MarkStudied(ctx context.Context, bookID uint) (*entity.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookStorage) GetByID(ctx context.Context, bookID uint) (*entity.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

type MockBuddyStorage struct {
	mock.Mock
}

func (m *MockBuddyStorage) Create(ctx context.Context, draft repository.BuddyDraft) (*entity.Buddy, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Buddy), args.Error(1)
}

func (m *MockBuddyStorage) Get(ctx context.Context, userID, buddyID uint) (*entity.Buddy, error) {
	args := m.Called(ctx, userID, buddyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Buddy), args.Error(1)
}

func (m *MockBuddyStorage) Update(ctx context.Context, userID, buddyID uint, updates repository.BuddyUpdate) (*entity.Buddy, error) {
	args := m.Called(ctx, userID, buddyID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Buddy), args.Error(1)
}

func (m *MockBuddyStorage) Delete(ctx context.Context, userID, buddyID uint) error {
	args := m.Called(ctx, userID, buddyID)
	return args.Error(0)
}

// newTestRouter собирает роутер с моками
func newTestRouter(q *MockQuestionStorage, b *MockBookStorage, bd *MockBuddyStorage) *gin.Engine {
	return NewRouter(NewHandler(q, b, bd, 3), nil)
}

// ============================================================================
// Тесты маршрутов
// ============================================================================

func TestGetQuestionsByBook(t *testing.T) {
	// Arrange
	q := new(MockQuestionStorage)
	q.On("GetByBookID", mock.Anything, uint(42)).Return([]entity.Question{
		{ID: 1, BookID: 42, QuestionText: "q", CorrectAnswer: "a", WrongAnswers: entity.StringArray{"b"}},
	}, nil)
	router := newTestRouter(q, new(MockBookStorage), new(MockBuddyStorage))

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/questions/book/42", nil)
	router.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var questions []entity.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	assert.Len(t, questions, 1)
}

func TestGetQuestionsByBook_InvalidParam(t *testing.T) {
	// Arrange
	router := newTestRouter(new(MockQuestionStorage), new(MockBookStorage), new(MockBuddyStorage))

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/questions/book/abc", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateQuestion_DuplicateConflict(t *testing.T) {
	// Arrange
	q := new(MockQuestionStorage)
	q.On("Create", mock.Anything, uint(42), mock.Anything).Return(nil, apperrors.ErrConflict)
	router := newTestRouter(q, new(MockBookStorage), new(MockBuddyStorage))

	body, _ := json.Marshal(CreateQuestionRequest{
		QuestionText:  "дубликат",
		CorrectAnswer: "да",
		WrongAnswers:  []string{"нет"},
	})

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/questions/book/42", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateQuestion_CorrectAmongWrong(t *testing.T) {
	// Arrange: правильный ответ среди неправильных отклоняется на входе
	router := newTestRouter(new(MockQuestionStorage), new(MockBookStorage), new(MockBuddyStorage))

	body, _ := json.Marshal(CreateQuestionRequest{
		QuestionText:  "вопрос",
		CorrectAnswer: "да",
		WrongAnswers:  []string{"нет", "да"},
	})

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/questions/book/42", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteQuestion_NotFound(t *testing.T) {
	// Arrange
	q := new(MockQuestionStorage)
	q.On("Delete", mock.Anything, uint(99)).Return(apperrors.ErrNotFound)
	router := newTestRouter(q, new(MockBookStorage), new(MockBuddyStorage))

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/questions/99", nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkBookStudied(t *testing.T) {
	// Arrange
	b := new(MockBookStorage)
	b.On("MarkStudied", mock.Anything, uint(5)).Return(&entity.Book{ID: 5, Title: "Химия"}, nil)
	router := newTestRouter(new(MockQuestionStorage), b, new(MockBuddyStorage))

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/books/5/study", nil)
	router.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var book entity.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, uint(5), book.ID)
}

func TestGenerateLesson(t *testing.T) {
	// Arrange
	q := new(MockQuestionStorage)
	q.On("CreateBatch", mock.Anything, mock.MatchedBy(func(questions []entity.Question) bool {
		return len(questions) == 3 && questions[0].BookID == 42
	})).Return(nil)
	b := new(MockBookStorage)
	b.On("GetByID", mock.Anything, uint(42)).Return(&entity.Book{ID: 42, Title: "Биология"}, nil)
	router := newTestRouter(q, b, new(MockBuddyStorage))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", "page1.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("book_id", "42"))
	require.NoError(t, writer.Close())

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-lesson/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusAccepted, w.Code)
	q.AssertExpectations(t)
}

func TestGenerateLesson_MissingFiles(t *testing.T) {
	// Arrange
	router := newTestRouter(new(MockQuestionStorage), new(MockBookStorage), new(MockBuddyStorage))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("book_id", "42"))
	require.NoError(t, writer.Close())

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-lesson/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBuddy(t *testing.T) {
	// Arrange
	bd := new(MockBuddyStorage)
	bd.On("Get", mock.Anything, uint(3), uint(9)).Return(&entity.Buddy{ID: 9, UserID: 3, Name: "Ракета", Species: "raccoon"}, nil)
	router := newTestRouter(new(MockQuestionStorage), new(MockBookStorage), bd)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tomadachi/3/9", nil)
	router.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var buddy entity.Buddy
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buddy))
	assert.Equal(t, "raccoon", buddy.Species)
}

func TestUpdateBuddy_PatchVerb(t *testing.T) {
	// Arrange
	bd := new(MockBuddyStorage)
	bd.On("Update", mock.Anything, uint(3), uint(9), mock.MatchedBy(func(u repository.BuddyUpdate) bool {
		return u.Name != nil && *u.Name == "Комета"
	})).Return(&entity.Buddy{ID: 9, UserID: 3, Name: "Комета", Species: "raccoon"}, nil)
	router := newTestRouter(new(MockQuestionStorage), new(MockBookStorage), bd)

	body, _ := json.Marshal(map[string]string{"name": "Комета"})

	// Act: клиент обновляет питомца через PATCH, как и книги
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/tomadachi/3/9", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	bd.AssertExpectations(t)

	// PUT больше не маршрутизируется
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/tomadachi/3/9", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
