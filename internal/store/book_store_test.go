package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
)

// MockBookRepo реализует repository.BookRepository
type MockBookRepo struct {
	mock.Mock
}

func (m *MockBookRepo) List(ctx context.Context) ([]entity.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Book), args.Error(1)
}

func (m *MockBookRepo) Create(ctx context.Context, draft repository.BookDraft) (*entity.Book, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepo) Update(ctx context.Context, bookID uint, updates repository.BookUpdate) (*entity.Book, error) {
	args := m.Called(ctx, bookID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookRepo) Delete(ctx context.Context, bookID uint) error {
	args := m.Called(ctx, bookID)
	return args.Error(0)
}

func (m *MockBookRepo) MarkStudied(ctx context.Context, bookID uint) (*entity.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func sampleBooks() []entity.Book {
	return []entity.Book{
		{ID: 1, UserID: 3, Title: "Биология", Category: "science"},
		{ID: 2, UserID: 3, Title: "История", Category: "history"},
	}
}

func TestBookStore_Fetch(t *testing.T) {
	// Arrange
	repo := new(MockBookRepo)
	repo.On("List", mock.Anything).Return(sampleBooks(), nil)
	s := NewBookStore(repo)

	// Act
	require.NoError(t, s.Fetch(context.Background()))

	// Assert
	assert.Len(t, s.Books(), 2)
	assert.False(t, s.Loading())
}

func TestBookStore_Fetch_FailureKeepsState(t *testing.T) {
	// Arrange
	repo := new(MockBookRepo)
	repo.On("List", mock.Anything).Return(sampleBooks(), nil).Once()
	repo.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()
	s := NewBookStore(repo)
	require.NoError(t, s.Fetch(context.Background()))

	// Act & Assert
	assert.Error(t, s.Fetch(context.Background()))
	assert.Len(t, s.Books(), 2, "при ошибке загрузки прежний список остается")
}

func TestBookStore_MarkStudied_MergesTimestamp(t *testing.T) {
	// Arrange
	repo := new(MockBookRepo)
	repo.On("List", mock.Anything).Return(sampleBooks(), nil)
	studied := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	repo.On("MarkStudied", mock.Anything, uint(1)).Return(&entity.Book{
		ID: 1, UserID: 3, Title: "Биология", Category: "science", LastStudied: studied,
	}, nil)
	s := NewBookStore(repo)
	require.NoError(t, s.Fetch(context.Background()))

	// Act
	_, err := s.MarkStudied(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	book, ok := s.Get(1)
	require.True(t, ok)
	assert.True(t, book.LastStudied.Equal(studied))
}

func TestBookStore_Delete(t *testing.T) {
	// Arrange
	repo := new(MockBookRepo)
	repo.On("List", mock.Anything).Return(sampleBooks(), nil)
	repo.On("Delete", mock.Anything, uint(2)).Return(nil)
	s := NewBookStore(repo)
	require.NoError(t, s.Fetch(context.Background()))

	// Act
	require.NoError(t, s.Delete(context.Background(), 2))

	// Assert
	_, ok := s.Get(2)
	assert.False(t, ok)
	assert.Len(t, s.Books(), 1)
}
