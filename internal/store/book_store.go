package store

import (
	"context"
	"log"
	"sync"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
)

// BookStore владеет локальным зеркалом списка книг пользователя.
// Та же дисциплина, что у QuestionStore: зеркало мутируется только после
// подтверждения удаленного вызова, ошибки логируются и возвращаются.
type BookStore struct {
	repo repository.BookRepository

	mu      sync.RWMutex
	books   []entity.Book
	loading bool
}

// NewBookStore создает хранилище книг
func NewBookStore(repo repository.BookRepository) *BookStore {
	return &BookStore{repo: repo}
}

// Fetch полностью заменяет зеркало списком книг с бэкенда
func (s *BookStore) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	books, err := s.repo.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		log.Printf("[BookStore] Не удалось загрузить книги: %v", err)
		return err
	}
	s.books = books
	return nil
}

// Add создает книгу и добавляет ответ сервера в зеркало
func (s *BookStore) Add(ctx context.Context, draft repository.BookDraft) (*entity.Book, error) {
	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		log.Printf("[BookStore] Не удалось создать книгу: %v", err)
		return nil, err
	}

	s.mu.Lock()
	s.books = append(s.books, *created)
	s.mu.Unlock()
	return created, nil
}

// Update частично обновляет книгу и вливает ответ сервера в зеркало
func (s *BookStore) Update(ctx context.Context, bookID uint, updates repository.BookUpdate) (*entity.Book, error) {
	updated, err := s.repo.Update(ctx, bookID, updates)
	if err != nil {
		log.Printf("[BookStore] Не удалось обновить книгу #%d: %v", bookID, err)
		return nil, err
	}

	s.merge(*updated)
	return updated, nil
}

// Delete удаляет книгу и убирает ее из зеркала после подтверждения
func (s *BookStore) Delete(ctx context.Context, bookID uint) error {
	if err := s.repo.Delete(ctx, bookID); err != nil {
		log.Printf("[BookStore] Не удалось удалить книгу #%d: %v", bookID, err)
		return err
	}

	s.mu.Lock()
	filtered := s.books[:0]
	for _, b := range s.books {
		if b.ID != bookID {
			filtered = append(filtered, b)
		}
	}
	s.books = filtered
	s.mu.Unlock()
	return nil
}

// MarkStudied обновляет отметку последнего занятия и вливает ее в зеркало
func (s *BookStore) MarkStudied(ctx context.Context, bookID uint) (*entity.Book, error) {
	updated, err := s.repo.MarkStudied(ctx, bookID)
	if err != nil {
		log.Printf("[BookStore] Не удалось отметить занятие по книге #%d: %v", bookID, err)
		return nil, err
	}

	s.merge(*updated)
	return updated, nil
}

// merge заменяет запись зеркала по идентификатору; отсутствующая запись — no-op
func (s *BookStore) merge(book entity.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = book
			return
		}
	}
}

// Books возвращает копию зеркала
func (s *BookStore) Books() []entity.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Get возвращает книгу из зеркала по идентификатору
func (s *BookStore) Get(bookID uint) (*entity.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.books {
		if s.books[i].ID == bookID {
			b := s.books[i]
			return &b, true
		}
	}
	return nil, false
}

// Loading сообщает, идет ли сейчас загрузка списка
func (s *BookStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
