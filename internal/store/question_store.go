package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// ErrFetchSuperseded возвращается, когда результат загрузки отброшен,
// потому что за время запроса была запрошена другая книга.
// Побеждает последний запрос, а не последний ответ.
var ErrFetchSuperseded = errors.New("fetch superseded by a newer request")

// QuestionStore владеет локальным зеркалом вопросов одной книги.
// Источник истины — бэкенд; все мутации зеркала происходят только после
// подтверждения удаленного вызова. Зеркало защищено RWMutex: сессии
// викторины читают его, не мутируя.
type QuestionStore struct {
	repo  repository.QuestionRepository
	cache repository.CacheRepository // nil — кеширование снимков выключено
	ttl   time.Duration

	mu        sync.RWMutex
	questions []entity.Question
	bookID    uint
	loading   bool

	// fetchGen растет с каждым вызовом FetchByBook; завершение загрузки
	// с устаревшим номером отбрасывается
	fetchGen uint64
}

// NewQuestionStore создает хранилище вопросов. cache может быть nil.
func NewQuestionStore(repo repository.QuestionRepository, cache repository.CacheRepository, snapshotTTL time.Duration) *QuestionStore {
	return &QuestionStore{
		repo:  repo,
		cache: cache,
		ttl:   snapshotTTL,
	}
}

func snapshotKey(bookID uint) string {
	return fmt.Sprintf("questions:book:%d", bookID)
}

// FetchByBook полностью заменяет зеркало вопросами книги с бэкенда.
// Пока запрос в полете, Loading возвращает true. Если за время запроса
// была запрошена другая книга, устаревший результат отбрасывается
// (ErrFetchSuperseded). При ошибке бэкенда зеркало не трогается, кроме
// случая, когда есть сохраненный снимок: тогда он подставляется и
// возвращается ErrStaleFallback, чтобы вызывающий мог показать, что
// данные несвежие.
func (s *QuestionStore) FetchByBook(ctx context.Context, bookID uint) error {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	questions, err := s.repo.GetByBookID(ctx, bookID)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Снимаем флаг загрузки только для самого свежего запроса:
	// у более нового запроса своя загрузка еще в полете
	if gen == s.fetchGen {
		s.loading = false
	}

	if gen != s.fetchGen {
		log.Printf("[QuestionStore] Результат загрузки книги #%d отброшен: запрошена более новая загрузка", bookID)
		return ErrFetchSuperseded
	}

	if err != nil {
		log.Printf("[QuestionStore] Не удалось загрузить вопросы книги #%d: %v", bookID, err)
		if s.cache != nil {
			var snapshot []entity.Question
			if cacheErr := s.cache.GetJSON(snapshotKey(bookID), &snapshot); cacheErr == nil {
				s.questions = snapshot
				s.bookID = bookID
				log.Printf("[QuestionStore] Подставлен снимок из кеша для книги #%d (%d вопросов)", bookID, len(snapshot))
				return fmt.Errorf("%w: %v", apperrors.ErrStaleFallback, err)
			}
		}
		return err
	}

	s.questions = questions
	s.bookID = bookID

	if s.cache != nil {
		if cacheErr := s.cache.SetJSON(snapshotKey(bookID), questions, s.ttl); cacheErr != nil {
			// Снимок — только подстраховка, ошибка кеша не портит результат
			log.Printf("[QuestionStore] WARNING: не удалось сохранить снимок вопросов книги #%d: %v", bookID, cacheErr)
		}
	}
	return nil
}

// Add создает вопрос на бэкенде и добавляет ответ сервера (с назначенным
// идентификатором) в зеркало. При ошибке зеркало не меняется.
func (s *QuestionStore) Add(ctx context.Context, bookID uint, draft repository.QuestionDraft) (*entity.Question, error) {
	created, err := s.repo.Create(ctx, bookID, draft)
	if err != nil {
		log.Printf("[QuestionStore] Не удалось создать вопрос для книги #%d: %v", bookID, err)
		return nil, err
	}

	s.mu.Lock()
	s.questions = append(s.questions, *created)
	s.mu.Unlock()
	return created, nil
}

// Update частично обновляет вопрос и вливает ответ сервера в зеркало по
// идентификатору. Если вопроса нет в зеркале, локальное состояние не меняется.
func (s *QuestionStore) Update(ctx context.Context, questionID uint, updates repository.QuestionUpdate) (*entity.Question, error) {
	updated, err := s.repo.Update(ctx, questionID, updates)
	if err != nil {
		log.Printf("[QuestionStore] Не удалось обновить вопрос #%d: %v", questionID, err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			s.questions[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete удаляет вопрос на бэкенде и убирает его из зеркала только после
// подтверждения удаления.
func (s *QuestionStore) Delete(ctx context.Context, questionID uint) error {
	if err := s.repo.Delete(ctx, questionID); err != nil {
		log.Printf("[QuestionStore] Не удалось удалить вопрос #%d: %v", questionID, err)
		return err
	}

	s.mu.Lock()
	filtered := s.questions[:0]
	for _, q := range s.questions {
		if q.ID != questionID {
			filtered = append(filtered, q)
		}
	}
	s.questions = filtered
	s.mu.Unlock()
	return nil
}

// Questions возвращает копию зеркала: сессии и экраны читают список,
// не удерживая блокировку хранилища.
func (s *QuestionStore) Questions() []entity.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Len возвращает количество вопросов в зеркале
func (s *QuestionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions)
}

// BookID возвращает книгу, вопросы которой сейчас в зеркале (0 — загрузки не было)
func (s *QuestionStore) BookID() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookID
}

// Loading сообщает, есть ли сейчас актуальная незавершенная загрузка
func (s *QuestionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
