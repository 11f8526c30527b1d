package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
)

// BuddyRepo реализует repository.BuddyRepository поверх REST API.
// На бэкенде ресурс питомца называется tomadachi.
type BuddyRepo struct {
	client *Client
}

// NewBuddyRepo создает репозиторий питомца поверх HTTP-клиента
func NewBuddyRepo(client *Client) *BuddyRepo {
	return &BuddyRepo{client: client}
}

// Create создает питомца; уровень и опыт назначает бэкенд
func (r *BuddyRepo) Create(ctx context.Context, draft repository.BuddyDraft) (*entity.Buddy, error) {
	var created entity.Buddy
	if err := r.client.doJSON(ctx, http.MethodPost, "/api/tomadachi", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get возвращает питомца пользователя
func (r *BuddyRepo) Get(ctx context.Context, userID, buddyID uint) (*entity.Buddy, error) {
	var buddy entity.Buddy
	path := fmt.Sprintf("/api/tomadachi/%d/%d", userID, buddyID)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &buddy); err != nil {
		return nil, err
	}
	return &buddy, nil
}

// Update частично обновляет питомца
func (r *BuddyRepo) Update(ctx context.Context, userID, buddyID uint, updates repository.BuddyUpdate) (*entity.Buddy, error) {
	var updated entity.Buddy
	path := fmt.Sprintf("/api/tomadachi/%d/%d", userID, buddyID)
	if err := r.client.doJSON(ctx, http.MethodPatch, path, updates, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет питомца
func (r *BuddyRepo) Delete(ctx context.Context, userID, buddyID uint) error {
	path := fmt.Sprintf("/api/tomadachi/%d/%d", userID, buddyID)
	return r.client.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
