package devserver

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/studybuddy/internal/domain/entity"
	"github.com/yourusername/studybuddy/internal/domain/repository"
	apperrors "github.com/yourusername/studybuddy/internal/pkg/errors"
)

// BuddyRepo реализует repository.BuddyRepository на PostgreSQL
type BuddyRepo struct {
	db *gorm.DB
}

// NewBuddyRepo создает новый репозиторий питомцев
func NewBuddyRepo(db *gorm.DB) *BuddyRepo {
	return &BuddyRepo{db: db}
}

// Create создает питомца первого уровня без опыта
func (r *BuddyRepo) Create(ctx context.Context, draft repository.BuddyDraft) (*entity.Buddy, error) {
	buddy := &entity.Buddy{
		UserID:  devUserID,
		Name:    draft.Name,
		Species: draft.Species,
		Level:   1,
	}
	if err := r.db.WithContext(ctx).Create(buddy).Error; err != nil {
		return nil, err
	}
	return buddy, nil
}

// Get возвращает питомца пользователя
func (r *BuddyRepo) Get(ctx context.Context, userID, buddyID uint) (*entity.Buddy, error) {
	var buddy entity.Buddy
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&buddy, buddyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &buddy, nil
}

// Update частично обновляет питомца
func (r *BuddyRepo) Update(ctx context.Context, userID, buddyID uint, updates repository.BuddyUpdate) (*entity.Buddy, error) {
	buddy, err := r.Get(ctx, userID, buddyID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		buddy.Name = *updates.Name
	}
	if updates.Species != nil {
		buddy.Species = *updates.Species
	}
	if updates.Level != nil {
		buddy.Level = *updates.Level
	}
	if updates.Experience != nil {
		buddy.Experience = *updates.Experience
	}

	if err := r.db.WithContext(ctx).Save(buddy).Error; err != nil {
		return nil, err
	}
	return buddy, nil
}

// Delete удаляет питомца пользователя
func (r *BuddyRepo) Delete(ctx context.Context, userID, buddyID uint) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.Buddy{}, buddyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
