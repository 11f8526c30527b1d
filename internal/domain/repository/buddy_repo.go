package repository

import (
	"context"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// BuddyDraft содержит поля для создания питомца
type BuddyDraft struct {
	Name    string `json:"name"`
	Species string `json:"species"`
}

// BuddyUpdate содержит частичное обновление питомца; nil-поле означает "не менять"
type BuddyUpdate struct {
	Name       *string `json:"name,omitempty"`
	Species    *string `json:"species,omitempty"`
	Level      *int    `json:"level,omitempty"`
	Experience *int    `json:"experience,omitempty"`
}

// BuddyRepository определяет методы для работы с виртуальным питомцем
type BuddyRepository interface {
	Create(ctx context.Context, draft BuddyDraft) (*entity.Buddy, error)
	Get(ctx context.Context, userID, buddyID uint) (*entity.Buddy, error)
	Update(ctx context.Context, userID, buddyID uint, updates BuddyUpdate) (*entity.Buddy, error)
	Delete(ctx context.Context, userID, buddyID uint) error
}
