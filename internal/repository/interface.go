package repository

import (
	"context"
	"errors"

	"instamailer/internal/model"
)

// ErrNotFound is returned when a draft id does not exist in the store.
var ErrNotFound = errors.New("draft not found")

// DraftRepository defines the interface for draft data operations
type DraftRepository interface {
	// Create inserts the draft and assigns its ID.
	Create(ctx context.Context, draft *model.Draft) error
	FindByID(ctx context.Context, id int64) (*model.Draft, error)
	// FindAll returns every draft ordered by created_at descending.
	FindAll(ctx context.Context) ([]*model.Draft, error)
	Update(ctx context.Context, draft *model.Draft) error
	Delete(ctx context.Context, id int64) error
}
