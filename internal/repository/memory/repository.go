package memory

import (
	"context"
	"sort"
	"sync"

	"instamailer/internal/model"
	"instamailer/internal/repository"
)

// InMemoryDraftRepository keeps drafts in a map guarded by a mutex. It backs
// runs without a database file and the service tests.
type InMemoryDraftRepository struct {
	mu     sync.RWMutex
	drafts map[int64]*model.Draft
	nextID int64
}

func NewInMemoryDraftRepository() *InMemoryDraftRepository {
	return &InMemoryDraftRepository{
		drafts: make(map[int64]*model.Draft),
		nextID: 1,
	}
}

func (r *InMemoryDraftRepository) Create(ctx context.Context, draft *model.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft.ID = r.nextID
	r.nextID++

	stored := *draft
	r.drafts[draft.ID] = &stored
	return nil
}

func (r *InMemoryDraftRepository) FindByID(ctx context.Context, id int64) (*model.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	draft, exists := r.drafts[id]
	if !exists {
		return nil, repository.ErrNotFound
	}

	found := *draft
	return &found, nil
}

func (r *InMemoryDraftRepository) FindAll(ctx context.Context) ([]*model.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drafts := make([]*model.Draft, 0, len(r.drafts))
	for _, draft := range r.drafts {
		found := *draft
		drafts = append(drafts, &found)
	}

	// Newest first; equal timestamps fall back to insertion order.
	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].CreatedAt.Equal(drafts[j].CreatedAt) {
			return drafts[i].ID > drafts[j].ID
		}
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})

	return drafts, nil
}

func (r *InMemoryDraftRepository) Update(ctx context.Context, draft *model.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drafts[draft.ID]; !exists {
		return repository.ErrNotFound
	}

	stored := *draft
	r.drafts[draft.ID] = &stored
	return nil
}

func (r *InMemoryDraftRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drafts[id]; !exists {
		return repository.ErrNotFound
	}

	delete(r.drafts, id)
	return nil
}
