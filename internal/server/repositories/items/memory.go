package items

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/google/uuid"
)

// MemoryRepository keeps items in process memory. It is safe for
// concurrent use and loses everything on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]pantry.Item
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byOwner: make(map[string][]pantry.Item)}
}

func (r *MemoryRepository) CreateItem(_ context.Context, item pantry.Item) (pantry.Item, error) {
	now := timeNow().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOwner[item.OwnerID] = append(r.byOwner[item.OwnerID], item)
	return item, nil
}

func (r *MemoryRepository) ListItemsByOwner(_ context.Context, ownerID string) ([]pantry.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.byOwner[ownerID])
	if out == nil {
		out = []pantry.Item{}
	}
	return out, nil
}

func (r *MemoryRepository) GetItem(_ context.Context, ownerID, id string) (pantry.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(ownerID, id)
	if i < 0 {
		return pantry.Item{}, common.ErrorNotFound
	}
	return r.byOwner[ownerID][i], nil
}

func (r *MemoryRepository) UpdateItem(_ context.Context, ownerID, id string, patch pantry.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(ownerID, id)
	if i < 0 {
		return common.ErrorNotFound
	}
	item := patch.Apply(r.byOwner[ownerID][i])
	item.UpdatedAt = timeNow().UTC()
	r.byOwner[ownerID][i] = item
	return nil
}

func (r *MemoryRepository) DeleteItem(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(ownerID, id)
	if i < 0 {
		return common.ErrorNotFound
	}
	r.byOwner[ownerID] = slices.Delete(r.byOwner[ownerID], i, i+1)
	return nil
}

func (r *MemoryRepository) indexOf(ownerID, id string) int {
	return slices.IndexFunc(r.byOwner[ownerID], func(it pantry.Item) bool { return it.ID == id })
}
