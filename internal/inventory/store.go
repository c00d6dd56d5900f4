package inventory

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
)

// Store is the narrow contract the engine needs from the document store.
// Implementations return common.ErrorNotFound when GetItem, UpdateItem or
// DeleteItem match no item with that id owned by ownerID.
type Store interface {
	// CreateItem persists item and returns it with the store-assigned ID.
	CreateItem(ctx context.Context, item pantry.Item) (pantry.Item, error)
	// ListItemsByOwner returns every item owned by ownerID.
	ListItemsByOwner(ctx context.Context, ownerID string) ([]pantry.Item, error)
	// GetItem returns the persisted item.
	GetItem(ctx context.Context, ownerID, id string) (pantry.Item, error)
	// UpdateItem applies patch to the mutable fields of the item.
	UpdateItem(ctx context.Context, ownerID, id string, patch pantry.Patch) error
	// DeleteItem removes the item.
	DeleteItem(ctx context.Context, ownerID, id string) error
}

// AuthListener is notified when the authenticated user changes. An empty
// ownerID means nobody is signed in.
type AuthListener interface {
	OnAuthChange(ctx context.Context, ownerID string) error
}
