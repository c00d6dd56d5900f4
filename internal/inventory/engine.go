// Package inventory holds the authoritative in-memory view of one user's
// pantry and mediates every mutation through a Store.
//
// An Engine is not safe for concurrent use; it expects at most one call in
// flight. The server serializes access per session.
package inventory

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
)

type Engine struct {
	store   Store
	logger  logging.Logger
	ownerID string
	items   []pantry.Item
}

var _ AuthListener = (*Engine)(nil)

func NewEngine(store Store, logger logging.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger.With("module", "inventory"),
	}
}

// OwnerID returns the user the collection belongs to, or "" when cleared.
func (e *Engine) OwnerID() string {
	return e.ownerID
}

// LoadFor replaces the collection with every item owned by ownerID. When the
// fetch fails the collection is left empty and the error is returned.
func (e *Engine) LoadFor(ctx context.Context, ownerID string) error {
	e.ownerID = ownerID
	e.items = nil

	items, err := e.store.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		e.logger.Error(ctx, "load failed", "owner", ownerID, "error", err)
		return common.NewStoreError("list", err)
	}

	e.items = items
	e.logger.Debug(ctx, "loaded", "owner", ownerID, "count", len(items))
	return nil
}

// Clear drops the collection and the owner, as on logout.
func (e *Engine) Clear() {
	e.ownerID = ""
	e.items = nil
}

// OnAuthChange loads the new user's items, or clears state when ownerID is
// empty.
func (e *Engine) OnAuthChange(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		e.Clear()
		return nil
	}
	return e.LoadFor(ctx, ownerID)
}

// List returns a copy of the collection in arrival order.
func (e *Engine) List() []pantry.Item {
	return slices.Clone(e.items)
}

// Add validates candidate, stamps the owner, persists it and appends the
// stored item. Invalid candidates never reach the store.
func (e *Engine) Add(ctx context.Context, candidate pantry.Item) (pantry.Item, error) {
	if e.ownerID == "" {
		return pantry.Item{}, common.ErrorUnauthorized
	}
	if err := pantry.Validate(candidate); err != nil {
		return pantry.Item{}, err
	}

	candidate.ID = ""
	candidate.OwnerID = e.ownerID

	stored, err := e.store.CreateItem(ctx, candidate)
	if err != nil {
		e.logger.Error(ctx, "create failed", "owner", e.ownerID, "error", err)
		return pantry.Item{}, common.NewStoreError("create", err)
	}
	if stored.ID == "" {
		return pantry.Item{}, common.NewStoreError("create", fmt.Errorf("store returned no id"))
	}
	// The owner is fixed by the engine, not by what the store echoes back.
	stored.OwnerID = e.ownerID

	e.items = append(e.items, stored)
	e.logger.Info(ctx, "item added", "owner", e.ownerID, "id", stored.ID)
	return stored, nil
}

// Update applies patch to item id. The patch is validated with the same
// rules as Add; ID and OwnerID are never touched. After the write the item
// is read back, so the returned value and the local copy carry what the
// store persisted (UpdatedAt included). Any error leaves the collection
// unchanged.
func (e *Engine) Update(ctx context.Context, id string, patch pantry.Patch) (pantry.Item, error) {
	if e.ownerID == "" {
		return pantry.Item{}, common.ErrorUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return pantry.Item{}, err
	}

	if err := e.store.UpdateItem(ctx, e.ownerID, id, patch); err != nil {
		e.logger.Error(ctx, "update failed", "owner", e.ownerID, "id", id, "error", err)
		return pantry.Item{}, common.NewStoreError("update", err)
	}

	persisted, err := e.store.GetItem(ctx, e.ownerID, id)
	if err != nil {
		e.logger.Error(ctx, "read back failed", "owner", e.ownerID, "id", id, "error", err)
		return pantry.Item{}, common.NewStoreError("get", err)
	}
	persisted.OwnerID = e.ownerID

	if i := e.indexOf(id); i >= 0 {
		e.items[i] = persisted
		e.logger.Info(ctx, "item updated", "owner", e.ownerID, "id", id)
		return persisted, nil
	}

	// Written by another session since our last load: refetch to pick it up.
	items, err := e.store.ListItemsByOwner(ctx, e.ownerID)
	if err != nil {
		return pantry.Item{}, common.NewStoreError("list", err)
	}
	if i := slices.IndexFunc(items, func(it pantry.Item) bool { return it.ID == id }); i >= 0 {
		items[i] = persisted
	} else {
		items = append(items, persisted)
	}
	e.items = items
	e.logger.Info(ctx, "item updated after reload", "owner", e.ownerID, "id", id)
	return persisted, nil
}

// Delete removes item id from the store and then from the collection. A
// missing id is reported as a StoreError wrapping common.ErrorNotFound.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if e.ownerID == "" {
		return common.ErrorUnauthorized
	}

	if err := e.store.DeleteItem(ctx, e.ownerID, id); err != nil {
		e.logger.Error(ctx, "delete failed", "owner", e.ownerID, "id", id, "error", err)
		return common.NewStoreError("delete", err)
	}

	if i := e.indexOf(id); i >= 0 {
		e.items = slices.Delete(e.items, i, i+1)
	}
	e.logger.Info(ctx, "item deleted", "owner", e.ownerID, "id", id)
	return nil
}

func (e *Engine) indexOf(id string) int {
	return slices.IndexFunc(e.items, func(it pantry.Item) bool {
		return it.ID == id
	})
}
