package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps items in a map and counts calls so tests can assert the
// store was (or was not) touched.
type fakeStore struct {
	items  map[string]pantry.Item
	order  []string
	nextID int

	createErr error
	listErr   error
	updateErr error
	getErr    error
	deleteErr error

	// afterUpdate runs once a write succeeded, before the engine reads back.
	afterUpdate func()
	ticks       int

	creates, lists, updates, gets, deletes int
}

func newFakeStore(items ...pantry.Item) *fakeStore {
	s := &fakeStore{items: map[string]pantry.Item{}}
	for _, it := range items {
		s.items[it.ID] = it
		s.order = append(s.order, it.ID)
	}
	return s
}

func (s *fakeStore) CreateItem(_ context.Context, item pantry.Item) (pantry.Item, error) {
	s.creates++
	if s.createErr != nil {
		return pantry.Item{}, s.createErr
	}
	s.nextID++
	item.ID = fmt.Sprintf("id-%d", s.nextID)
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return item, nil
}

func (s *fakeStore) ListItemsByOwner(_ context.Context, ownerID string) ([]pantry.Item, error) {
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []pantry.Item
	for _, id := range s.order {
		if it, ok := s.items[id]; ok && it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateItem(_ context.Context, ownerID, id string, patch pantry.Patch) error {
	s.updates++
	if s.updateErr != nil {
		return s.updateErr
	}
	it, ok := s.items[id]
	if !ok || it.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	s.ticks++
	updated := patch.Apply(it)
	updated.UpdatedAt = time.Date(2025, time.March, 10, 8, 30, s.ticks, 0, time.UTC)
	s.items[id] = updated
	if s.afterUpdate != nil {
		s.afterUpdate()
	}
	return nil
}

func (s *fakeStore) GetItem(_ context.Context, ownerID, id string) (pantry.Item, error) {
	s.gets++
	if s.getErr != nil {
		return pantry.Item{}, s.getErr
	}
	it, ok := s.items[id]
	if !ok || it.OwnerID != ownerID {
		return pantry.Item{}, common.ErrorNotFound
	}
	return it, nil
}

func (s *fakeStore) DeleteItem(_ context.Context, ownerID, id string) error {
	s.deletes++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	it, ok := s.items[id]
	if !ok || it.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(s.items, id)
	return nil
}

var today = timex.DateOf(time.Now())

func candidate(name string, c pantry.Category) pantry.Item {
	return pantry.Item{Name: name, Quantity: "2", ExpirationDate: today.AddDays(5), Category: c}
}

func stored(id, owner, name string) pantry.Item {
	it := candidate(name, pantry.Dairy)
	it.ID = id
	it.OwnerID = owner
	return it
}

func newLoadedEngine(t *testing.T, s *fakeStore, owner string) *Engine {
	t.Helper()
	e := NewEngine(s, logging.NewNopLogger())
	require.NoError(t, e.LoadFor(context.Background(), owner))
	return e
}

func TestLoadFor_OnlyOwnersItems(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"), stored("b", "u2", "Cheese"), stored("c", "u1", "Yogurt"))
	e := newLoadedEngine(t, s, "u1")

	got := e.List()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	for _, it := range got {
		assert.Equal(t, "u1", it.OwnerID)
	}
	assert.Equal(t, "u1", e.OwnerID())
}

func TestLoadFor_FailureLeavesEmptyCollection(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	require.Len(t, e.List(), 1)

	s.listErr = errors.New("unavailable")
	err := e.LoadFor(context.Background(), "u1")

	var se *common.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list", se.Op)
	assert.Empty(t, e.List())
}

func TestAdd_ValidCandidate(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	before := e.List()

	c := candidate("Rice", pantry.Grains)
	c.ID = "client-chosen"
	c.OwnerID = "someone-else"
	got, err := e.Add(context.Background(), c)
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.NotEqual(t, "client-chosen", got.ID)
	assert.Equal(t, "u1", got.OwnerID)

	after := e.List()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, got, after[len(after)-1])
	assert.Equal(t, "u1", s.items[got.ID].OwnerID)
}

func TestAdd_InvalidCandidateNeverReachesStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*pantry.Item)
	}{
		{"no name", func(i *pantry.Item) { i.Name = "" }},
		{"no quantity", func(i *pantry.Item) { i.Quantity = "" }},
		{"no expiration", func(i *pantry.Item) { i.ExpirationDate = timex.Date{} }},
		{"no category", func(i *pantry.Item) { i.Category = "" }},
		{"bad category", func(i *pantry.Item) { i.Category = "InvalidCategory" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeStore(stored("a", "u1", "Milk"))
			e := newLoadedEngine(t, s, "u1")
			before := e.List()

			c := candidate("Rice", pantry.Grains)
			tt.mutate(&c)
			_, err := e.Add(context.Background(), c)

			assert.True(t, errors.Is(err, common.ErrorValidation))
			assert.Equal(t, 0, s.creates)
			assert.Equal(t, before, e.List())
		})
	}
}

func TestAdd_StoreFailureLeavesCollection(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	s.createErr = errors.New("permission denied")

	_, err := e.Add(context.Background(), candidate("Rice", pantry.Grains))

	var se *common.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "create", se.Op)
	assert.Len(t, e.List(), 1)
}

func TestMutations_RequireOwner(t *testing.T) {
	e := NewEngine(newFakeStore(), logging.NewNopLogger())
	ctx := context.Background()

	_, err := e.Add(ctx, candidate("Rice", pantry.Grains))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = e.Update(ctx, "a", pantry.Patch{})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, e.Delete(ctx, "a"), common.ErrorUnauthorized)
}

func TestUpdate_InPlace(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"), stored("b", "u1", "Butter"))
	e := newLoadedEngine(t, s, "u1")

	name := "Whole milk"
	qty := "3 l"
	got, err := e.Update(context.Background(), "a", pantry.Patch{Name: &name, Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "u1", got.OwnerID)
	assert.Equal(t, "Whole milk", got.Name)
	assert.Equal(t, "3 l", got.Quantity)
	assert.Equal(t, s.items["a"], e.List()[0], "local copy matches the persisted item")
	assert.Equal(t, 1, s.lists, "no reload needed")
}

func TestUpdate_ReturnsPersistedTimestamp(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")

	name := "Oat milk"
	first, err := e.Update(context.Background(), "a", pantry.Patch{Name: &name})
	require.NoError(t, err)
	assert.False(t, first.UpdatedAt.IsZero())
	assert.Equal(t, s.items["a"], first)

	qty := "1 l"
	second, err := e.Update(context.Background(), "a", pantry.Patch{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, s.items["a"], second)
	assert.Equal(t, second, e.List()[0])
}

func TestUpdate_ReadBackFailureLeavesCollection(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	before := e.List()
	s.getErr = errors.New("connection reset")

	name := "Cream"
	_, err := e.Update(context.Background(), "a", pantry.Patch{Name: &name})

	var se *common.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, before, e.List())
}

func TestUpdate_ItemGoneAfterWriteLeavesCollection(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")

	// Another session writes b and removes it again before we read back.
	s.items["b"] = stored("b", "u1", "Eggs")
	s.order = append(s.order, "b")
	s.afterUpdate = func() { delete(s.items, "b") }
	before := e.List()

	qty := "6"
	_, err := e.Update(context.Background(), "b", pantry.Patch{Quantity: &qty})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, before, e.List())
	assert.Equal(t, 1, s.lists, "no reload after a failed read back")
}

func TestUpdate_ReloadFailureLeavesCollection(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")

	s.items["b"] = stored("b", "u1", "Eggs")
	s.order = append(s.order, "b")
	s.listErr = errors.New("timeout")
	before := e.List()

	qty := "6"
	_, err := e.Update(context.Background(), "b", pantry.Patch{Quantity: &qty})
	var se *common.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, before, e.List())
}

func TestUpdate_InvalidCategoryRejected(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	before := e.List()

	bad := pantry.Category("InvalidCategory")
	_, err := e.Update(context.Background(), "a", pantry.Patch{Category: &bad})

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{pantry.FieldCategory}, ve.Fields)
	assert.Equal(t, 0, s.updates)
	assert.Equal(t, before, e.List())
	assert.Equal(t, pantry.Dairy, s.items["a"].Category)
}

func TestUpdate_NotFound(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"), stored("x", "u2", "Foreign"))
	e := newLoadedEngine(t, s, "u1")
	before := e.List()

	name := "n"
	for _, id := range []string{"missing", "x"} {
		_, err := e.Update(context.Background(), id, pantry.Patch{Name: &name})
		assert.ErrorIs(t, err, common.ErrorNotFound)
		var se *common.StoreError
		assert.True(t, errors.As(err, &se))
	}
	assert.Equal(t, before, e.List())
	assert.Equal(t, "Foreign", s.items["x"].Name)
}

func TestUpdate_StoreFailureLeavesCollection(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	s.updateErr = errors.New("timeout")

	name := "Cream"
	_, err := e.Update(context.Background(), "a", pantry.Patch{Name: &name})
	require.Error(t, err)
	assert.Equal(t, "Milk", e.List()[0].Name)
}

func TestUpdate_ItemAddedElsewhereTriggersReload(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")

	// Another session writes directly to the store.
	s.items["b"] = stored("b", "u1", "Eggs")
	s.order = append(s.order, "b")

	qty := "12"
	got, err := e.Update(context.Background(), "b", pantry.Patch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "12", got.Quantity)
	assert.Len(t, e.List(), 2)
	assert.Equal(t, got, e.List()[1])
	assert.Equal(t, 2, s.lists)
}

func TestDelete(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"), stored("b", "u1", "Eggs"))
	e := newLoadedEngine(t, s, "u1")
	snapshot := e.List()

	require.NoError(t, e.Delete(context.Background(), "a"))

	got := e.List()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Len(t, snapshot, 2, "earlier snapshots are unaffected")
	_, ok := s.items["a"]
	assert.False(t, ok)
}

func TestDelete_MissingIDIsStoreError(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")
	before := e.List()

	err := e.Delete(context.Background(), "nope")

	var se *common.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "delete", se.Op)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, before, e.List())
}

func TestOnAuthChange(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"), stored("b", "u2", "Eggs"))
	e := NewEngine(s, logging.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, e.OnAuthChange(ctx, "u1"))
	assert.Len(t, e.List(), 1)

	require.NoError(t, e.OnAuthChange(ctx, "u2"))
	require.Len(t, e.List(), 1)
	assert.Equal(t, "b", e.List()[0].ID)

	require.NoError(t, e.OnAuthChange(ctx, ""))
	assert.Empty(t, e.List())
	assert.Equal(t, "", e.OwnerID())
}

func TestList_ReturnsCopy(t *testing.T) {
	s := newFakeStore(stored("a", "u1", "Milk"))
	e := newLoadedEngine(t, s, "u1")

	got := e.List()
	got[0].Name = "changed"
	assert.Equal(t, "Milk", e.List()[0].Name)
}
