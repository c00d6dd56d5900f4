package repomanager

import (
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/items"
)

// MemoryRepositoryManager keeps accounts in an in-memory SQLite database
// and items in a process-wide items.MemoryRepository.
type MemoryRepositoryManager struct {
	*SQLRepositoryManager
	items *items.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		SQLRepositoryManager: NewSQLRepositoryManager(dbx.SQLite),
		items:                items.NewMemoryRepository(),
	}
}

// Items ignores db; memory items are not transactional.
func (m *MemoryRepositoryManager) Items(dbx.DBTX) items.Repository {
	return m.items
}
