// Package items persists pantry items. Every implementation satisfies
// inventory.Store, the adapter the inventory engine talks to.
package items

import "github.com/dmitrijs2005/pantrykeeper/internal/inventory"

type Repository interface {
	inventory.Store
}
