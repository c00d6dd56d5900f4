package pantry

import (
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// Patch is a partial update of the mutable fields of an Item. Nil fields
// are left untouched. A patch cannot express a change of
// ID or OwnerID.
type Patch struct {
	Name           *string     `json:"name,omitempty"`
	Quantity       *string     `json:"quantity,omitempty"`
	ExpirationDate *timex.Date `json:"expirationDate,omitempty"`
	Category       *Category   `json:"category,omitempty"`
	ImageURL       *string     `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Quantity == nil && p.ExpirationDate == nil &&
		p.Category == nil && p.ImageURL == nil
}

// Validate applies the rules of Validate to the fields present in p. Since
// a stored item is always valid, a patch that passes yields a valid item.
func (p Patch) Validate() error {
	var fields []string
	if p.Name != nil && isBlank(*p.Name) {
		fields = append(fields, FieldName)
	}
	if p.Quantity != nil && isBlank(*p.Quantity) {
		fields = append(fields, FieldQuantity)
	}
	if p.ExpirationDate != nil && p.ExpirationDate.IsZero() {
		fields = append(fields, FieldExpirationDate)
	}
	if p.Category != nil && !p.Category.IsValid() {
		fields = append(fields, FieldCategory)
	}
	if len(fields) > 0 {
		return &common.ValidationError{Fields: fields}
	}
	return nil
}

// Apply returns a copy of item with the patch applied. ID and OwnerID are
// carried over unchanged.
func (p Patch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.ExpirationDate != nil {
		item.ExpirationDate = *p.ExpirationDate
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	return item
}
