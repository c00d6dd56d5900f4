// Package pantry defines the pantry item entity, its closed category set and
// the validation rules every persisted item satisfies.
package pantry

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// Item is a perishable household item owned by one user.
//
// ID and OwnerID are assigned on creation and never change afterwards.
// Quantity is display text; nothing parses or adds it. An empty ImageURL
// means no image is attached.
type Item struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"ownerId"`
	Name           string     `json:"name"`
	Quantity       string     `json:"quantity"`
	ExpirationDate timex.Date `json:"expirationDate"`
	Category       Category   `json:"category"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	CreatedAt      time.Time  `json:"createdAt,omitzero"`
	UpdatedAt      time.Time  `json:"updatedAt,omitzero"`
}

// Field names reported by ValidationError.
const (
	FieldName           = "name"
	FieldQuantity       = "quantity"
	FieldExpirationDate = "expirationDate"
	FieldCategory       = "category"
)

// Validate checks that the required fields are present and the category is
// known. It returns a *common.ValidationError naming every failing field.
func Validate(item Item) error {
	var fields []string
	if isBlank(item.Name) {
		fields = append(fields, FieldName)
	}
	if isBlank(item.Quantity) {
		fields = append(fields, FieldQuantity)
	}
	if item.ExpirationDate.IsZero() {
		fields = append(fields, FieldExpirationDate)
	}
	if !item.Category.IsValid() {
		fields = append(fields, FieldCategory)
	}
	if len(fields) > 0 {
		return &common.ValidationError{Fields: fields}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
