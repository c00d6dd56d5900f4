package views

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// Status is the derived expiration state of an item. It is never stored.
type Status int

const (
	Fresh Status = iota
	Expired
)

func (s Status) String() string {
	switch s {
	case Expired:
		return "expired"
	default:
		return "fresh"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStatus accepts "fresh" or "expired".
func ParseStatus(s string) (Status, error) {
	switch s {
	case "fresh":
		return Fresh, nil
	case "expired":
		return Expired, nil
	default:
		return Fresh, fmt.Errorf("unknown status %q", s)
	}
}

// ClassifyExpiration returns Expired when the item's expiration date is
// strictly before the calendar date of asOf, in asOf's location. An item
// expiring today is still Fresh.
func ClassifyExpiration(item pantry.Item, asOf time.Time) Status {
	if item.ExpirationDate.Before(timex.DateOf(asOf)) {
		return Expired
	}
	return Fresh
}

// FilterByStatus keeps the items classified as status at asOf.
func FilterByStatus(items []pantry.Item, status Status, asOf time.Time) []pantry.Item {
	return filter(items, func(it pantry.Item) bool {
		return ClassifyExpiration(it, asOf) == status
	})
}

// ExpiringWithin returns the fresh items whose expiration date falls within
// the next days days of asOf, today included.
func ExpiringWithin(items []pantry.Item, asOf time.Time, days int) []pantry.Item {
	today := timex.DateOf(asOf)
	limit := today.AddDays(days)
	return filter(items, func(it pantry.Item) bool {
		return !it.ExpirationDate.Before(today) && !it.ExpirationDate.After(limit)
	})
}
