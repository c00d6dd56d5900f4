package pantry

// Category classifies an item. The set is closed: only the values listed in
// Categories are valid.
type Category string

const (
	Fruits     Category = "Fruits"
	Vegetables Category = "Vegetables"
	Dairy      Category = "Dairy"
	Meat       Category = "Meat"
	Grains     Category = "Grains"
	Snacks     Category = "Snacks"
)

// Categories lists every valid category in display order. Validation and
// every UI enumeration read from here.
var Categories = []Category{Fruits, Vegetables, Dairy, Meat, Grains, Snacks}

// IsValid reports whether c is one of Categories (exact, case-sensitive).
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category named s, or false when s is not in
// the set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.IsValid()
}

// CategoryNames returns Categories as plain strings.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}
