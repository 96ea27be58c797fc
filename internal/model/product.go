package model

const (
	CategoryClassic   = "Classic"
	CategorySignature = "Signature"
	CategoryVegan     = "Vegan"
	CategoryLimited   = "Limited"
)

// Product is a catalog entry. Products are seeded at startup and
// read-only afterwards; inventory is informational and never decremented
// by order creation.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Inventory   int      `json:"inventory"`
	Tags        []string `json:"tags"`
}

// ValidCategory reports whether c is one of the catalog categories
func ValidCategory(c string) bool {
	switch c {
	case CategoryClassic, CategorySignature, CategoryVegan, CategoryLimited:
		return true
	}
	return false
}
