package catalog

import "context"

// Entry pairs a product with its derived key. Listing preserves feed order
// so clients render the catalog the way the vendor sequenced it.
type Entry struct {
	Key     string
	Product Product
}

type Store interface {
	ReplaceAll(ctx context.Context, products []Product) error
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, key string) (Product, bool, error)
	Ping(ctx context.Context) error
}

// DemoCatalog is served when no vendor feed is configured. The shapes are
// intentionally uneven, mirroring what the real feed sends.
func DemoCatalog() []Product {
	return []Product{
		{
			"id":          "aq-001",
			"title":       "Coral Reef Water Bottle",
			"price":       24.5,
			"description": "Insulated 750ml bottle with coral print.",
			"images": []any{
				map[string]any{"url": "https://cdn.aquakart.dev/aq-001/front.jpg"},
				map[string]any{"url": "https://cdn.aquakart.dev/aq-001/side.jpg"},
			},
		},
		{
			"sku":          "aq-014",
			"name":         "Tidal Swim Goggles",
			"sellingPrice": 18.0,
			"summary":      "Anti-fog goggles, adjustable strap.",
			"thumbnail":    "https://cdn.aquakart.dev/aq-014/thumb.jpg",
		},
		{
			"_id":  "aq-022",
			"name": "Driftwood Beach Towel",
			"mrp":  32.0,
		},
	}
}
