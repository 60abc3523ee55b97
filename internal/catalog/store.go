package catalog

import "context"

// Store keeps products in insertion order. Get, Replace and Delete report a
// missing id through their bool result; errors are infrastructure failures.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Create(ctx context.Context, f Fields) (Product, error)
	Replace(ctx context.Context, id int64, f Fields) (Product, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Ping(ctx context.Context) error
}

func NewStore() Store {
	return NewMemStore()
}

func distinctCategories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, 8)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
