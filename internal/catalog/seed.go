package catalog

import (
	"context"
	"fmt"
)

func intp(v int) *int { return &v }

var SeedProducts = []Fields{
	{Name: "iPhone 14", Category: "Smartphones", Description: "6.1 inch, A15 Bionic, 128 GB", Price: 79990, Stock: 15, Rating: intp(5)},
	{Name: "Samsung Galaxy S23", Category: "Smartphones", Description: "6.6 inch, 256 GB, Snapdragon", Price: 74990, Stock: 8, Rating: intp(4)},
	{Name: "MacBook Air M2", Category: "Laptops", Description: "13.6 inch, 8 GB RAM, 256 GB SSD", Price: 119990, Stock: 5, Rating: intp(5)},
	{Name: "Dell XPS 13", Category: "Laptops", Description: "13.4 inch, i7, 16 GB RAM", Price: 109990, Stock: 3, Rating: intp(4)},
	{Name: "iPad Pro", Category: "Tablets", Description: "11 inch, M2 chip, 128 GB", Price: 89990, Stock: 7, Rating: intp(5)},
	{Name: "Samsung Tab S9", Category: "Tablets", Description: "11 inch, AMOLED, 128 GB", Price: 69990, Stock: 4, Rating: intp(4)},
	{Name: "Sony WH-1000XM5", Category: "Accessories", Description: "Wireless noise cancelling headphones", Price: 34990, Stock: 12, Rating: intp(5)},
	{Name: "Apple Watch Series 9", Category: "Accessories", Description: "GPS, 41 mm, Always-On display", Price: 44990, Stock: 6, Rating: intp(4)},
	{Name: "PlayStation 5", Category: "Games", Description: "Digital edition, 825 GB SSD", Price: 49990, Stock: 2, Rating: intp(5)},
	{Name: "Xbox Series S", Category: "Games", Description: "512 GB SSD, game console", Price: 29990, Stock: 4, Rating: intp(4)},
	{Name: "Google Pixel 7", Category: "Smartphones", Description: "6.3 inch, Tensor G2, 128 GB", Price: 54990, Stock: 10, Rating: intp(4)},
	{Name: "iPad Mini", Category: "Tablets", Description: "8.3 inch, A15 Bionic, 64 GB", Price: 49990, Stock: 9, Rating: intp(5)},
}

// SeedIfEmpty creates seed in order when the store holds no products.
// It reports how many products were created.
func SeedIfEmpty(ctx context.Context, s Store, seed []Fields) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: list: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, f := range seed {
		if _, err := s.Create(ctx, f); err != nil {
			return i, fmt.Errorf("seed: create %q: %w", f.Name, err)
		}
	}
	return len(seed), nil
}
