package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type productRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null;default:''"`
	Category    string `gorm:"not null;default:'';index"`
	Description string `gorm:"not null;default:''"`
	Price       float64
	Stock       int64
	Rating      int `gorm:"not null;default:5"`
}

func (productRow) TableName() string { return "products" }

func (r productRow) product() Product {
	return Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Rating:      r.Rating,
	}
}

func rowOf(p Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
	}
}

// GormStore keeps the catalog in SQLite. AUTOINCREMENT keeps deleted ids
// from being handed out again.
type GormStore struct {
	db *gorm.DB
}

func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	return db, nil
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&productRow{}); err != nil {
		return nil, fmt.Errorf("auto-migrate products: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return withTimeout(ctx, pingTimeout, sqlDB.PingContext)
}

func (s *GormStore) List(ctx context.Context) ([]Product, error) {
	var rows []productRow
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.product())
	}
	return out, nil
}

func (s *GormStore) Categories(ctx context.Context) ([]string, error) {
	out := make([]string, 0, 8)
	err := s.db.WithContext(ctx).
		Model(&productRow{}).
		Group("category").
		Order("MIN(id) ASC").
		Pluck("category", &out).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *GormStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	var r productRow
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("get product %d: %w", id, err)
	}
	return r.product(), true, nil
}

func (s *GormStore) Create(ctx context.Context, f Fields) (Product, error) {
	r := rowOf(f.product(0, DefaultRating))
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return r.product(), nil
}

func (s *GormStore) Replace(ctx context.Context, id int64, f Fields) (Product, bool, error) {
	var (
		out Product
		ok  bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev productRow
		err := tx.First(&prev, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		next := rowOf(f.product(id, prev.Rating))
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		out, ok = next.product(), true
		return nil
	})
	if err != nil {
		return Product{}, false, fmt.Errorf("replace product %d: %w", id, err)
	}
	return out, ok, nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&productRow{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
