package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

const DefaultRating = 5

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	Rating      int     `json:"rating"`
}

// Fields is the payload of create and replace. A nil Rating means the
// request carried no usable rating.
type Fields struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Stock       int64
	Rating      *int
}

func (f Fields) product(id int64, prevRating int) Product {
	rating := prevRating
	if f.Rating != nil {
		rating = *f.Rating
	}
	return Product{
		ID:          id,
		Name:        f.Name,
		Category:    f.Category,
		Description: f.Description,
		Price:       f.Price,
		Stock:       f.Stock,
		Rating:      rating,
	}
}

type FieldError struct {
	Field string
	Value any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseFields coerces a decoded JSON object into Fields. Strings and numbers
// are accepted for every numeric field, the way an HTML form submits them.
func ParseFields(raw map[string]any) (Fields, error) {
	var (
		f   Fields
		err error
	)

	f.Name = text(raw["name"])
	f.Category = text(raw["category"])
	f.Description = text(raw["description"])

	if f.Price, err = number("price", raw["price"]); err != nil {
		return Fields{}, err
	}

	stock, err := number("stock", raw["stock"])
	if err != nil {
		return Fields{}, err
	}
	if stock != math.Trunc(stock) || math.Abs(stock) > 1<<53 {
		return Fields{}, &FieldError{Field: "stock", Value: raw["stock"]}
	}
	f.Stock = int64(stock)

	f.Rating = rating(raw["rating"])
	return f, nil
}

func text(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

func number(field string, v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, nil
		}
		v = x
	}

	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &FieldError{Field: field, Value: v}
	}
	return n, nil
}

func rating(v any) *int {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s == "" {
			return nil
		}
		v = s
	}

	n, err := cast.ToFloat64E(v)
	if err != nil || n != math.Trunc(n) {
		return nil
	}
	if err := validate.Var(n, "min=1,max=5"); err != nil {
		return nil
	}

	r := int(n)
	return &r
}
