package web

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	AllCategories = "All"

	maxStars      = 5
	lowStockBelow = 5
)

type Page struct {
	Categories []string
	Selected   string
	Cards      []Card
	Form       *FormView
	Notice     string
	LoadFailed bool
}

type Card struct {
	Product
	Stars       []bool
	RatingLabel string
	PriceLabel  string
	LowStock    bool
}

type FormView struct {
	Editing bool
	ID      int64
	Values  ProductForm
	Ratings []string
}

var ratingChoices = []string{"5", "4", "3", "2", "1"}

func NewForm() *FormView {
	return &FormView{Values: ProductForm{Rating: "5"}, Ratings: ratingChoices}
}

func EditForm(p Product) *FormView {
	return &FormView{Editing: true, ID: p.ID, Values: FormOf(p), Ratings: ratingChoices}
}

func (f *FormView) Action() string {
	if f.Editing {
		return "/products/" + strconv.FormatInt(f.ID, 10)
	}
	return "/products"
}

// CategoryButtons prefixes the catalog categories with the All
// pseudo-category. A real category named All is folded into it.
func CategoryButtons(categories []string) []string {
	out := make([]string, 0, len(categories)+1)
	out = append(out, AllCategories)
	for _, c := range categories {
		if c != AllCategories {
			out = append(out, c)
		}
	}
	return out
}

// FilterByCategory keeps products of the selected category. Selecting All
// returns everything, so products whose category is literally All only show
// up there.
func FilterByCategory(products []Product, selected string) []Product {
	if selected == "" || selected == AllCategories {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == selected {
			out = append(out, p)
		}
	}
	return out
}

func Cards(products []Product) []Card {
	out := make([]Card, 0, len(products))
	for _, p := range products {
		out = append(out, Card{
			Product:     p,
			Stars:       stars(p.Rating),
			RatingLabel: strconv.Itoa(p.Rating) + ".0",
			PriceLabel:  formatPrice(p.Price),
			LowStock:    p.Stock < lowStockBelow,
		})
	}
	return out
}

func stars(rating int) []bool {
	out := make([]bool, maxStars)
	for i := range out {
		out[i] = i < rating
	}
	return out
}

var printer = message.NewPrinter(language.English)

func formatPrice(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%d ₽", int64(v))
	}
	return printer.Sprintf("%.2f ₽", v)
}
