// Package catalog holds the fixed product reference data and read-only
// access to it.
package catalog

import (
	"errors"
	"strings"

	"list-market/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// CategoryAll is the pseudo-category matching every product.
const CategoryAll = "Все"

// Catalog defines read-only access to the product set.
type Catalog interface {
	List(category string) []domain.Product
	FindByID(id int64) (*domain.Product, error)
	Categories() []string
	Search(query string) []domain.Product
}

type catalog struct {
	products   []domain.Product
	categories []string
}

// New returns a catalog over the given products. Category order follows
// first appearance, prefixed with CategoryAll.
func New(products []domain.Product) Catalog {
	categories := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	return &catalog{products: products, categories: categories}
}

// Default returns the stock storefront assortment.
func Default() Catalog {
	return New([]domain.Product{
		{ID: 1, Name: `Диван "Комфорт"`, Price: 45000, Category: "Мебель", Image: "🛋️"},
		{ID: 2, Name: "Обеденный стол", Price: 28000, Category: "Мебель", Image: "🪑"},
		{ID: 3, Name: "Набор шоколада", Price: 1200, Category: "Сладости", Image: "🍫"},
		{ID: 4, Name: `Торт "Прага"`, Price: 890, Category: "Сладости", Image: "🎂"},
		{ID: 5, Name: "Корм для собак", Price: 2500, Category: "Зоо-товары", Image: "🐕"},
		{ID: 6, Name: "Когтеточка", Price: 1800, Category: "Зоо-товары", Image: "🐱"},
		{ID: 7, Name: "Фруктовый набор", Price: 2200, Category: "Еда", Image: "🍎"},
		{ID: 8, Name: `Сыр "Пармезан"`, Price: 890, Category: "Еда", Image: "🧀"},
	})
}

// List returns products filtered by category. CategoryAll or an empty
// string return the whole assortment.
func (c *catalog) List(category string) []domain.Product {
	if category == "" || category == CategoryAll {
		out := make([]domain.Product, len(c.products))
		copy(out, c.products)
		return out
	}

	out := []domain.Product{}
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// FindByID retrieves a product by its id.
func (c *catalog) FindByID(id int64) (*domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Categories returns the known categories, CategoryAll first.
func (c *catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Search matches products whose name or description contains the query,
// case-insensitively. An empty query returns the whole assortment.
func (c *catalog) Search(query string) []domain.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.List("")
	}

	needle := strings.ToLower(query)
	out := []domain.Product{}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}
