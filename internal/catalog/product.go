package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/content"
)

// Placeholders substituted for missing optional fields.
const (
	PlaceholderImage    = "/default-image.jpg"
	PlaceholderTitle    = "Untitled Product"
	PlaceholderCategory = "Uncategorized"
)

// Product is the display snapshot of a catalog product.
type Product struct {
	ID                   string
	Title                string
	Description          string
	Price                decimal.Decimal
	PriceValid           bool
	PriceWithoutDiscount *decimal.Decimal
	ImageURL             string
	Badge                string
	Category             CategoryRef
	Inventory            *int
	Tags                 []string
}

// CategoryRef names the category a product belongs to.
type CategoryRef struct {
	ID    string
	Title string
}

// HasCategory reports whether the product document referenced a category.
func (r CategoryRef) HasCategory() bool {
	return r.ID != ""
}

// Category is the display snapshot of a catalog category.
type Category struct {
	ID           string
	Title        string
	ImageURL     string
	ProductCount int
}

// Discounted reports whether a higher list price is known.
func (p Product) Discounted() bool {
	return p.PriceWithoutDiscount != nil && p.PriceWithoutDiscount.GreaterThan(p.Price)
}

// InStock reports false only when an inventory count is present and zero.
func (p Product) InStock() bool {
	return p.Inventory == nil || *p.Inventory > 0
}

// ProductFromDoc maps a raw document to a Product, substituting placeholders
// for missing optional fields.
func ProductFromDoc(doc content.ProductDoc) Product {
	price, ok := ParsePrice(doc.Price.String())
	p := Product{
		ID:          strings.TrimSpace(doc.ID),
		Title:       orPlaceholder(doc.Title.String(), PlaceholderTitle),
		Description: strings.TrimSpace(doc.Description.String()),
		Price:       price,
		PriceValid:  ok,
		ImageURL:    orPlaceholder(doc.ImageURL.String(), PlaceholderImage),
		Badge:       strings.TrimSpace(doc.Badge.String()),
		Category:    CategoryRef{Title: PlaceholderCategory},
	}
	if n, ok := doc.Inventory.Int(); ok {
		p.Inventory = &n
	}
	if list, ok := ParsePrice(doc.PriceWithoutDiscount.String()); ok {
		p.PriceWithoutDiscount = &list
	}
	if doc.Category != nil && strings.TrimSpace(doc.Category.ID.String()) != "" {
		p.Category = CategoryRef{
			ID:    strings.TrimSpace(doc.Category.ID.String()),
			Title: orPlaceholder(doc.Category.Title.String(), PlaceholderCategory),
		}
	}
	for _, tag := range doc.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			p.Tags = append(p.Tags, tag)
		}
	}
	return p
}

// CategoryFromDoc maps a raw category document to a Category.
func CategoryFromDoc(doc content.CategoryDoc) Category {
	c := Category{
		ID:       strings.TrimSpace(doc.ID),
		Title:    orPlaceholder(doc.Title.String(), PlaceholderCategory),
		ImageURL: orPlaceholder(doc.ImageURL.String(), PlaceholderImage),
	}
	if n, ok := doc.ProductCount.Int(); ok && n > 0 {
		c.ProductCount = n
	}
	return c
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}
