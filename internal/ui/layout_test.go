package ui

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/catalog"
)

func TestGridColumns(t *testing.T) {
	cases := []struct {
		width, want int
	}{
		{0, 1},
		{29, 1},
		{30, 1},
		{61, 2},
		{93, 3},
		{1000, maxGridCols},
	}
	for _, tc := range cases {
		if got := gridColumns(tc.width); got != tc.want {
			t.Fatalf("gridColumns(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestGridWindow(t *testing.T) {
	cases := []struct {
		rows, visible, selected int
		start, end              int
	}{
		{3, 5, 2, 0, 3},
		{10, 3, 0, 0, 3},
		{10, 3, 5, 3, 6},
		{10, 3, 9, 7, 10},
		{10, 0, 4, 0, 10},
	}
	for _, tc := range cases {
		start, end := gridWindow(tc.rows, tc.visible, tc.selected)
		if start != tc.start || end != tc.end {
			t.Fatalf("gridWindow(%d,%d,%d) = %d,%d; want %d,%d",
				tc.rows, tc.visible, tc.selected, start, end, tc.start, tc.end)
		}
	}
}

func TestProductCells_DiscountAndStock(t *testing.T) {
	was := decimal.RequireFromString("100")
	zero := 0
	items := []catalog.Product{
		{ID: "a", Title: "Sofa", Price: decimal.RequireFromString("80"), PriceValid: true, PriceWithoutDiscount: &was},
		{ID: "b", Title: "Stool", Price: decimal.RequireFromString("9"), PriceValid: true, Inventory: &zero},
	}
	cells := productCells(items)
	if cells[0].Was != "$100.00" || cells[0].Muted {
		t.Fatalf("discounted cell = %+v", cells[0])
	}
	if cells[1].Badge != "Sold out" || !cells[1].Muted {
		t.Fatalf("out of stock cell = %+v", cells[1])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Wing Chair", 20); got != "Wing Chair" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("Wing Chair", 5); got != "Wing…" {
		t.Fatalf("truncate = %q, want %q", got, "Wing…")
	}
	if got := truncateMiddle("https://cdn.example.com/images/chair.png", 15); got != "https:/…air.png" {
		t.Fatalf("truncateMiddle = %q", got)
	}
}
