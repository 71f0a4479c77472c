package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/catalog"
)

const (
	emptyProductsText   = "No products available at the moment."
	emptyCategoriesText = "No categories available at the moment."
)

// gridCell is the display data for one grid entry, in response order.
type gridCell struct {
	Image  string
	Title  string
	Detail string // price for products, item count for categories
	Was    string // pre-discount price, when discounted
	Badge  string
	Muted  bool // unavailable: unpriced or out of stock
}

func productCells(items []catalog.Product) []gridCell {
	cells := make([]gridCell, 0, len(items))
	for _, p := range items {
		c := gridCell{
			Image:  p.ImageURL,
			Title:  p.Title,
			Detail: p.DisplayPrice(),
			Badge:  p.Badge,
			Muted:  !p.PriceValid || !p.InStock(),
		}
		if p.Discounted() {
			c.Was = catalog.FormatPrice(*p.PriceWithoutDiscount)
		}
		if !p.InStock() && c.Badge == "" {
			c.Badge = "Sold out"
		}
		cells = append(cells, c)
	}
	return cells
}

func categoryCells(items []catalog.Category) []gridCell {
	cells := make([]gridCell, 0, len(items))
	for _, c := range items {
		detail := ""
		switch c.ProductCount {
		case 0:
		case 1:
			detail = "1 product"
		default:
			detail = fmt.Sprintf("%d products", c.ProductCount)
		}
		cells = append(cells, gridCell{Image: c.ImageURL, Title: c.Title, Detail: detail})
	}
	return cells
}

func (m Model) renderProducts() string {
	s := m.products.state
	title := "Products"
	if s.Status == catalog.StatusLoaded {
		title = fmt.Sprintf("Products (%d)", len(s.Items))
	}
	return m.renderListing(title, s.Status, s.Reason(), emptyProductsText, productCells(s.Items), m.products.selected)
}

func (m Model) renderCategories() string {
	s := m.categories.state
	title := "Categories"
	if s.Status == catalog.StatusLoaded {
		title = fmt.Sprintf("Categories (%d)", len(s.Items))
	}
	return m.renderListing(title, s.Status, s.Reason(), emptyCategoriesText, categoryCells(s.Items), m.categories.selected)
}

// renderListing renders one of the three listing states inside the content box.
func (m Model) renderListing(title string, status catalog.Status, reason, emptyText string, cells []gridCell, selected int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	width, height := m.width, m.contentHeight()

	var body string
	switch {
	case status == catalog.StatusLoading:
		body = m.spinner.View() + " " + styles.MutedText.Render("Loading...")
	case status == catalog.StatusFailed:
		body = styles.DangerText.Render(reason)
	case len(cells) == 0:
		body = styles.MutedText.Render(emptyText)
	default:
		body = m.renderGrid(cells, selected, height-2)
	}
	return m.renderTitledBox(title, body, width, height)
}

// renderGrid lays cells out left to right, top to bottom, in the order given.
func (m Model) renderGrid(cells []gridCell, selected, availHeight int) string {
	cols := gridColumns(m.contentWidth())
	rows := (len(cells) + cols - 1) / cols
	visible := max(availHeight/cellHeight, 1)
	start, end := gridWindow(rows, visible, selected/cols)

	gap := strings.Repeat(" ", cellGap)
	out := make([]string, 0, end-start)
	for r := start; r < end; r++ {
		row := make([]string, 0, cols*2)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(cells) {
				break
			}
			if c > 0 {
				row = append(row, gap)
			}
			row = append(row, m.renderCell(cells[i], i == selected))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m Model) renderCell(c gridCell, selected bool) string {
	styles := m.theme.Styles()
	inner := cellWidth - 4

	borderColor := m.theme.Border
	bgColor := m.theme.SurfaceAlt
	if selected {
		borderColor = m.theme.BorderFocus
		bgColor = m.theme.FocusBg
	}
	styles = styles.WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	titleStyle := styles.Text.Bold(true)
	detailStyle := styles.AccentText
	if c.Muted {
		titleStyle = styles.MutedText
		detailStyle = styles.MutedText
	}

	detail := bg.Render(c.Detail, detailStyle)
	if c.Was != "" {
		detail += bg.Space() + bg.Render(c.Was, styles.FaintText.Strikethrough(true))
	}
	badge := ""
	if c.Badge != "" {
		badge = styles.BadgeStyle(c.Badge).Render(truncate(c.Badge, inner-2))
	}

	lines := []string{
		bg.Render(truncateMiddle(c.Image, inner), styles.FaintText),
		bg.Render(truncate(c.Title, inner), titleStyle),
		detail,
		badge,
	}
	for i, line := range lines {
		lines[i] = bg.FillLine(line, inner)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		BorderBackground(lipgloss.Color(m.theme.SurfaceAlt)).
		Background(lipgloss.Color(bgColor)).
		Padding(0, 1).
		Width(cellWidth - 2).
		Render(strings.Join(lines, "\n"))
}
