package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
)

const (
	emptyCartText    = "Your cart is empty"
	deliveryLine     = "Estimated Delivery & Handling: Free"
	checkoutLabel    = "Member Checkout"
	priceColumnWidth = 12
)

func (m Model) renderCart() string {
	var entries []cart.Entry
	if m.cart != nil {
		entries = m.cart.Entries()
	}
	title := fmt.Sprintf("Cart (%d)", len(entries))
	return m.renderTitledBox(title, m.cartBody(entries), m.width, m.contentHeight())
}

// cartBody renders entry lines followed by the order summary.
func (m Model) cartBody(entries []cart.Entry) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	if len(entries) == 0 {
		return styles.MutedText.Render(emptyCartText)
	}

	inner := m.contentWidth()
	summaryLines := 6
	visible := max(m.contentHeight()-2-summaryLines, 1)
	start, end := gridWindow(len(entries), visible, clampIndex(m.cartSelected, len(entries)))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.cartLine(entries[i], i == m.cartSelected, inner))
		b.WriteString("\n")
	}

	total := catalog.FormatPrice(m.cart.Total())
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(inner, 0))))
	b.WriteString("\n")
	b.WriteString(summaryRow(styles.Text.Render("Subtotal"), styles.Text.Render(total), inner))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(deliveryLine))
	b.WriteString("\n")
	b.WriteString(summaryRow(styles.Text.Bold(true).Render("Total"), styles.AccentText.Bold(true).Render(total), inner))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("[o] " + checkoutLabel))
	return b.String()
}

func (m Model) cartLine(e cart.Entry, selected bool, width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	marker := "  "
	if selected {
		marker = "> "
	}

	price := fmt.Sprintf("%*s", priceColumnWidth, catalog.FormatPrice(e.Price))
	label := e.Title
	if e.Category != "" {
		label += " · " + e.Category
	}
	label = truncate(label, max(width-len(marker)-priceColumnWidth-1, 1))
	pad := max(width-len(marker)-priceColumnWidth-lipgloss.Width(label), 1)

	line := marker + label + strings.Repeat(" ", pad) + price
	if selected {
		return m.theme.Styles().Selected.Width(width).Render(line)
	}
	return styles.Text.Render(line)
}

func summaryRow(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
