package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/catalog"
)

// renderHeader renders the logo, view tabs, and cart summary.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("storefront", styles.Logo)}

	for _, v := range viewOrder {
		label := v.String()
		if v == ViewCart {
			label = fmt.Sprintf("Cart (%d)", m.cartLen())
		}
		if v == m.currentView {
			parts = append(parts, m.theme.Styles().Selected.Bold(true).Padding(0, 1).Render(label))
			continue
		}
		parts = append(parts, bg.Render(label, styles.MutedText))
	}

	if m.width >= LayoutCompactWidth && m.cart != nil {
		parts = append(parts,
			bg.Render("Total:", styles.MutedText)+bg.Space()+
				bg.Render(catalog.FormatPrice(m.cart.Total()), styles.AccentText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the contextual key hints for the current view.
func (m Model) renderCommandBar() string {
	h := m.help
	h.Styles.ShortKey = m.theme.Styles().AccentText
	h.Styles.ShortDesc = m.theme.Styles().MutedText
	h.Styles.ShortSeparator = m.theme.Styles().FaintText

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 1).
		Width(m.width).
		Render(h.View(viewKeys{keys: m.keys, view: m.currentView}))
}
