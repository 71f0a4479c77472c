package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding

	// View switching
	ViewProducts   key.Binding
	ViewCategories key.Binding
	ViewCart       key.Binding
	Reload         key.Binding

	// Cart actions
	Add      key.Binding
	Remove   key.Binding
	Checkout key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),

		ViewProducts: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Products"),
		),
		ViewCategories: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Categories"),
		),
		ViewCart: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Cart"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		Add: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a", "Add to cart"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Checkout"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.ViewProducts, k.ViewCategories, k.ViewCart},
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Add, k.Remove, k.Checkout, k.Reload},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// viewKeys narrows the short help to the bindings that do something in the
// current view. It satisfies help.KeyMap for the command bar.
type viewKeys struct {
	keys keyMap
	view View
}

func (v viewKeys) ShortHelp() []key.Binding {
	k := v.keys
	switch v.view {
	case ViewCart:
		return []key.Binding{k.Up, k.Down, k.Remove, k.Checkout, k.ViewProducts, k.Tab, k.Help, k.Quit}
	case ViewCategories:
		return []key.Binding{k.Left, k.Right, k.Reload, k.ViewProducts, k.ViewCart, k.Tab, k.Help, k.Quit}
	default:
		return []key.Binding{k.Left, k.Right, k.Add, k.Reload, k.ViewCategories, k.ViewCart, k.Tab, k.Help, k.Quit}
	}
}

func (v viewKeys) FullHelp() [][]key.Binding {
	return v.keys.FullHelp()
}
