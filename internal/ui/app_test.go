package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/prefs"
)

type fakeCatalog struct {
	mu            sync.Mutex
	products      catalog.State[catalog.Product]
	categories    catalog.State[catalog.Category]
	productCalls  int
	categoryCalls int
	limits        []int
}

func (f *fakeCatalog) Products(_ context.Context, limit int) catalog.State[catalog.Product] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	f.limits = append(f.limits, limit)
	return f.products
}

func (f *fakeCatalog) Categories(context.Context) catalog.State[catalog.Category] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryCalls++
	return f.categories
}

func testProduct(id, title, price string) catalog.Product {
	p := catalog.Product{ID: id, Title: title, ImageURL: catalog.PlaceholderImage}
	p.Price, p.PriceValid = catalog.ParsePrice(price)
	return p
}

func fourProducts() []catalog.Product {
	chair := testProduct("a", "Chair", "19.99")
	chair.Badge = "Sale"
	return []catalog.Product{
		chair,
		testProduct("b", "Lamp", "5.00"),
		testProduct("c", "Desk", "120.50"),
		testProduct("d", "Rug", "42"),
	}
}

func loaded[T any](items ...T) catalog.State[T] {
	return catalog.State[T]{Status: catalog.StatusLoaded, Items: items}
}

func newTestModel(t *testing.T, cat *fakeCatalog, slot cart.Slot) (Model, *cart.Store) {
	t.Helper()
	if slot == nil {
		slot = cart.NewMemorySlot("cart")
	}
	store := cart.NewStore(slot, nil)
	m := New(Options{
		Catalog:   cat,
		Cart:      store,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 40})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle runs the load command for the current view and applies its result.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.loadCmd(m.currentView)
	if cmd == nil {
		t.Fatalf("no load command for view %v", m.currentView)
	}
	return update(t, m, cmd())
}

func TestModel_FourProductsRenderFourCellsInOrder(t *testing.T) {
	cat := &fakeCatalog{products: loaded(fourProducts()...)}
	m, _ := newTestModel(t, cat, nil)
	m = settle(t, m)

	cells := productCells(m.products.state.Items)
	if len(cells) != 4 {
		t.Fatalf("cells = %d, want 4", len(cells))
	}
	wantTitles := []string{"Chair", "Lamp", "Desk", "Rug"}
	wantPrices := []string{"$19.99", "$5.00", "$120.50", "$42.00"}
	for i, c := range cells {
		if c.Title != wantTitles[i] || c.Detail != wantPrices[i] {
			t.Fatalf("cell %d = %q %q, want %q %q", i, c.Title, c.Detail, wantTitles[i], wantPrices[i])
		}
	}
	if cells[0].Badge != "Sale" || cells[1].Badge != "" {
		t.Fatalf("badges = %q, %q", cells[0].Badge, cells[1].Badge)
	}

	view := m.View()
	last := -1
	for _, title := range wantTitles {
		idx := strings.Index(view, title)
		if idx < 0 {
			t.Fatalf("view missing %q:\n%s", title, view)
		}
		if idx < last {
			t.Fatalf("%q rendered out of order", title)
		}
		last = idx
	}
	if !strings.Contains(view, "Products (4)") {
		t.Fatalf("view missing listing title")
	}
}

func TestModel_StaleResultIsDropped(t *testing.T) {
	cat := &fakeCatalog{products: loaded(testProduct("a", "Chair", "1"))}
	m, _ := newTestModel(t, cat, nil)
	first := m.products.gen

	m = update(t, m, runes("r"))
	if m.products.gen != first+1 {
		t.Fatalf("gen = %d, want %d", m.products.gen, first+1)
	}
	if m.products.state.Status != catalog.StatusLoading {
		t.Fatalf("status after reload = %v, want loading", m.products.state.Status)
	}

	stale := productsMsg{gen: first, state: loaded(testProduct("old", "Old", "1"))}
	m = update(t, m, stale)
	if m.products.state.Status != catalog.StatusLoading {
		t.Fatalf("stale result applied: %+v", m.products.state)
	}

	m = settle(t, m)
	if m.products.state.Status != catalog.StatusLoaded || m.products.state.Items[0].ID != "a" {
		t.Fatalf("current result not applied: %+v", m.products.state)
	}
}

func TestModel_ActivatingViewStartsOneLoad(t *testing.T) {
	cat := &fakeCatalog{categories: loaded(catalog.Category{ID: "c1", Title: "Seating", ProductCount: 2})}
	m, _ := newTestModel(t, cat, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.currentView != ViewCategories {
		t.Fatalf("view = %v, want categories", m.currentView)
	}
	if cmd == nil {
		t.Fatalf("tab into categories returned no load command")
	}
	m = update(t, m, cmd())
	if cat.categoryCalls != 1 {
		t.Fatalf("category loads = %d, want 1", cat.categoryCalls)
	}
	view := m.View()
	if !strings.Contains(view, "Seating") || !strings.Contains(view, "2 products") {
		t.Fatalf("categories view missing cell:\n%s", view)
	}
}

func TestModel_ListingStates(t *testing.T) {
	cat := &fakeCatalog{}
	m, _ := newTestModel(t, cat, nil)

	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("loading view missing spinner text")
	}

	cat.products = catalog.State[catalog.Product]{Status: catalog.StatusLoaded}
	m = settle(t, m)
	if !strings.Contains(m.View(), emptyProductsText) {
		t.Fatalf("empty view missing %q", emptyProductsText)
	}

	m = update(t, m, runes("r"))
	failed := productsMsg{gen: m.products.gen, state: catalog.State[catalog.Product]{
		Status: catalog.StatusFailed,
		Err:    &catalog.FetchError{What: "products", Err: errors.New("boom")},
	}}
	m = update(t, m, failed)
	view := m.View()
	if !strings.Contains(view, "Failed to fetch") {
		t.Fatalf("failed view missing reason:\n%s", view)
	}
	if strings.Contains(view, "boom") {
		t.Fatalf("failed view leaked the underlying error")
	}
}

func TestModel_AddReportsThroughFlash(t *testing.T) {
	cat := &fakeCatalog{products: loaded(fourProducts()...)}
	m, store := newTestModel(t, cat, nil)
	m = settle(t, m)

	next, cmd := m.Update(runes("a"))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("add returned no flash expiry command")
	}
	if m.flash.text != "Chair added to cart!" || m.flash.level != flashSuccess {
		t.Fatalf("flash = %+v", m.flash)
	}
	if store.Len() != 1 {
		t.Fatalf("cart len = %d, want 1", store.Len())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.flash.text != "Chair is already in the cart!" {
		t.Fatalf("flash = %q", m.flash.text)
	}
	if store.Len() != 1 {
		t.Fatalf("cart len after duplicate = %d, want 1", store.Len())
	}
	if !strings.Contains(m.View(), "Chair is already in the cart!") {
		t.Fatalf("flash not rendered")
	}
}

func TestModel_AddPersistFailureWarns(t *testing.T) {
	slot := cart.NewMemorySlot("cart")
	slot.FailWrites(errors.New("disk full"))
	cat := &fakeCatalog{products: loaded(fourProducts()...)}
	m, store := newTestModel(t, cat, slot)
	m = settle(t, m)

	m = update(t, m, runes("a"))
	if m.flash.level != flashWarning || !strings.Contains(m.flash.text, "could not be saved") {
		t.Fatalf("flash = %+v, want save warning", m.flash)
	}
	if !store.Contains("a") {
		t.Fatalf("in-memory cart lost the entry")
	}
}

func TestModel_AddUnpricedIsRejected(t *testing.T) {
	cat := &fakeCatalog{products: loaded(testProduct("x", "Mystery", "abc"))}
	m, store := newTestModel(t, cat, nil)
	m = settle(t, m)

	m = update(t, m, runes("a"))
	if store.Len() != 0 {
		t.Fatalf("unpriced product was added")
	}
	if m.flash.level != flashWarning {
		t.Fatalf("flash = %+v, want warning", m.flash)
	}
}

func TestModel_CartViewSummaryRemoveAndCheckout(t *testing.T) {
	ctx := context.Background()
	m, store := newTestModel(t, &fakeCatalog{}, nil)

	m = update(t, m, runes("b"))
	if !strings.Contains(m.View(), emptyCartText) {
		t.Fatalf("empty cart view missing %q", emptyCartText)
	}

	for _, p := range fourProducts()[:2] {
		if _, err := store.Add(ctx, p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	view := m.View()
	for _, want := range []string{"Chair", "Lamp", "Subtotal", deliveryLine, "Total", "$24.99", checkoutLabel, "Cart (2)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("cart view missing %q:\n%s", want, view)
		}
	}

	m = update(t, m, runes("o"))
	if m.flash.text != "Checkout is not available" {
		t.Fatalf("flash = %q", m.flash.text)
	}

	m = update(t, m, runes("j"))
	m = update(t, m, runes("x"))
	if store.Len() != 1 || store.Entries()[0].ID != "a" {
		t.Fatalf("entries after remove = %+v", store.Entries())
	}
	if m.cartSelected != 0 {
		t.Fatalf("cartSelected = %d, want 0 after removing last row", m.cartSelected)
	}
	if !strings.Contains(m.View(), "$19.99") {
		t.Fatalf("total not updated after remove")
	}
}

func TestModel_FlashExpiryOnlyClearsItsOwnMessage(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{}, nil)
	m = update(t, m, runes("b"))
	m = update(t, m, runes("o"))
	firstID := m.flash.id
	m = update(t, m, runes("o"))

	m = update(t, m, flashExpiredMsg{id: firstID})
	if m.flash.text == "" {
		t.Fatalf("old expiry cleared the newer flash")
	}
	m = update(t, m, flashExpiredMsg{id: m.flash.id})
	if m.flash.text != "" {
		t.Fatalf("flash = %q, want cleared", m.flash.text)
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{}, nil)
	if m.theme.Name != "Nightfox" {
		t.Fatalf("default theme = %q", m.theme.Name)
	}

	m = update(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	saved := prefs.Load(m.prefsPath)
	if saved.Theme != "Kanagawa" || saved.StartView != prefs.ViewProducts {
		t.Fatalf("saved prefs = %+v", saved)
	}
}

func TestModel_SwitchingViewPersistsStartView(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{}, nil)

	m = update(t, m, runes("b"))
	if saved := prefs.Load(m.prefsPath); saved.StartView != prefs.ViewCart || saved.Theme != "Nightfox" {
		t.Fatalf("saved prefs after cart = %+v", saved)
	}
	m = update(t, m, runes("c"))
	if saved := prefs.Load(m.prefsPath); saved.StartView != prefs.ViewCategories {
		t.Fatalf("saved prefs after categories = %+v", saved)
	}

	next := New(Options{
		Catalog:   &fakeCatalog{},
		PrefsPath: m.prefsPath,
		StartView: ParseView(prefs.Load(m.prefsPath).StartView),
	})
	if next.currentView != ViewCategories {
		t.Fatalf("restarted view = %v, want categories", next.currentView)
	}
}

func TestModel_ProductLimitReachesLoader(t *testing.T) {
	cat := &fakeCatalog{products: loaded(fourProducts()...)}
	m := New(Options{
		Catalog:      cat,
		Cart:         cart.NewStore(cart.NewMemorySlot("cart"), nil),
		PrefsPath:    filepath.Join(t.TempDir(), "prefs.toml"),
		ProductLimit: 4,
	})
	m = settle(t, m)
	m = update(t, m, runes("r"))
	m = settle(t, m)

	if len(cat.limits) != 2 || cat.limits[0] != 4 || cat.limits[1] != 4 {
		t.Fatalf("limits = %v, want [4 4]", cat.limits)
	}
}

func TestModel_HelpOverlayClosesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{}, nil)
	m = update(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = update(t, m, runes("z"))
	if m.showHelp {
		t.Fatalf("help overlay still shown")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{}, nil)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%q returned no command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%q did not quit", msg.String())
		}
	}
}

func TestModel_GridNavigationClamps(t *testing.T) {
	cat := &fakeCatalog{products: loaded(fourProducts()...)}
	m, _ := newTestModel(t, cat, nil)
	m = settle(t, m)

	m = update(t, m, runes("h"))
	if m.products.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.products.selected)
	}
	m = update(t, m, runes("G"))
	if m.products.selected != 3 {
		t.Fatalf("selected = %d, want 3", m.products.selected)
	}
	m = update(t, m, runes("l"))
	if m.products.selected != 3 {
		t.Fatalf("selected = %d, want 3 (clamped)", m.products.selected)
	}
	m = update(t, m, runes("a"))
	if m.flash.text != "Rug added to cart!" {
		t.Fatalf("flash = %q", m.flash.text)
	}
}

func TestParseView(t *testing.T) {
	cases := map[string]View{
		"products":     ViewProducts,
		" Categories ": ViewCategories,
		"cart":         ViewCart,
		"":             ViewProducts,
		"checkout":     ViewProducts,
	}
	for in, want := range cases {
		if got := ParseView(in); got != want {
			t.Fatalf("ParseView(%q) = %v, want %v", in, got, want)
		}
	}
}
