package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/prefs"
)

// View represents the current active view.
type View int

const (
	ViewProducts View = iota
	ViewCategories
	ViewCart
)

var viewOrder = []View{ViewProducts, ViewCategories, ViewCart}

func (v View) String() string {
	switch v {
	case ViewCategories:
		return "Categories"
	case ViewCart:
		return "Cart"
	default:
		return "Products"
	}
}

// prefName is the value stored in prefs for this view.
func (v View) prefName() string {
	switch v {
	case ViewCategories:
		return prefs.ViewCategories
	case ViewCart:
		return prefs.ViewCart
	default:
		return prefs.ViewProducts
	}
}

// ParseView maps a prefs start view name to a View.
func ParseView(name string) View {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case prefs.ViewCategories:
		return ViewCategories
	case prefs.ViewCart:
		return ViewCart
	default:
		return ViewProducts
	}
}

// Catalog loads the listings shown by the product and category views.
type Catalog interface {
	Products(ctx context.Context, limit int) catalog.State[catalog.Product]
	Categories(ctx context.Context) catalog.State[catalog.Category]
}

// Cart is the cart owner the UI mutates.
type Cart interface {
	Add(ctx context.Context, p catalog.Product) (cart.AddResult, error)
	Remove(ctx context.Context, id string) (bool, error)
	Entries() []cart.Entry
	Total() decimal.Decimal
	Len() int
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Catalog      Catalog
	Cart         Cart
	ProductLimit int
	ThemeName    string
	PrefsPath    string
	StartView    View
	Logger       *zap.Logger
}

// listing is the per-view state of a fetched grid. gen identifies the most
// recent activation; results from older activations are dropped.
type listing[T any] struct {
	state    catalog.State[T]
	gen      uint64
	selected int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	catalog      Catalog
	cart         Cart
	productLimit int
	prefsPath    string
	logger       *zap.Logger

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	products     listing[catalog.Product]
	categories   listing[catalog.Category]
	cartSelected int

	flash flash
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := GetTheme(themeName)
	m := Model{
		ctx:          ctx,
		catalog:      opts.Catalog,
		cart:         opts.Cart,
		productLimit: opts.ProductLimit,
		prefsPath:    prefsPath,
		logger:       logger.Named("ui"),
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      newSpinner(theme),
		currentView:  opts.StartView,
		products:     listing[catalog.Product]{state: catalog.Loading[catalog.Product]()},
		categories:   listing[catalog.Category]{state: catalog.Loading[catalog.Category]()},
	}
	// The start view's first load is issued by Init with this generation.
	m.bumpGen(m.currentView)
	return m
}

func newSpinner(theme Theme) spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Styles().AccentText),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.currentView))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case productsMsg:
		if msg.gen != m.products.gen {
			m.logger.Debug("dropping stale products result", zap.Uint64("gen", msg.gen), zap.Uint64("current", m.products.gen))
			return m, nil
		}
		m.products.state = msg.state
		m.products.selected = clampIndex(m.products.selected, len(msg.state.Items))
		return m, nil

	case categoriesMsg:
		if msg.gen != m.categories.gen {
			m.logger.Debug("dropping stale categories result", zap.Uint64("gen", msg.gen), zap.Uint64("current", m.categories.gen))
			return m, nil
		}
		m.categories.state = msg.state
		m.categories.selected = clampIndex(m.categories.selected, len(msg.state.Items))
		return m, nil

	case flashExpiredMsg:
		if msg.id == m.flash.id {
			m.flash = flash{id: m.flash.id}
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()

	case key.Matches(msg, m.keys.Tab):
		return m.activate(m.nextView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.activate(m.nextView(-1))

	case key.Matches(msg, m.keys.ViewProducts):
		return m.activate(ViewProducts)

	case key.Matches(msg, m.keys.ViewCategories):
		return m.activate(ViewCategories)

	case key.Matches(msg, m.keys.ViewCart):
		return m.activate(ViewCart)

	case key.Matches(msg, m.keys.Reload):
		return m.activate(m.currentView)
	}

	switch m.currentView {
	case ViewProducts:
		return m.handleProductsKey(msg)
	case ViewCategories:
		m.categories.selected = m.moveInGrid(msg, m.categories.selected, len(m.categories.state.Items))
		return m, nil
	case ViewCart:
		return m.handleCartKey(msg)
	}
	return m, nil
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		return m.addSelected()
	}
	m.products.selected = m.moveInGrid(msg, m.products.selected, len(m.products.state.Items))
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if m.cart != nil {
		count = m.cart.Len()
	}

	switch {
	case key.Matches(msg, m.keys.Remove):
		return m.removeSelected()
	case key.Matches(msg, m.keys.Checkout):
		return m.setFlash("Checkout is not available", flashInfo)
	case key.Matches(msg, m.keys.Down):
		if m.cartSelected < count-1 {
			m.cartSelected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cartSelected > 0 {
			m.cartSelected--
		}
	case key.Matches(msg, m.keys.Top):
		m.cartSelected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cartSelected = max(count-1, 0)
	}
	return m, nil
}

// moveInGrid applies a navigation key to a grid selection.
func (m Model) moveInGrid(msg tea.KeyMsg, selected, count int) int {
	if count == 0 {
		return 0
	}
	cols := gridColumns(m.contentWidth())
	switch {
	case key.Matches(msg, m.keys.Right):
		selected++
	case key.Matches(msg, m.keys.Left):
		selected--
	case key.Matches(msg, m.keys.Down):
		if selected+cols < count {
			selected += cols
		}
	case key.Matches(msg, m.keys.Up):
		if selected-cols >= 0 {
			selected -= cols
		}
	case key.Matches(msg, m.keys.Top):
		selected = 0
	case key.Matches(msg, m.keys.Bottom):
		selected = count - 1
	}
	return clampIndex(selected, count)
}

// activate switches to view. Listing views start a fresh load tagged with a
// new generation; any result still in flight for the view becomes stale.
func (m Model) activate(view View) (Model, tea.Cmd) {
	if view != m.currentView {
		m.currentView = view
		if err := m.savePrefs(); err != nil {
			m.logger.Warn("save start view failed", zap.Stringer("view", view), zap.Error(err))
		}
	}
	if view == ViewCart {
		m.cartSelected = clampIndex(m.cartSelected, m.cartLen())
		return m, nil
	}
	m.bumpGen(view)
	return m, m.loadCmd(view)
}

// bumpGen starts a new activation of a listing view.
func (m *Model) bumpGen(view View) {
	switch view {
	case ViewProducts:
		m.products.gen++
		m.products.state = catalog.Loading[catalog.Product]()
	case ViewCategories:
		m.categories.gen++
		m.categories.state = catalog.Loading[catalog.Category]()
	}
}

// loadCmd fetches the listing for view under its current generation.
func (m Model) loadCmd(view View) tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	switch view {
	case ViewProducts:
		return loadProductsCmd(m.ctx, m.catalog, m.productLimit, m.products.gen)
	case ViewCategories:
		return loadCategoriesCmd(m.ctx, m.catalog, m.categories.gen)
	}
	return nil
}

func (m Model) nextView(step int) View {
	for i, v := range viewOrder {
		if v == m.currentView {
			return viewOrder[(i+step+len(viewOrder))%len(viewOrder)]
		}
	}
	return ViewProducts
}

func (m Model) addSelected() (tea.Model, tea.Cmd) {
	items := m.products.state.Items
	if m.cart == nil || m.products.state.Status != catalog.StatusLoaded || len(items) == 0 {
		return m, nil
	}
	p := items[clampIndex(m.products.selected, len(items))]

	res, err := m.cart.Add(m.ctx, p)
	switch {
	case errors.Is(err, cart.ErrUnpriced):
		return m.setFlash(fmt.Sprintf("%s has no price and cannot be added", p.Title), flashWarning)
	case errors.Is(err, cart.ErrPersist):
		m.logger.Warn("cart add not saved", zap.String("id", p.ID), zap.Error(err))
		return m.setFlash(fmt.Sprintf("%s added to cart, but the cart could not be saved", p.Title), flashWarning)
	case err != nil:
		m.logger.Error("cart add failed", zap.String("id", p.ID), zap.Error(err))
		return m.setFlash(err.Error(), flashDanger)
	case res == cart.AlreadyInCart:
		return m.setFlash(fmt.Sprintf("%s is already in the cart!", p.Title), flashInfo)
	default:
		return m.setFlash(fmt.Sprintf("%s added to cart!", p.Title), flashSuccess)
	}
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	if m.cart == nil {
		return m, nil
	}
	entries := m.cart.Entries()
	if len(entries) == 0 {
		return m, nil
	}
	e := entries[clampIndex(m.cartSelected, len(entries))]

	_, err := m.cart.Remove(m.ctx, e.ID)
	m.cartSelected = clampIndex(m.cartSelected, len(entries)-1)
	switch {
	case errors.Is(err, cart.ErrPersist):
		m.logger.Warn("cart remove not saved", zap.String("id", e.ID), zap.Error(err))
		return m.setFlash(fmt.Sprintf("%s removed, but the cart could not be saved", e.Title), flashWarning)
	case err != nil:
		m.logger.Error("cart remove failed", zap.String("id", e.ID), zap.Error(err))
		return m.setFlash(err.Error(), flashDanger)
	}
	return m.setFlash(fmt.Sprintf("%s removed from cart", e.Title), flashInfo)
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = m.theme.Styles().AccentText
	if err := m.savePrefs(); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
		return m.setFlash("Theme not saved: "+err.Error(), flashWarning)
	}
	return m, nil
}

// savePrefs records the theme and the current view as the next start view.
func (m Model) savePrefs() error {
	if m.prefsPath == "" {
		return nil
	}
	return prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, StartView: m.currentView.prefName()})
}

func (m Model) cartLen() int {
	if m.cart == nil {
		return 0
	}
	return m.cart.Len()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	if line := m.renderFlash(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProducts:
		return m.renderProducts()
	case ViewCategories:
		return m.renderCategories()
	case ViewCart:
		return m.renderCart()
	default:
		return ""
	}
}

// Messages

type productsMsg struct {
	gen   uint64
	state catalog.State[catalog.Product]
}

type categoriesMsg struct {
	gen   uint64
	state catalog.State[catalog.Category]
}

// Commands

func loadProductsCmd(ctx context.Context, c Catalog, limit int, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return productsMsg{gen: gen, state: c.Products(ctx, limit)}
	}
}

func loadCategoriesCmd(ctx context.Context, c Catalog, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return categoriesMsg{gen: gen, state: c.Categories(ctx)}
	}
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// flashDuration is how long a transient message stays visible.
const flashDuration = 3 * time.Second
