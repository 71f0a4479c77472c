package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/content"
	"github.com/five82/storefront/internal/logging"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/ui"
)

// Options configure the storefront application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/storefront/prefs.toml
	Verbose    bool
	// LogToStderr sends logs to stderr instead of the configured log file.
	// CLI commands set it; the interactive UI owns the terminal and cannot.
	LogToStderr bool
}

// Services holds the components shared by the UI and the CLI commands.
// Close releases the cart backend and flushes the logger.
type Services struct {
	Config config.Config
	Logger *zap.Logger
	Cart   *cart.Store

	loader  *catalog.Loader
	closers []func() error
}

// Open loads configuration, builds the logger, and restores the cart.
// A cart that cannot be read is logged and left empty; it does not fail Open.
func Open(ctx context.Context, opts Options) (*Services, error) {
	if err := config.LoadDotenv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logging.Options{Level: cfg.Log.Level, Path: cfg.Log.Path, Verbose: opts.Verbose}
	if opts.LogToStderr {
		logOpts.Path = ""
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	s := &Services{Config: cfg, Logger: logger}
	s.closers = append(s.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	slot, closeSlot, err := OpenSlot(ctx, cfg.Cart)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if closeSlot != nil {
		s.closers = append(s.closers, closeSlot)
	}

	s.Cart = cart.NewStore(slot, logger)
	if err := s.Cart.Load(ctx); err != nil {
		logger.Warn("starting with empty cart", zap.Error(err))
	}
	logger.Debug("services ready",
		zap.String("cart_backend", cfg.Cart.Backend),
		zap.String("cart_slot", slot.Name()),
		zap.Int("cart_entries", s.Cart.Len()))
	return s, nil
}

// OpenSlot returns the cart slot for the configured backend and, when the
// backend holds resources, a function that releases them.
func OpenSlot(ctx context.Context, c config.Cart) (cart.Slot, func() error, error) {
	switch c.Backend {
	case config.BackendSQLite:
		slot, err := cart.OpenSQLiteSlot(ctx, c.Path, c.Slot)
		if err != nil {
			return nil, nil, fmt.Errorf("open cart: %w", err)
		}
		return slot, slot.Close, nil
	case config.BackendMemory:
		return cart.NewMemorySlot(c.Slot), nil, nil
	case config.BackendFile, "":
		return cart.NewFileSlot(c.Path), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cart backend %q", c.Backend)
	}
}

// Catalog returns the catalog loader, creating the content client on first
// use. It fails with config.ErrNoProject when the content API is not
// configured.
func (s *Services) Catalog() (*catalog.Loader, error) {
	if s.loader != nil {
		return s.loader, nil
	}
	c := s.Config.Content
	if err := c.Validate(); err != nil {
		return nil, err
	}
	client, err := content.NewClient(content.Options{
		ProjectID:  c.ProjectID,
		Dataset:    c.Dataset,
		APIVersion: c.APIVersion,
		UseCDN:     c.UseCDN,
		Token:      c.Token,
		APIHost:    c.APIHost,
	})
	if err != nil {
		return nil, fmt.Errorf("init content client: %w", err)
	}
	s.loader = catalog.NewLoader(client, catalog.LoaderOptions{
		ProductType:  c.ProductType,
		CategoryType: c.CategoryType,
		Logger:       s.Logger,
	})
	return s.loader, nil
}

// Close releases everything Open acquired, in reverse order.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Run boots the interactive storefront until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	loader, err := s.Catalog()
	if err != nil {
		return err
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	s.Logger.Info("storefront started",
		zap.String("theme", userPrefs.Theme),
		zap.String("start_view", userPrefs.StartView))

	err = ui.Run(s.uiOptions(ctx, loader, userPrefs, opts.PrefsPath))
	if err != nil {
		s.Logger.Error("ui exited with error", zap.Error(err))
		return err
	}
	s.Logger.Info("storefront stopped", zap.Int("cart_entries", s.Cart.Len()))
	return nil
}

func (s *Services) uiOptions(ctx context.Context, loader ui.Catalog, p prefs.Prefs, prefsPath string) ui.Options {
	return ui.Options{
		Context:      ctx,
		Catalog:      loader,
		Cart:         s.Cart,
		ProductLimit: s.Config.Content.ProductLimit,
		ThemeName:    p.Theme,
		PrefsPath:    prefsPath,
		StartView:    ui.ParseView(p.StartView),
		Logger:       s.Logger,
	}
}
