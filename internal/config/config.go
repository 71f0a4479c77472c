package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the storefront configuration after defaults, environment
// overrides, and path expansion have been applied.
type Config struct {
	Content Content
	Cart    Cart
	Log     Log
}

// Content describes the headless content API.
type Content struct {
	ProjectID    string
	Dataset      string
	APIVersion   string
	UseCDN       bool
	Token        string
	APIHost      string
	ProductType  string
	CategoryType string
	// ProductLimit caps the products listing; 0 shows every product.
	ProductLimit int
}

// Cart selects where the cart is persisted.
type Cart struct {
	Backend string
	Path    string
	Slot    string
}

// Log controls the log file used by the interactive UI.
type Log struct {
	Level string
	Path  string
}

// Cart backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultConfigPath   = "~/.config/storefront/config.toml"
	defaultDataDir      = "~/.local/share/storefront"
	defaultDataset      = "production"
	defaultAPIVersion   = "2025-01-13"
	defaultProductType  = "products"
	defaultCategoryType = "categories"
	defaultBackend      = BackendFile
	defaultSlot         = "cart"
	defaultLogLevel     = "info"
)

// Environment variables that override file values.
const (
	EnvProjectID    = "STOREFRONT_PROJECT_ID"
	EnvDataset      = "STOREFRONT_DATASET"
	EnvAPIVersion   = "STOREFRONT_API_VERSION"
	EnvToken        = "STOREFRONT_TOKEN"
	EnvAPIHost      = "STOREFRONT_API_HOST"
	EnvProductLimit = "STOREFRONT_PRODUCT_LIMIT"
)

// ErrNoProject is returned by Content.Validate when neither a project id
// nor an explicit API host is configured.
var ErrNoProject = errors.New("content project_id is required (set [content] project_id or " + EnvProjectID + ")")

type rawConfig struct {
	Content struct {
		ProjectID    string `toml:"project_id"`
		Dataset      string `toml:"dataset"`
		APIVersion   string `toml:"api_version"`
		UseCDN       bool   `toml:"use_cdn"`
		Token        string `toml:"token"`
		APIHost      string `toml:"api_host"`
		ProductType  string `toml:"product_type"`
		CategoryType string `toml:"category_type"`
		ProductLimit int    `toml:"product_limit"`
	} `toml:"content"`
	Cart struct {
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
		Slot    string `toml:"slot"`
	} `toml:"cart"`
	Log struct {
		Level string `toml:"level"`
		Path  string `toml:"path"`
	} `toml:"log"`
}

// Load reads the config at path (the default location when empty), falling
// back to defaults when the file is missing. Environment overrides are
// applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer func() { _ = file.Close() }()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := Config{
		Content: Content{
			ProjectID:    strings.TrimSpace(raw.Content.ProjectID),
			Dataset:      orDefault(raw.Content.Dataset, defaultDataset),
			APIVersion:   orDefault(raw.Content.APIVersion, defaultAPIVersion),
			UseCDN:       raw.Content.UseCDN,
			Token:        strings.TrimSpace(raw.Content.Token),
			APIHost:      strings.TrimSpace(raw.Content.APIHost),
			ProductType:  orDefault(raw.Content.ProductType, defaultProductType),
			CategoryType: orDefault(raw.Content.CategoryType, defaultCategoryType),
			ProductLimit: raw.Content.ProductLimit,
		},
		Cart: Cart{
			Backend: strings.ToLower(orDefault(raw.Cart.Backend, defaultBackend)),
			Slot:    orDefault(raw.Cart.Slot, defaultSlot),
		},
		Log: Log{
			Level: strings.ToLower(orDefault(raw.Log.Level, defaultLogLevel)),
		},
	}
	if err := applyEnv(&cfg.Content); err != nil {
		return Config{}, err
	}
	if cfg.Content.ProductLimit < 0 {
		return Config{}, fmt.Errorf("content product_limit %d: must not be negative", cfg.Content.ProductLimit)
	}

	switch cfg.Cart.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("cart backend %q: want %s, %s, or %s", cfg.Cart.Backend, BackendFile, BackendSQLite, BackendMemory)
	}

	cfg.Cart.Path = mustExpand(orDefault(raw.Cart.Path, defaultCartPath(cfg.Cart.Backend)))
	cfg.Log.Path = mustExpand(orDefault(raw.Log.Path, defaultDataDir+"/storefront.log"))

	return cfg, nil
}

// LoadDotenv loads KEY=value pairs from files into the environment without
// replacing variables that are already set. Missing files are skipped.
// With no arguments it reads .env in the working directory.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate reports whether the content API can be addressed.
func (c Content) Validate() error {
	if c.ProjectID == "" && c.APIHost == "" {
		return ErrNoProject
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func applyEnv(c *Content) error {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	override(&c.ProjectID, EnvProjectID)
	override(&c.Dataset, EnvDataset)
	override(&c.APIVersion, EnvAPIVersion)
	override(&c.Token, EnvToken)
	override(&c.APIHost, EnvAPIHost)

	if v := strings.TrimSpace(os.Getenv(EnvProductLimit)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvProductLimit, v, err)
		}
		c.ProductLimit = n
	}
	return nil
}

func defaultCartPath(backend string) string {
	if backend == BackendSQLite {
		return defaultDataDir + "/cart.db"
	}
	return defaultDataDir + "/cart.json"
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
