package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/storefront/internal/content"
)

// Status is the lifecycle position of a catalog load.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// State is the per-view result of one load. It moves from Loading to
// exactly one of Loaded or Failed and is never reused for another load.
type State[T any] struct {
	Status Status
	Items  []T
	Err    error
	reason string
}

// Loading returns the initial state of a view activation.
func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

// Reason is the static message shown when the load failed.
func (s State[T]) Reason() string {
	if s.Status != StatusFailed {
		return ""
	}
	if s.reason == "" {
		return "Failed to fetch data"
	}
	return s.reason
}

// FetchError reports a transport, query or decode failure.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.What, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned by Loader.Product when no document matches.
var ErrNotFound = errors.New("product not found")

// Loader issues one content query per call and maps the documents into
// display-ready items. It never retries and has no side effects besides the
// network call.
type Loader struct {
	querier      content.Querier
	productType  string
	categoryType string
	logger       *zap.Logger
}

// LoaderOptions configure a Loader.
type LoaderOptions struct {
	ProductType  string
	CategoryType string
	Logger       *zap.Logger
}

// NewLoader builds a Loader on top of a content querier.
func NewLoader(q content.Querier, opts LoaderOptions) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		querier:      q,
		productType:  strings.TrimSpace(opts.ProductType),
		categoryType: strings.TrimSpace(opts.CategoryType),
		logger:       logger.Named("catalog"),
	}
}

// Products loads the product listing, at most limit items when limit > 0.
func (l *Loader) Products(ctx context.Context, limit int) State[Product] {
	return load(ctx, l, "products", content.ProductsQuery(l.productType, limit), ProductFromDoc)
}

// Categories loads the category listing.
func (l *Loader) Categories(ctx context.Context) State[Category] {
	return load(ctx, l, "categories", content.CategoriesQuery(l.categoryType), CategoryFromDoc)
}

// Product loads a single product by id.
func (l *Loader) Product(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, fmt.Errorf("product id is required")
	}
	var doc *content.ProductDoc
	if err := l.querier.Query(ctx, content.ProductByIDQuery(l.productType, id), &doc); err != nil {
		l.logger.Warn("product fetch failed", zap.String("id", id), zap.Error(err))
		return Product{}, &FetchError{What: "product " + id, Err: err}
	}
	if doc == nil {
		return Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ProductFromDoc(*doc), nil
}

func load[D, T any](ctx context.Context, l *Loader, what string, q content.Query, mapDoc func(D) T) State[T] {
	started := time.Now()
	var docs []D
	if err := l.querier.Query(ctx, q, &docs); err != nil {
		l.logger.Warn("catalog fetch failed",
			zap.String("listing", what),
			zap.String("type", q.Type),
			zap.Error(err))
		return State[T]{
			Status: StatusFailed,
			Err:    &FetchError{What: what, Err: err},
			reason: "Failed to fetch " + what,
		}
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		items = append(items, mapDoc(doc))
	}
	l.logger.Debug("catalog fetched",
		zap.String("listing", what),
		zap.Int("count", len(items)),
		zap.Duration("elapsed", time.Since(started)))
	return State[T]{Status: StatusLoaded, Items: items}
}
