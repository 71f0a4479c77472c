package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/storefront/internal/content"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeQuerier answers queries by document type with canned JSON.
type fakeQuerier struct {
	mu      sync.Mutex
	results map[string]string
	err     error
	queries []content.Query
}

func (f *fakeQuerier) Query(_ context.Context, q content.Query, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return f.err
	}
	raw, ok := f.results[q.Type]
	if !ok {
		raw = "null"
	}
	return json.Unmarshal([]byte(raw), dest)
}

func TestLoader_ProductsKeepsOrderAndMapsFields(t *testing.T) {
	q := &fakeQuerier{results: map[string]string{
		"products": `[
			{"_id":"a","title":"Chair","price":"19.99","badge":"Sale","imageUrl":"https://cdn/a.png","category":{"_id":"c1","title":"Seating"}},
			{"_id":"b","title":"Lamp","price":5},
			{"_id":"c","title":"","price":"abc"},
			{"_id":"d","title":"Desk","price":120.5,"inventory":0}
		]`,
	}}
	l := NewLoader(q, LoaderOptions{})

	state := l.Products(context.Background(), 4)
	if state.Status != StatusLoaded {
		t.Fatalf("Status = %v, want loaded (err %v)", state.Status, state.Err)
	}

	type row struct {
		ID, Title, Price, Image, Badge, Category string
		Valid                                    bool
	}
	var got []row
	for _, p := range state.Items {
		got = append(got, row{p.ID, p.Title, p.DisplayPrice(), p.ImageURL, p.Badge, p.Category.Title, p.PriceValid})
	}
	want := []row{
		{"a", "Chair", "$19.99", "https://cdn/a.png", "Sale", "Seating", true},
		{"b", "Lamp", "$5.00", PlaceholderImage, "", PlaceholderCategory, true},
		{"c", PlaceholderTitle, "$0.00", PlaceholderImage, "", PlaceholderCategory, false},
		{"d", "Desk", "$120.50", PlaceholderImage, "", PlaceholderCategory, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("products mismatch (-want +got):\n%s", diff)
	}
	if state.Items[3].InStock() {
		t.Fatalf("InStock() = true for zero inventory")
	}
	if len(q.queries) != 1 || q.queries[0].Limit != 4 {
		t.Fatalf("queries = %#v, want one query with limit 4", q.queries)
	}
}

func TestLoader_MalformedFieldDegradesOnlyThatField(t *testing.T) {
	q := &fakeQuerier{results: map[string]string{
		"products": `[
			{"_id":"a","title":"Chair","price":"19.99"},
			{"_id":"b","title":"Lamp","price":5,"inventory":"3","tags":[{"_ref":"t1"},"lighting"],"badge":42},
			{"_id":"c","title":"Rug","price":"30","inventory":"lots","category":"c9"}
		]`,
		"categories": `[{"_id":"c1","title":"Seating","productCount":"2"},{"_id":"c2","title":"Lighting","productCount":{"n":1}}]`,
	}}
	l := NewLoader(q, LoaderOptions{})

	products := l.Products(context.Background(), 0)
	if products.Status != StatusLoaded || len(products.Items) != 3 {
		t.Fatalf("Products = %v with %d items (err %v), want loaded with 3", products.Status, len(products.Items), products.Err)
	}
	lamp := products.Items[1]
	if lamp.Inventory == nil || *lamp.Inventory != 3 {
		t.Fatalf("lamp inventory = %v, want 3", lamp.Inventory)
	}
	if diff := cmp.Diff([]string{"lighting"}, lamp.Tags); diff != "" {
		t.Fatalf("lamp tags mismatch (-want +got):\n%s", diff)
	}
	if lamp.Badge != "" {
		t.Fatalf("lamp badge = %q, want none", lamp.Badge)
	}
	rug := products.Items[2]
	if rug.Inventory != nil || !rug.InStock() {
		t.Fatalf("rug inventory = %v, want absent", rug.Inventory)
	}
	if rug.Category.HasCategory() || rug.Category.Title != PlaceholderCategory {
		t.Fatalf("rug category = %+v, want placeholder", rug.Category)
	}

	categories := l.Categories(context.Background())
	want := []Category{
		{ID: "c1", Title: "Seating", ImageURL: PlaceholderImage, ProductCount: 2},
		{ID: "c2", Title: "Lighting", ImageURL: PlaceholderImage},
	}
	if diff := cmp.Diff(want, categories.Items); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_CategoriesPlaceholders(t *testing.T) {
	q := &fakeQuerier{results: map[string]string{
		"categories": `[{"_id":"c1","title":"Wing Chair","imageUrl":"x.png","productCount":3},{"_id":"c2"}]`,
	}}
	state := NewLoader(q, LoaderOptions{}).Categories(context.Background())
	want := []Category{
		{ID: "c1", Title: "Wing Chair", ImageURL: "x.png", ProductCount: 3},
		{ID: "c2", Title: PlaceholderCategory, ImageURL: PlaceholderImage},
	}
	if diff := cmp.Diff(want, state.Items); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_UsesConfiguredTypes(t *testing.T) {
	q := &fakeQuerier{results: map[string]string{"products5": `[]`, "cats": `[]`}}
	l := NewLoader(q, LoaderOptions{ProductType: "products5", CategoryType: "cats"})

	if s := l.Products(context.Background(), 0); s.Status != StatusLoaded || len(s.Items) != 0 {
		t.Fatalf("Products = %#v, want loaded empty", s)
	}
	if s := l.Categories(context.Background()); s.Status != StatusLoaded {
		t.Fatalf("Categories = %#v, want loaded", s)
	}
	if q.queries[0].Type != "products5" || q.queries[1].Type != "cats" {
		t.Fatalf("query types = %q, %q", q.queries[0].Type, q.queries[1].Type)
	}
}

func TestLoader_FailureIsReportedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	boom := errors.New("dial tcp: connection refused")
	l := NewLoader(&fakeQuerier{err: boom}, LoaderOptions{Logger: zap.New(core)})

	state := l.Products(context.Background(), 0)
	if state.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", state.Status)
	}
	if state.Reason() != "Failed to fetch products" {
		t.Fatalf("Reason = %q", state.Reason())
	}
	var fe *FetchError
	if !errors.As(state.Err, &fe) || !errors.Is(state.Err, boom) {
		t.Fatalf("Err = %v, want FetchError wrapping cause", state.Err)
	}
	if logs.FilterMessage("catalog fetch failed").Len() != 1 {
		t.Fatalf("expected one warning log, got %d entries", logs.Len())
	}
}

func TestLoader_ProductByID(t *testing.T) {
	q := &fakeQuerier{results: map[string]string{}}
	l := NewLoader(q, LoaderOptions{})

	if _, err := l.Product(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Product error = %v, want ErrNotFound", err)
	}

	q.results["products"] = `{"_id":"p1","title":"Chair","price":"10"}`
	p, err := l.Product(context.Background(), " p1 ")
	if err != nil {
		t.Fatalf("Product returned error: %v", err)
	}
	if p.ID != "p1" || !p.Price.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("Product = %#v", p)
	}
	if got := q.queries[len(q.queries)-1].Params["id"]; got != "p1" {
		t.Fatalf("id param = %v, want p1", got)
	}

	if _, err := l.Product(context.Background(), " "); err == nil {
		t.Fatalf("Product with blank id returned nil error")
	}
}

func TestLoader_ConcurrentViewsOwnTheirState(t *testing.T) {
	q := &fakeQuerier{results: map[string]string{
		"products":   `[{"_id":"a","title":"Chair","price":"1"}]`,
		"categories": `[{"_id":"c","title":"Seating"}]`,
	}}
	l := NewLoader(q, LoaderOptions{})

	var wg sync.WaitGroup
	var products State[Product]
	var categories State[Category]
	wg.Add(2)
	go func() { defer wg.Done(); products = l.Products(context.Background(), 0) }()
	go func() { defer wg.Done(); categories = l.Categories(context.Background()) }()
	wg.Wait()

	if len(products.Items) != 1 || len(categories.Items) != 1 {
		t.Fatalf("products=%d categories=%d, want 1 each", len(products.Items), len(categories.Items))
	}
	if !strings.EqualFold(categories.Items[0].Title, "seating") {
		t.Fatalf("category title = %q", categories.Items[0].Title)
	}
}

func TestStateReason(t *testing.T) {
	if got := Loading[Product]().Reason(); got != "" {
		t.Fatalf("Reason while loading = %q, want empty", got)
	}
	if got := (State[Product]{Status: StatusFailed}).Reason(); got != "Failed to fetch data" {
		t.Fatalf("Reason default = %q", got)
	}
	if StatusLoaded.String() != "loaded" || StatusLoading.String() != "loading" || StatusFailed.String() != "failed" {
		t.Fatalf("Status strings wrong")
	}
}
