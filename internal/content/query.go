package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one entry of a query projection. Expr is emitted as
// `"Name": Expr` when set; otherwise the attribute is projected as-is.
type Field struct {
	Name string
	Expr string
}

// Query describes a read against the document store.
type Query struct {
	Type   string         // document _type, required
	Filter string         // extra filter ANDed with the type match
	Fields []Field        // projection; empty projects whole documents
	Limit  int            // zero means no slice
	One    bool           // select the first match instead of an array
	Params map[string]any // bound as $name
}

// GROQ renders the query string sent to the API.
func (q Query) GROQ() (string, error) {
	typ := strings.TrimSpace(q.Type)
	if typ == "" {
		return "", fmt.Errorf("query type is required")
	}

	var b strings.Builder
	b.WriteString(`*[_type == `)
	b.WriteString(strconv.Quote(typ))
	if filter := strings.TrimSpace(q.Filter); filter != "" {
		b.WriteString(" && ")
		b.WriteString(filter)
	}
	b.WriteString("]")

	switch {
	case q.One:
		b.WriteString("[0]")
	case q.Limit > 0:
		fmt.Fprintf(&b, "[0...%d]", q.Limit)
	}

	if len(q.Fields) > 0 {
		parts := make([]string, 0, len(q.Fields))
		for _, f := range q.Fields {
			name := strings.TrimSpace(f.Name)
			if name == "" {
				continue
			}
			if f.Expr == "" {
				parts = append(parts, name)
				continue
			}
			parts = append(parts, strconv.Quote(name)+": "+f.Expr)
		}
		b.WriteString("{")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("}")
	}
	return b.String(), nil
}

// Document types used by the storefront unless overridden in config.
const (
	DefaultProductType  = "products"
	DefaultCategoryType = "categories"
)

var productFields = []Field{
	{Name: "_id"},
	{Name: "title"},
	{Name: "price"},
	{Name: "priceWithoutDiscount"},
	{Name: "category", Expr: "category->{_id, title}"},
	{Name: "tags"},
	{Name: "badge"},
	{Name: "imageUrl", Expr: "image.asset->url"},
	{Name: "description"},
	{Name: "inventory"},
}

var categoryFields = []Field{
	{Name: "_id"},
	{Name: "title"},
	{Name: "imageUrl", Expr: "image.asset->url"},
	{Name: "productCount"},
}

// ProductsQuery lists products of the given type, at most limit when limit > 0.
func ProductsQuery(typ string, limit int) Query {
	return Query{Type: orDefault(typ, DefaultProductType), Fields: productFields, Limit: limit}
}

// ProductByIDQuery selects a single product by document id.
func ProductByIDQuery(typ, id string) Query {
	return Query{
		Type:   orDefault(typ, DefaultProductType),
		Filter: "_id == $id",
		Fields: productFields,
		One:    true,
		Params: map[string]any{"id": id},
	}
}

// CategoriesQuery lists categories of the given type.
func CategoriesQuery(typ string) Query {
	return Query{Type: orDefault(typ, DefaultCategoryType), Fields: categoryFields}
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}
