// Package content provides an HTTP client for the headless content API that
// supplies the storefront catalog.
//
// # Overview
//
// The content provider is an external document store queried with GROQ over
// HTTP. This package builds query strings from a small descriptor, issues the
// request and decodes the result into the raw document types that mirror the
// projections the storefront asks for. It knows nothing about display rules;
// mapping documents into products and categories is the catalog package's job.
//
// # Queries
//
// A Query names a document type, an optional extra filter, a projection and
// an optional limit:
//
//	q := content.ProductsQuery("products", 4)
//	s, _ := q.GROQ()
//	// *[_type == "products"][0...4]{_id, title, price, ..., "imageUrl": image.asset->url, ...}
//
// Parameters are bound as $name and JSON-encoded into the request URL.
//
// # Endpoint
//
//	GET {base}/v{apiVersion}/data/query/{dataset}?query=...&$id="..."
//
// The base is https://{projectId}.api.sanity.io, or apicdn.sanity.io when the
// CDN is enabled. Options.APIHost overrides it, which is how tests and local
// mirrors point the client elsewhere. The response envelope is
// {"query": ..., "result": ..., "ms": ...}; only result is decoded into the
// caller's destination.
//
// # Error Handling
//
// All errors are wrapped with fmt.Errorf and describe what failed:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /v2025-01-13/data/query/production returned status 400: <description>"
//   - "decode response: unexpected EOF"
//
// The client has no retries and no cache. Callers decide what a failure means.
//
// # Lenient Scalars
//
// Prices are authored as numbers in some datasets and strings in others.
// Scalar keeps either form verbatim so one odd document never fails the
// decode of a whole listing.
package content
