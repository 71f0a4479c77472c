// Package catalog turns content documents into display-ready listings.
//
// A Loader issues one query per call and returns a State that is either
// Loaded with items in response order or Failed with a static reason. There
// is no retry: a failed listing is retried only by activating the view again.
//
// Missing optional fields degrade to placeholders (PlaceholderImage,
// PlaceholderTitle, PlaceholderCategory, no badge). Prices are coerced with
// ParsePrice; a product whose price is missing or non-numeric displays as
// zero but carries PriceValid=false so nothing downstream can total it.
package catalog
