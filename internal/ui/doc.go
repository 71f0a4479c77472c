// Package ui provides the interactive terminal storefront.
//
// # Architecture
//
// The UI is a Bubble Tea program. [Model] is a value type; Update returns a
// new Model and a command, and every fetch runs as a command whose result
// comes back as a message. Nothing in the package blocks the event loop on
// the network.
//
// # Views
//
//   - Products: a grid of product cells (image reference, title, price, badge)
//   - Categories: a grid of category cells
//   - Cart: line items, subtotal, delivery note, total, checkout hint
//
// Cells appear in exactly the order the content API returned them, one cell
// per item.
//
// # Loading
//
// Activating a listing view (switching to it, or pressing r) increments that
// view's generation and issues one load tagged with it. A result whose
// generation is not the view's current one is dropped, so a slow response
// can never overwrite a newer one. While loading, a spinner is shown; a
// failed load shows a fixed message; an empty result shows the empty-state
// text.
//
// # Cart Feedback
//
// Adding and removing report through a flash line under the content that
// clears itself after a few seconds. A save failure is reported in the
// warning color while the in-memory cart keeps the change.
//
// # Key Bindings
//
// Global:
//   - tab / shift+tab: Cycle views
//   - p / c / b: Products / Categories / Cart
//   - r: Reload the current listing
//   - T: Cycle theme (saved to prefs)
//   - ?: Toggle help
//   - q / ctrl+c: Quit
//
// Listings:
//   - h/j/k/l or arrows: Move through the grid
//   - a / enter: Add the selected product
//
// Cart:
//   - j/k: Move
//   - x: Remove the selected entry
//   - o: Checkout (not available)
//
// # Themes
//
// Nightfox, Kanagawa, and Slate. Badge colors follow the label: Sale is red,
// New is blue, anything else green.
package ui
