// Package cart owns the shopping cart and its durable storage.
//
// # Model
//
// A cart is an ordered list of [Entry] values, each a snapshot of a catalog
// product taken at add time. Product ids are unique within the cart: adding a
// product that is already present leaves the cart unchanged and reports
// [AlreadyInCart].
//
// # Persistence
//
// The whole list is encoded as a JSON array and written to a single [Slot]
// after every mutation, before the mutating call returns. Three slots exist:
//
//   - [FileSlot]: a JSON file replaced atomically (temp file and rename)
//   - [SQLiteSlot]: one row in a slots table, via modernc.org/sqlite
//   - [MemorySlot]: nothing leaves the process
//
// [Store.Load] restores the saved list. Missing data yields an empty cart and
// so does data that does not decode; the latter is logged and otherwise
// ignored.
//
// # Failures
//
// A failed write returns an error wrapping [ErrPersist]. The in-memory cart
// keeps the mutation and stays authoritative for the rest of the session.
//
// # Totals
//
// Prices are [decimal.Decimal] values so sums are exact; [Store.Total] rounds
// to two places.
package cart
