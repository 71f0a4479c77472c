// Package app is the composition root of the storefront.
//
// # Overview
//
// Open wires configuration, logging, and the cart into a [Services] value
// that both the interactive UI and the CLI commands use. The content client
// and catalog loader are created lazily by [Services.Catalog], so cart-only
// commands work without a configured content project.
//
// # Startup
//
//  1. Load .env (if present) into the environment
//  2. Load ~/.config/storefront/config.toml (or the --config path)
//  3. Build the zap logger: log file for the UI, stderr for the CLI
//  4. Open the cart slot for the configured backend
//  5. Restore the cart; unreadable data starts an empty cart
//  6. Run creates the catalog loader and starts the Bubble Tea program
//
// # Data Flow
//
//	┌──────────────┐     ┌──────────────┐     ┌───────────────┐
//	│  ui.Model    │────▶│ catalog      │────▶│ content API   │
//	│  (Bubble Tea)│     │ Loader       │     │ (HTTP, GROQ)  │
//	└──────┬───────┘     └──────────────┘     └───────────────┘
//	       │
//	       ▼
//	┌──────────────┐     ┌──────────────┐
//	│ cart.Store   │────▶│ Slot (file,  │
//	│              │     │ sqlite, mem) │
//	└──────────────┘     └──────────────┘
//
// The UI owns the only cart.Store; each mutation is written through to the
// slot before the UI reports it.
//
// # Shutdown
//
// Run returns when the user quits or the context is cancelled (SIGINT or
// SIGTERM in cmd/storefront). Services.Close closes the SQLite database when
// that backend is used and flushes the logger.
package app
