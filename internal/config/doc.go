// Package config loads storefront configuration.
//
// # Resolution
//
// Load follows this order:
//
//  1. Use the explicit path if one is given
//  2. Otherwise use ~/.config/storefront/config.toml
//  3. If the file does not exist, start from defaults
//  4. Missing or blank fields take their defaults
//  5. STOREFRONT_* environment variables override content settings
//
// LoadDotenv can be called first to populate the environment from a .env
// file; variables already set win.
//
// # TOML Format
//
//	[content]
//	project_id    = "abc123"
//	dataset       = "production"
//	api_version   = "2025-01-13"
//	use_cdn       = false
//	token         = ""
//	api_host      = ""            # overrides the project-derived host
//	product_type  = "products"
//	category_type = "categories"
//
//	[cart]
//	backend = "file"              # file, sqlite, or memory
//	path    = "~/.local/share/storefront/cart.json"
//	slot    = "cart"
//
//	[log]
//	level = "info"
//	path  = "~/.local/share/storefront/storefront.log"
//
// Tilde expansion applies to the config path, cart path, and log path.
//
// # Errors
//
// Load fails on unreadable files, invalid TOML, and unknown cart backends.
// A missing project id is not a load error because the cart commands work
// without the content API; callers that fetch content check
// Content.Validate.
package config
