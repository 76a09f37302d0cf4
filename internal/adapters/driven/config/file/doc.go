// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML settings in ~/.ideaforge/config.toml
//   - CatalogStore: the TOML vocabulary catalog, seeded from a built-in default
package file
