// Package file implements the ConfigStore port over a TOML file in the
// shelfwise config directory. Nested tables flatten to dot-notation
// keys, so [catalog] base_url reads back as "catalog.base_url".
package file
