// Package config loads and caches mission configurations from a directory
// of JSON files.
//
// Each file in the directory describes one mission: the grid edges, the
// rover's starting position and heading, and the operator-facing messages.
// Configurations are validated on load and cached in memory; SaveConfig
// validates before writing and updates the cache.
//
// The default configuration is plateau.json when present, otherwise the
// first valid file in the directory, otherwise a built-in fallback.
package config
