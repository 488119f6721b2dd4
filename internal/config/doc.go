// Package config loads, normalizes, and validates packlist configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as PACKLIST_DATA_DIR.
// Always obtain settings through this package so downstream code receives
// absolute paths and a known storage backend.
package config
