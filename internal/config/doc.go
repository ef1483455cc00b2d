// Package config loads, normalizes, and validates mdpage configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MDPAGE_LOG_LEVEL. The Config type centralizes the source/output paths, the
// page presentation knobs, and logging settings so the CLI and converter
// resolve them in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
