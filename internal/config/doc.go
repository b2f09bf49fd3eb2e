// Package config loads novel-search settings from an optional TOML file.
//
// Values are resolved in order: built-in defaults, the config file
// (~/.config/novel-search/config.toml unless --config points elsewhere), and
// NOVEL_SEARCH_* environment variables. Command-line flags are applied on top
// by the cli package.
package config
