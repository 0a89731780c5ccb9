// Package config loads, normalizes, and validates reviewlens configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DEEPSEEK_API_KEY, ANTHROPIC_API_KEY, REVIEWLENS_CLASSIFIER_URL and
// OLLAMA_HOST. Always obtain settings through this package so downstream code
// receives expanded paths and clear validation errors.
package config
