// Package config loads runtime configuration for the puzzle binaries from
// multiple sources (YAML files, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
package config
