// Package config loads and merges prscore configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (PRSCORE_FORMAT, PRSCORE_MIN_SCORE, PRSCORE_PROFILE, etc.)
//  3. Config file ($XDG_CONFIG_HOME/prscore/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write one back, and
// [SetField] to update a single key. [Validate] checks the merged result.
package config
