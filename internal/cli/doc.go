// Package cli wires together the Cobra command tree for the prscore binary.
//
// It defines the root command and all subcommands (review, github, config,
// cache, hook, profiles, version), binds flags, reads configuration, runs
// the scoring engine, and returns deterministic exit codes for CI gating.
package cli
