// Package cache stores linter diagnostics on disk so repeated runs over the
// same fragment skip the external process.
//
// Entries are keyed by a SHA-256 hash of the linter command line, the file
// name and the fragment bytes. Each entry holds the diagnostic lines with a
// creation time; entries older than the TTL are treated as misses and
// removed when read.
//
// The default directory is $XDG_CACHE_HOME/prscore, or the platform's
// usual cache location.
package cache
