// Package diff turns unified-diff text into per-file change records.
//
// Parsing is deliberately lenient: a new file section starts at every
// "+++ b/<path>" line and runs until the next one. Hunk headers and
// extended git headers are kept as ordinary patch lines. Text without any
// file marker parses to an empty list rather than an error.
package diff
