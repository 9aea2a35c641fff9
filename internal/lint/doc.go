// Package lint runs an external linter over a code fragment.
//
// The Linter interface is the seam the analyzers depend on. ExecLinter
// writes the fragment to a temporary file, runs the configured command
// (pyflakes by default) under a timeout and returns the diagnostic lines
// it printed. CachedLinter memoises results in the on-disk cache.
//
// Expected failures are reported as sentinel errors so callers can decide
// how to treat them: ErrNotInstalled when the command is not on PATH,
// ErrTimeout when the deadline expired, ErrFailed when the command exited
// with an error and printed nothing. A nonzero exit that produced output
// is not an error; most linters signal findings that way.
package lint
