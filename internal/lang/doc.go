// Package lang provides the structural checks that depend on the language
// of a changed file: cyclomatic complexity per block, missing
// documentation strings, and the pattern for ad-hoc print calls.
//
// Languages are looked up by file extension through a Registry. Python is
// the only built-in language; it is parsed with tree-sitter. A fragment
// that does not parse cleanly yields ErrUnparseable so callers can tell
// "unknown" apart from "nothing found".
package lang
