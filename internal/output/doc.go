// Package output renders quality reports for display or machine consumption.
//
// Four formats are supported:
//   - text: terminal summary, colored when writing to a TTY (default)
//   - json: the report document consumed by downstream tooling
//   - markdown: a pull request comment with per-file issue tables
//   - sarif: SARIF v2.1.0 for code scanning upload
//
// Use [GetWriter] to obtain a [Writer] for a format string, or
// [WriteReport] to write straight to a file or stdout.
package output
