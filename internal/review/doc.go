// Package review assembles the quality report for a pull request.
//
// The Engine runs the analyzer set over every changed file with bounded
// parallelism, applies the scoring policy per file, and returns a Report
// whose file order matches the input. A file with no issues still gets an
// entry. Reports contain nothing time- or run-dependent.
package review
