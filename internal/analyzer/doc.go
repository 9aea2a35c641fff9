// Package analyzer holds the per-file checks that turn a changed file into
// issues and metrics.
//
// Every check implements Analyzer. A Set picks the checks that apply to a
// file and runs them in a fixed order: the TODO scan first, then the
// language checks (complexity, docstrings, print calls, lint) for
// recognised source files, or the generic checks (large addition, secret
// keywords) for everything else. Issue order in a result follows that
// execution order.
//
// Expected failures such as an unparseable fragment or a missing linter
// never surface as errors; the check simply reports nothing. An error
// returned from Analyze means something unexpected went wrong.
package analyzer
