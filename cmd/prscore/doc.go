// Prscore is a CLI that scores the quality of a pull request.
//
// It reads the files changed by a GitHub pull request or a local diff, runs
// a fixed set of checks over the added code, and prints a per-file issue
// report with a final score out of 100. Exit codes are deterministic so the
// score can gate CI jobs and git hooks.
//
// Usage:
//
//	prscore github https://github.com/owner/repo/pull/123
//	prscore review staged --min-score 70   # score staged changes
//	prscore review range origin/main..HEAD # score a revision range
//	prscore review file change.diff        # score a saved diff
//	prscore review snippet --path app.py   # score code from stdin
//	prscore profiles                       # list scoring profiles
package main
