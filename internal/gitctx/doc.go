// Package gitctx collects unified diffs from a local git repository or
// from files, and turns them into pull request records for scoring.
//
// It supports the unstaged, staged, commit, range and snippet modes by
// shelling out to git, plus whole-tree scoring ([Codebase]) and reading a
// saved diff ([DiffFile]). Results are filtered by include/exclude glob
// patterns and bounded by a byte budget that drops whole files.
package gitctx
