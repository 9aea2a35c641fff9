package gitctx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/prscore/internal/diff"
)

// DiffOptions controls how diffs are gathered.
type DiffOptions struct {
	Dir          string // repository working directory; empty means the process cwd
	ContextLines int
	MaxDiffBytes int
	Include      []string
	Exclude      []string
}

// DiffResult holds the collected diff and metadata.
type DiffResult struct {
	Diff    string
	Files   []string
	Mode    string
	Range   string
	Repo    RepoMeta
	Dropped []string // files left out to stay within MaxDiffBytes
}

// PullRequest parses the collected diff into a local pull request record.
func (r DiffResult) PullRequest() diff.PullRequest {
	return diff.ParsePullRequest(r.Diff)
}

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// GetRepoMeta collects repository metadata from git.
func GetRepoMeta(ctx context.Context, dir string) (RepoMeta, error) {
	root, err := gitOutput(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return RepoMeta{}, fmt.Errorf("not a git repository: %w", err)
	}
	head, err := gitOutput(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		head = "" // new repo with no commits
	}
	branch, err := gitOutput(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		branch = ""
	}
	return RepoMeta{
		Root:   strings.TrimSpace(root),
		Head:   strings.TrimSpace(head),
		Branch: strings.TrimSpace(branch),
	}, nil
}

// Unstaged returns the diff of working tree vs index.
func Unstaged(ctx context.Context, opts DiffOptions) (DiffResult, error) {
	args := buildDiffArgs(opts)
	out, err := gitOutput(ctx, opts.Dir, append([]string{"diff"}, args...)...)
	if err != nil {
		return DiffResult{}, fmt.Errorf("git diff: %w", err)
	}
	return buildResult(ctx, out, "unstaged", "", opts)
}

// Staged returns the diff of index vs HEAD.
func Staged(ctx context.Context, opts DiffOptions) (DiffResult, error) {
	args := buildDiffArgs(opts)
	out, err := gitOutput(ctx, opts.Dir, append([]string{"diff", "--cached"}, args...)...)
	if err != nil {
		return DiffResult{}, fmt.Errorf("git diff --cached: %w", err)
	}
	return buildResult(ctx, out, "staged", "", opts)
}

// Commit returns the diff for a specific commit vs its parent, or vs
// parent when one is given.
func Commit(ctx context.Context, sha, parent string, opts DiffOptions) (DiffResult, error) {
	args := buildDiffArgs(opts)
	if parent != "" {
		out, err := gitOutput(ctx, opts.Dir, append([]string{"diff", parent, sha}, args...)...)
		if err != nil {
			return DiffResult{}, fmt.Errorf("git diff %s %s: %w", parent, sha, err)
		}
		return buildResult(ctx, out, "commit", sha, opts)
	}
	out, err := gitOutput(ctx, opts.Dir, append([]string{"diff", sha + "~1", sha}, args...)...)
	if err != nil {
		// Initial commit has no parent.
		showArgs := append([]string{"show", "--format=", sha}, args...)
		out, err = gitOutput(ctx, opts.Dir, showArgs...)
		if err != nil {
			return DiffResult{}, fmt.Errorf("git show %s: %w", sha, err)
		}
	}
	return buildResult(ctx, out, "commit", sha, opts)
}

// Range returns the combined diff for a revision range. With mergeBase a
// two-dot range is compared from the merge base, as a pull request is.
func Range(ctx context.Context, revRange string, mergeBase bool, opts DiffOptions) (DiffResult, error) {
	args := buildDiffArgs(opts)
	diffRange := revRange
	if mergeBase && strings.Contains(revRange, "..") && !strings.Contains(revRange, "...") {
		diffRange = strings.Replace(revRange, "..", "...", 1)
	}
	out, err := gitOutput(ctx, opts.Dir, append([]string{"diff", diffRange}, args...)...)
	if err != nil {
		return DiffResult{}, fmt.Errorf("git diff %s: %w", revRange, err)
	}
	return buildResult(ctx, out, "range", revRange, opts)
}

// Snippet wraps raw content as a diff for path. If base is non-empty the
// diff is computed against it, otherwise the content is a new file.
func Snippet(ctx context.Context, content, name, base string) (DiffResult, error) {
	name = filepath.ToSlash(filepath.Clean(name))
	if name == "." || name == "" || strings.HasPrefix(name, "../") || path.IsAbs(name) {
		return DiffResult{}, fmt.Errorf("snippet path must be a relative file name, got %q", name)
	}

	var out string
	if base == "" {
		synth, err := diff.Synthesize(name, content)
		if err != nil {
			return DiffResult{}, err
		}
		out = synth
	} else {
		d, err := diffAgainstBase(ctx, name, base, content)
		if err != nil {
			return DiffResult{}, err
		}
		out = d
	}

	return DiffResult{
		Diff:  out,
		Files: []string{name},
		Mode:  "snippet",
	}, nil
}

// diffAgainstBase writes both versions under a/ and b/ in a temp dir and
// runs git diff --no-index there, so the headers carry the real name.
func diffAgainstBase(ctx context.Context, name, base, content string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "prscore-snippet-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	for side, data := range map[string]string{"a": base, "b": content} {
		p := filepath.Join(tmpDir, side, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			return "", err
		}
	}

	// Exit status 1 means the files differ.
	out, err := gitOutput(ctx, tmpDir, "diff", "--no-index", "--no-prefix", "a/"+name, "b/"+name)
	if err != nil && out == "" {
		return "", fmt.Errorf("git diff --no-index: %w", err)
	}
	return out, nil
}

// DiffFile reads a saved unified diff from name, or from stdin when name
// is "-".
func DiffFile(name string, stdin io.Reader, opts DiffOptions) (DiffResult, error) {
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return DiffResult{}, fmt.Errorf("reading diff %s: %w", name, err)
	}
	res := filterResult(keepIncluded(string(data), opts.Include), opts)
	res.Mode = "file"
	return res, nil
}

// keepIncluded drops sections whose path matches none of the include
// globs. Git modes pass includes as pathspecs instead.
func keepIncluded(d string, include []string) string {
	if len(include) == 0 {
		return d
	}
	var kept strings.Builder
	for _, section := range splitDiffSections(d) {
		p := extractPathFromSection(section)
		if p == "" || MatchesAny(p, include) {
			kept.WriteString(section)
		}
	}
	return kept.String()
}

func buildDiffArgs(opts DiffOptions) []string {
	var args []string
	if opts.ContextLines > 0 {
		args = append(args, fmt.Sprintf("-U%d", opts.ContextLines))
	}
	args = append(args, "--")
	for _, p := range opts.Include {
		if p != "**/*" {
			args = append(args, p)
		}
	}
	return args
}

func buildResult(ctx context.Context, out, mode, rangeStr string, opts DiffOptions) (DiffResult, error) {
	meta, err := GetRepoMeta(ctx, opts.Dir)
	if err != nil {
		meta = RepoMeta{}
	}
	res := filterResult(out, opts)
	res.Mode = mode
	res.Range = rangeStr
	res.Repo = meta
	return res, nil
}

// filterResult drops excluded files, then drops whole files once the byte
// budget is spent. Excludes go first so they do not consume the budget.
func filterResult(out string, opts DiffOptions) DiffResult {
	var res DiffResult
	var kept strings.Builder
	for _, section := range splitDiffSections(out) {
		p := extractPathFromSection(section)
		if p != "" && len(opts.Exclude) > 0 && MatchesAny(p, opts.Exclude) {
			continue
		}
		if opts.MaxDiffBytes > 0 && kept.Len()+len(section) > opts.MaxDiffBytes {
			if p != "" {
				res.Dropped = append(res.Dropped, p)
			}
			continue
		}
		kept.WriteString(section)
	}
	if len(res.Dropped) > 0 {
		slog.Warn("diff exceeds byte budget; files dropped",
			slog.Int("max_diff_bytes", opts.MaxDiffBytes),
			slog.Int("dropped", len(res.Dropped)),
		)
	}
	res.Diff = kept.String()
	res.Files = extractFiles(res.Diff)
	return res
}

func extractFiles(d string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(d, "\n") {
		if strings.HasPrefix(line, "+++ b/") {
			f := strings.TrimSpace(strings.TrimPrefix(line, "+++ b/"))
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

// splitDiffSections cuts the diff into one section per file, using the
// same "+++ b/" markers as diff.Parse. A section also takes the header
// lines directly above its marker ("diff ...", "index ...", "--- a/...").
// Text before the first section stays in it.
func splitDiffSections(d string) []string {
	if strings.TrimSpace(d) == "" {
		return nil
	}
	lines := strings.SplitAfter(d, "\n")
	var starts []int
	floor := 0
	for i, line := range lines {
		if !strings.HasPrefix(line, "+++ b/") {
			continue
		}
		start := i
		if start > floor && strings.HasPrefix(lines[start-1], "--- ") {
			start--
		}
		for start > floor && isFileHeader(lines[start-1]) {
			start--
		}
		starts = append(starts, start)
		floor = i + 1
	}
	if len(starts) == 0 {
		return []string{d}
	}
	starts[0] = 0

	sections := make([]string, 0, len(starts))
	for k, start := range starts {
		end := len(lines)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		sections = append(sections, strings.Join(lines[start:end], ""))
	}
	return sections
}

var fileHeaderPrefixes = []string{
	"diff ", "index ", "new file mode", "deleted file mode", "old mode", "new mode",
	"similarity index", "dissimilarity index", "rename from", "rename to", "copy from", "copy to",
}

// isFileHeader reports whether line is a per-file header emitted before
// the "---"/"+++" pair. Hunk lines always start with ' ', '+', '-' or '\'.
func isFileHeader(line string) bool {
	for _, p := range fileHeaderPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func extractPathFromSection(section string) string {
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "+++ b/") {
			return strings.TrimSpace(strings.TrimPrefix(line, "+++ b/"))
		}
	}
	return ""
}

// MatchesAny returns true if the path matches any of the given glob
// patterns. A "**/" prefix matches in any directory and a "/**" suffix
// matches everything below a directory.
func MatchesAny(p string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := path.Match(pattern, p); err == nil && matched {
			return true
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			if p == dir || strings.HasPrefix(p, dir+"/") {
				return true
			}
			if rest, ok := strings.CutPrefix(dir, "**/"); ok {
				if strings.Contains("/"+p+"/", "/"+rest+"/") {
					return true
				}
			}
		}
		if clean, ok := strings.CutPrefix(pattern, "**/"); ok {
			if matched, err := path.Match(clean, path.Base(p)); err == nil && matched {
				return true
			}
			if matched, err := path.Match(clean, p); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// maxFileBytes is the per-file size limit for codebase scoring.
const maxFileBytes = 1 << 20 // 1MB

// WalkFiles returns all git-tracked, non-binary files matching the
// include/exclude filters, sorted.
func WalkFiles(ctx context.Context, opts DiffOptions) ([]string, error) {
	out, err := gitOutput(ctx, opts.Dir, "ls-files")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(opts.Include) > 0 && !MatchesAny(line, opts.Include) {
			continue
		}
		if len(opts.Exclude) > 0 && MatchesAny(line, opts.Exclude) {
			continue
		}
		files = append(files, line)
	}

	sort.Strings(files)
	return files, nil
}

// Codebase renders every tracked text file as a new-file diff, so a whole
// tree can be scored as though it were one pull request.
func Codebase(ctx context.Context, opts DiffOptions) (DiffResult, error) {
	meta, err := GetRepoMeta(ctx, opts.Dir)
	if err != nil {
		return DiffResult{}, err
	}

	files, err := WalkFiles(ctx, opts)
	if err != nil {
		return DiffResult{}, err
	}

	var combined strings.Builder
	var included, dropped []string
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(meta.Root, filepath.FromSlash(name)))
		if err != nil || len(data) > maxFileBytes || isBinary(data) {
			continue
		}
		section, err := diff.Synthesize(name, string(data))
		if err != nil {
			return DiffResult{}, err
		}
		if opts.MaxDiffBytes > 0 && combined.Len()+len(section) > opts.MaxDiffBytes {
			dropped = append(dropped, name)
			continue
		}
		combined.WriteString(section)
		included = append(included, name)
	}

	return DiffResult{
		Diff:    combined.String(),
		Files:   included,
		Mode:    "codebase",
		Repo:    meta,
		Dropped: dropped,
	}, nil
}

// isBinary treats content with a NUL byte in its first 8KB as binary, the
// same heuristic git uses.
func isBinary(data []byte) bool {
	head := data
	if len(head) > 8000 {
		head = head[:8000]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
