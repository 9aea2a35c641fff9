package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/prscore/internal/config"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/gitctx"
	"github.com/dshills/prscore/internal/scoring"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagPaths = ""
	flagExclude = ""
	flagContextLines = 0
	flagMaxDiffBytes = 0
	flagFormat = ""
	flagOut = ""
	flagMinScore = 0
	flagProfile = ""
	flagTodoScope = ""
	flagConcurrency = 0
	flagNoLint = false
	flagLintCmd = ""
	flagNoCache = false
	flagShowPatch = false
	flagNoColor = false
	flagParent = ""
	flagMergeBase = false
	flagSnippetPath = ""
	flagSnippetBase = ""
	flagGHOwner = ""
	flagGHRepo = ""
	flagGHPost = false
}

// saveExitCode restores exitCode when the test ends.
func saveExitCode(t *testing.T) {
	t.Helper()
	saved := exitCode
	t.Cleanup(func() { exitCode = saved })
	exitCode = ExitSuccess
}

// --- splitComma tests ---

func TestSplitComma(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", nil},
		{"single value", "foo", []string{"foo"}},
		{"multiple values", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace trimmed", " a , b , c ", []string{"a", "b", "c"}},
		{"empty parts skipped", "a,,b", []string{"a", "b"}},
		{"all empty", ",,,", nil},
		{"glob patterns", "*.py,src/**/*.py", []string{"*.py", "src/**/*.py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitComma(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitComma(%q) = %v (len %d), want %v (len %d)",
					tt.input, got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitComma(%q)[%d] = %q, want %q",
						tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// --- buildOverrides tests ---

func TestBuildOverrides_NoFlags(t *testing.T) {
	resetFlags()
	m := buildOverrides(nil)
	if len(m) != 0 {
		t.Errorf("buildOverrides() with no flags = %v, want empty map", m)
	}
}

func TestBuildOverrides_AllFlags(t *testing.T) {
	resetFlags()
	flagFormat = "json"
	flagMinScore = 80
	flagProfile = "strict"
	flagTodoScope = "added"
	flagConcurrency = 8
	flagContextLines = 5
	flagMaxDiffBytes = 1000
	flagNoLint = true
	flagLintCmd = "flake8"
	flagNoCache = true
	flagShowPatch = true

	m := buildOverrides(nil)

	expected := map[string]string{
		"format":        "json",
		"minScore":      "80",
		"profile":       "strict",
		"todoScope":     "added",
		"concurrency":   "8",
		"contextLines":  "5",
		"maxDiffBytes":  "1000",
		"lint.enabled":  "false",
		"lint.command":  "flake8",
		"cache.enabled": "false",
		"showPatch":     "true",
	}

	if len(m) != len(expected) {
		t.Fatalf("buildOverrides() returned %d entries, want %d", len(m), len(expected))
	}
	for k, v := range expected {
		if m[k] != v {
			t.Errorf("buildOverrides()[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestBuildOverrides_ZeroIntsExcluded(t *testing.T) {
	resetFlags()
	flagFormat = "sarif"

	m := buildOverrides(nil)

	for _, key := range []string{"minScore", "concurrency", "contextLines", "maxDiffBytes"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s=0 should not be in overrides", key)
		}
	}
	if m["format"] != "sarif" {
		t.Errorf("format = %q, want sarif", m["format"])
	}
}

func TestBuildOverrides_LoadedIntoConfig(t *testing.T) {
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	flagNoLint = true
	flagMinScore = 90

	cfg, err := config.Load(buildOverrides(nil))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.Lint.Enabled {
		t.Error("--no-lint should disable lint")
	}
	if cfg.MinScore != 90 {
		t.Errorf("MinScore = %d, want 90", cfg.MinScore)
	}
}

// --- buildDiffOpts tests ---

func TestBuildDiffOpts_FromConfig(t *testing.T) {
	resetFlags()
	cfg := config.Config{
		ContextLines: 5,
		MaxDiffBytes: 100000,
		Include:      []string{"*.py"},
		Exclude:      []string{"vendor/**"},
	}

	opts := buildDiffOpts(cfg)

	if opts.ContextLines != 5 {
		t.Errorf("ContextLines = %d, want 5", opts.ContextLines)
	}
	if opts.MaxDiffBytes != 100000 {
		t.Errorf("MaxDiffBytes = %d, want 100000", opts.MaxDiffBytes)
	}
	if len(opts.Include) != 1 || opts.Include[0] != "*.py" {
		t.Errorf("Include = %v, want [*.py]", opts.Include)
	}
	if len(opts.Exclude) != 1 || opts.Exclude[0] != "vendor/**" {
		t.Errorf("Exclude = %v, want [vendor/**]", opts.Exclude)
	}
}

func TestBuildDiffOpts_PathsFlagOverridesInclude(t *testing.T) {
	resetFlags()
	flagPaths = "src/**/*.py,lib/**/*.py"

	cfg := config.Config{Include: []string{"**/*"}}
	opts := buildDiffOpts(cfg)

	if len(opts.Include) != 2 {
		t.Fatalf("Include has %d entries, want 2", len(opts.Include))
	}
	if opts.Include[0] != "src/**/*.py" || opts.Include[1] != "lib/**/*.py" {
		t.Errorf("Include = %v", opts.Include)
	}
}

func TestBuildDiffOpts_ExcludeFlagAppends(t *testing.T) {
	resetFlags()
	flagExclude = "test/**,docs/**"

	cfgExclude := []string{"vendor/**"}
	opts := buildDiffOpts(config.Config{Exclude: cfgExclude})

	want := []string{"vendor/**", "test/**", "docs/**"}
	if len(opts.Exclude) != len(want) {
		t.Fatalf("Exclude = %v, want %v", opts.Exclude, want)
	}
	for i := range want {
		if opts.Exclude[i] != want[i] {
			t.Errorf("Exclude[%d] = %q, want %q", i, opts.Exclude[i], want[i])
		}
	}
	if len(cfgExclude) != 1 {
		t.Error("buildDiffOpts modified the config's exclude slice")
	}
}

// --- version command tests ---

func TestVersionCmd_Execute(t *testing.T) {
	if err := versionCmd.Execute(); err != nil {
		t.Errorf("version command returned error: %v", err)
	}
}

func TestVersionConstant(t *testing.T) {
	if version == "" {
		t.Error("version constant is empty")
	}
}

// --- profiles command tests ---

func TestProfilesCmd_Builtins(t *testing.T) {
	profilesCmd.SetArgs([]string{})
	if err := profilesCmd.Execute(); err != nil {
		t.Errorf("profiles returned error: %v", err)
	}
}

func TestProfilesCmd_UnknownProfile(t *testing.T) {
	profilesCmd.SetArgs([]string{"no-such-profile"})
	if err := profilesCmd.Execute(); err == nil {
		t.Error("profiles with an unknown profile should return error")
	}
}

func TestPrintPolicy(t *testing.T) {
	var buf strings.Builder
	p, ok := scoring.Builtin("default")
	if !ok {
		t.Fatal("default profile missing")
	}
	if err := printPolicy(&buf, p); err != nil {
		t.Fatalf("printPolicy: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"default", "TYPE", "todo", "secret", "25"} {
		if !strings.Contains(out, want) {
			t.Errorf("printPolicy output missing %q:\n%s", want, out)
		}
	}
}

// --- config command tests ---

func TestConfigInit_CreatesFile(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"init"})
	if err := configCmd.Execute(); err != nil {
		t.Fatalf("config init returned error: %v", err)
	}

	configPath := filepath.Join(tmpDir, "prscore", "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config init did not create config.json: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config file is not valid JSON: %v", err)
	}
	if cfg.Format != "text" {
		t.Errorf("format = %q, want text", cfg.Format)
	}
	if !cfg.Lint.Enabled {
		t.Error("lint should be enabled by default")
	}
}

func TestConfigInit_AlreadyExists(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfgDir := filepath.Join(tmpDir, "prscore")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	original := []byte(`{"format":"json"}`)
	if err := os.WriteFile(filepath.Join(cfgDir, "config.json"), original, 0o644); err != nil {
		t.Fatal(err)
	}

	configCmd.SetArgs([]string{"init"})
	if err := configCmd.Execute(); err != nil {
		t.Fatalf("config init with existing file returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfgDir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(original) {
		t.Errorf("config init overwrote existing file: %s", data)
	}
}

func TestConfigSet_UpdatesFile(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"set", "minScore", "75"})
	if err := configCmd.Execute(); err != nil {
		t.Fatalf("config set returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "prscore", "config.json"))
	if err != nil {
		t.Fatalf("cannot read config file: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config file is not valid JSON: %v", err)
	}
	if cfg.MinScore != 75 {
		t.Errorf("minScore = %d, want 75", cfg.MinScore)
	}
}

func TestConfigSet_InvalidKey(t *testing.T) {
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	configCmd.SetArgs([]string{"set", "unknownKey", "value"})
	if err := configCmd.Execute(); err == nil {
		t.Error("config set with invalid key should return error")
	}
}

func TestConfigSet_InvalidValue(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configCmd.SetArgs([]string{"set", "minScore", "150"})
	if err := configCmd.Execute(); err == nil {
		t.Error("config set with out-of-range minScore should return error")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "prscore", "config.json")); err == nil {
		t.Error("invalid value should not be saved")
	}
}

func TestConfigSet_MissingArgs(t *testing.T) {
	resetFlags()

	configCmd.SetArgs([]string{"set", "format"})
	if err := configCmd.Execute(); err == nil {
		t.Error("config set with 1 arg should return error (requires 2)")
	}
}

func TestConfigShow_Execute(t *testing.T) {
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	configCmd.SetArgs([]string{"show"})
	if err := configCmd.Execute(); err != nil {
		t.Errorf("config show returned error: %v", err)
	}
}

// --- cache command tests ---

func TestCacheShow_Execute(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_CACHE_HOME", tmpDir)

	cacheCmd.SetArgs([]string{"show"})
	if err := cacheCmd.Execute(); err != nil {
		t.Errorf("cache show returned error: %v", err)
	}
}

func TestCacheClear_Execute(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_CACHE_HOME", tmpDir)

	cacheDir := filepath.Join(tmpDir, "prscore")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "abc123.json"), []byte(`{"key":"test"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cacheCmd.SetArgs([]string{"clear"})
	if err := cacheCmd.Execute(); err != nil {
		t.Errorf("cache clear returned error: %v", err)
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatalf("cannot read cache dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			t.Errorf("cache clear did not remove %s", e.Name())
		}
	}
}

// --- review file end-to-end tests ---

const todoDiff = `diff --git a/app.py b/app.py
new file mode 100644
index 0000000..1111111
--- /dev/null
+++ b/app.py
@@ -0,0 +1,2 @@
+x = 1  # TODO: handle overflow
+y = x + 1
`

func writeDiffFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "change.diff")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

type jsonReport struct {
	Files []struct {
		Filename string `json:"filename"`
		Issues   []struct {
			Type   string `json:"type"`
			Detail string `json:"detail"`
		} `json:"issues"`
	} `json:"files"`
	FinalScore int `json:"final_score"`
	Penalty    int `json:"penalty"`
}

func runReviewFile(t *testing.T, args ...string) jsonReport {
	t.Helper()
	outPath := filepath.Join(t.TempDir(), "report.json")
	full := append([]string{"file"}, args...)
	full = append(full, "--no-lint", "--format", "json", "--out", outPath)

	reviewCmd.SetArgs(full)
	if err := reviewCmd.Execute(); err != nil {
		t.Fatalf("review file returned error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var rep jsonReport
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("report is not valid JSON: %v\n%s", err, data)
	}
	return rep
}

func TestReviewFile_ScoresDiff(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rep := runReviewFile(t, writeDiffFile(t, todoDiff))

	if exitCode != ExitSuccess {
		t.Errorf("exitCode = %d, want %d", exitCode, ExitSuccess)
	}
	if len(rep.Files) != 1 || rep.Files[0].Filename != "app.py" {
		t.Fatalf("files = %+v, want one entry for app.py", rep.Files)
	}
	foundTodo := false
	for _, is := range rep.Files[0].Issues {
		if is.Type == "todo" {
			foundTodo = true
		}
	}
	if !foundTodo {
		t.Errorf("expected a todo issue, got %+v", rep.Files[0].Issues)
	}
	if rep.Penalty <= 0 || rep.FinalScore != 100-rep.Penalty {
		t.Errorf("final_score = %d, penalty = %d", rep.FinalScore, rep.Penalty)
	}
}

func TestReviewFile_BelowMinimum(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rep := runReviewFile(t, writeDiffFile(t, todoDiff), "--min-score", "100")

	if rep.FinalScore >= 100 {
		t.Fatalf("final_score = %d, expected a penalty", rep.FinalScore)
	}
	if exitCode != ExitBelowMinimum {
		t.Errorf("exitCode = %d, want %d (ExitBelowMinimum)", exitCode, ExitBelowMinimum)
	}
}

func TestReviewFile_DroppedFilesFailMinScore(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rep := runReviewFile(t, writeDiffFile(t, todoDiff), "--max-diff-bytes", "50", "--min-score", "10")

	if len(rep.Files) != 0 {
		t.Fatalf("files = %+v, want the oversized file dropped", rep.Files)
	}
	if exitCode != ExitBelowMinimum {
		t.Errorf("exitCode = %d, want %d (ExitBelowMinimum)", exitCode, ExitBelowMinimum)
	}
}

func TestReviewFile_DroppedFilesWithoutMinScore(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	runReviewFile(t, writeDiffFile(t, todoDiff), "--max-diff-bytes", "50")

	if exitCode != ExitSuccess {
		t.Errorf("exitCode = %d, want %d without a minimum score", exitCode, ExitSuccess)
	}
}

func TestReviewFile_ExplicitZeroMinScoreOverridesConfig(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	if err := os.MkdirAll(filepath.Join(cfgHome, "prscore"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgHome, "prscore", "config.json"), []byte(`{"minScore":100}`), 0o644); err != nil {
		t.Fatal(err)
	}

	rep := runReviewFile(t, writeDiffFile(t, todoDiff), "--min-score", "0")

	if rep.FinalScore >= 100 {
		t.Fatalf("final_score = %d, expected a penalty", rep.FinalScore)
	}
	if exitCode != ExitSuccess {
		t.Errorf("exitCode = %d, want %d: --min-score 0 should disable the configured gate", exitCode, ExitSuccess)
	}
}

func TestReviewFile_EmptyDiff(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rep := runReviewFile(t, writeDiffFile(t, ""))

	if len(rep.Files) != 0 {
		t.Errorf("files = %+v, want none", rep.Files)
	}
	if rep.FinalScore != 100 || rep.Penalty != 0 {
		t.Errorf("final_score = %d, penalty = %d, want 100 and 0", rep.FinalScore, rep.Penalty)
	}
}

func TestReviewFile_MissingFile(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	reviewCmd.SetArgs([]string{"file", filepath.Join(t.TempDir(), "missing.diff"), "--no-lint"})
	if err := reviewCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exitCode != ExitRuntimeError {
		t.Errorf("exitCode = %d, want %d (ExitRuntimeError)", exitCode, ExitRuntimeError)
	}
}

func TestReviewFile_UnknownProfile(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	reviewCmd.SetArgs([]string{"file", writeDiffFile(t, todoDiff), "--no-lint", "--profile", "no-such-profile"})
	if err := reviewCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exitCode != ExitUsageError {
		t.Errorf("exitCode = %d, want %d (ExitUsageError)", exitCode, ExitUsageError)
	}
}

// --- github command tests ---

func TestGithubCmd_InvalidPRNumber(t *testing.T) {
	resetFlags()
	saveExitCode(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	githubCmd.SetArgs([]string{"abc"})
	if err := githubCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exitCode != ExitUsageError {
		t.Errorf("exitCode = %d, want %d (ExitUsageError)", exitCode, ExitUsageError)
	}
}

func TestGithubCmd_MissingArg(t *testing.T) {
	resetFlags()

	githubCmd.SetArgs([]string{})
	if err := githubCmd.Execute(); err == nil {
		t.Error("github command without args should return error")
	}
}

func TestResolvePRRef_URL(t *testing.T) {
	resetFlags()
	ref, err := resolvePRRef(githubCmd, "https://github.com/octo/app/pull/42")
	if err != nil {
		t.Fatalf("resolvePRRef: %v", err)
	}
	if ref.Owner != "octo" || ref.Repo != "app" || ref.Number != 42 {
		t.Errorf("ref = %+v", ref)
	}
}

func TestResolvePRRef_NumberWithFlags(t *testing.T) {
	resetFlags()
	flagGHOwner = "octo"
	flagGHRepo = "app"

	ref, err := resolvePRRef(githubCmd, "7")
	if err != nil {
		t.Fatalf("resolvePRRef: %v", err)
	}
	if ref.FullName() != "octo/app" || ref.Number != 7 {
		t.Errorf("ref = %+v", ref)
	}
}

func TestResolvePRRef_Invalid(t *testing.T) {
	resetFlags()
	for _, arg := range []string{"0", "-3", "seven"} {
		if _, err := resolvePRRef(githubCmd, arg); err == nil {
			t.Errorf("resolvePRRef(%q) should fail", arg)
		}
	}
}

func TestFilterPRFiles(t *testing.T) {
	pr := diff.PullRequest{
		Files: []diff.FileChange{
			{Filename: "app/main.py"},
			{Filename: "vendor/lib.py"},
			{Filename: "docs/readme.md"},
		},
	}
	opts := gitctx.DiffOptions{
		Include: []string{"**/*.py"},
		Exclude: []string{"vendor/**"},
	}

	got := filterPRFiles(pr, opts)

	if len(got.Files) != 1 || got.Files[0].Filename != "app/main.py" {
		t.Errorf("filtered files = %+v, want only app/main.py", got.Files)
	}
}

// --- review command structure tests ---

func TestReviewCmd_HasSubcommands(t *testing.T) {
	expected := map[string]bool{
		"unstaged": false,
		"staged":   false,
		"commit":   false,
		"range":    false,
		"snippet":  false,
		"file":     false,
		"codebase": false,
	}

	for _, sub := range reviewCmd.Commands() {
		if _, ok := expected[sub.Name()]; ok {
			expected[sub.Name()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("review subcommand %q not found", name)
		}
	}
}

func TestReviewCommitCmd_MissingArg(t *testing.T) {
	resetFlags()

	reviewCmd.SetArgs([]string{"commit"})
	if err := reviewCmd.Execute(); err == nil {
		t.Error("review commit without SHA arg should return error")
	}
}

func TestReviewRangeCmd_MissingArg(t *testing.T) {
	resetFlags()

	reviewCmd.SetArgs([]string{"range"})
	if err := reviewCmd.Execute(); err == nil {
		t.Error("review range without arg should return error")
	}
}

// --- exit code constants tests ---

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitBelowMinimum", ExitBelowMinimum, 1},
		{"ExitUsageError", ExitUsageError, 2},
		{"ExitAuthError", ExitAuthError, 3},
		{"ExitRuntimeError", ExitRuntimeError, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}
