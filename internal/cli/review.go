package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/prscore/internal/config"
	"github.com/dshills/prscore/internal/gitctx"
)

// Shared scoring flags
var (
	flagPaths        string
	flagExclude      string
	flagContextLines int
	flagMaxDiffBytes int
	flagFormat       string
	flagOut          string
	flagMinScore     int
	flagProfile      string
	flagTodoScope    string
	flagConcurrency  int
	flagNoLint       bool
	flagLintCmd      string
	flagNoCache      bool
	flagShowPatch    bool
	flagNoColor      bool
)

func addScoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPaths, "paths", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().IntVar(&flagContextLines, "context-lines", 0, "Number of context lines in diff")
	cmd.Flags().IntVar(&flagMaxDiffBytes, "max-diff-bytes", 0, "Maximum diff size in bytes")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flagMinScore, "min-score", 0, "Exit with status 1 when the score is below this value")
	cmd.Flags().StringVar(&flagProfile, "profile", "", "Scoring profile: built-in name or YAML file")
	cmd.Flags().StringVar(&flagTodoScope, "todo-scope", "", "Where TODO/FIXME markers are counted (patch, added)")
	cmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "Files analysed in parallel")
	cmd.Flags().BoolVar(&flagNoLint, "no-lint", false, "Skip the external lint check")
	cmd.Flags().StringVar(&flagLintCmd, "lint-cmd", "", "Lint command run on added Python code")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not read or write cached lint results")
	cmd.Flags().BoolVar(&flagShowPatch, "show-patch", false, "Include redacted patches in markdown output")
	cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable colored text output")
}

// buildOverrides collects flag values that override the config. cmd may be
// nil; it is only used to tell an explicit --min-score 0 from the default.
func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagMinScore > 0 || (cmd != nil && cmd.Flags().Changed("min-score")) {
		m["minScore"] = strconv.Itoa(flagMinScore)
	}
	if flagProfile != "" {
		m["profile"] = flagProfile
	}
	if flagTodoScope != "" {
		m["todoScope"] = flagTodoScope
	}
	if flagConcurrency > 0 {
		m["concurrency"] = strconv.Itoa(flagConcurrency)
	}
	if flagContextLines > 0 {
		m["contextLines"] = strconv.Itoa(flagContextLines)
	}
	if flagMaxDiffBytes > 0 {
		m["maxDiffBytes"] = strconv.Itoa(flagMaxDiffBytes)
	}
	if flagNoLint {
		m["lint.enabled"] = "false"
	}
	if flagLintCmd != "" {
		m["lint.command"] = flagLintCmd
	}
	if flagNoCache {
		m["cache.enabled"] = "false"
	}
	if flagShowPatch {
		m["showPatch"] = "true"
	}
	return m
}

func buildDiffOpts(cfg config.Config) gitctx.DiffOptions {
	opts := gitctx.DiffOptions{
		ContextLines: cfg.ContextLines,
		MaxDiffBytes: cfg.MaxDiffBytes,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
	}
	if flagPaths != "" {
		opts.Include = splitComma(flagPaths)
	}
	if flagExclude != "" {
		opts.Exclude = append(append([]string(nil), opts.Exclude...), splitComma(flagExclude)...)
	}
	return opts
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// diffSource collects a diff for one review mode.
type diffSource func(cmd *cobra.Command, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error)

// scoreCommand loads config, collects the diff with src and scores it.
// Usage errors are returned to Cobra; everything else sets exitCode.
func scoreCommand(src diffSource) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			return err
		}
		res, err := src(cmd, args, buildDiffOpts(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if len(res.Dropped) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d file(s) skipped to stay under max-diff-bytes: %s\n",
				len(res.Dropped), strings.Join(res.Dropped, ", "))
		}
		report, _ := runScoring(cmd.Context(), res.PullRequest(), cfg)
		if report != nil && len(res.Dropped) > 0 && cfg.MinScore > 0 && exitCode == ExitSuccess {
			fmt.Fprintf(os.Stderr, "Minimum score not met: %d file(s) were not scored\n", len(res.Dropped))
			exitCode = ExitBelowMinimum
		}
		return nil
	}
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Score local code changes",
	Long:  "Score local code changes. Use subcommands to choose which changes to score.",
}

var reviewUnstagedCmd = &cobra.Command{
	Use:   "unstaged",
	Short: "Score unstaged changes (working tree vs index)",
	Args:  cobra.NoArgs,
	RunE: scoreCommand(func(cmd *cobra.Command, _ []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Unstaged(cmd.Context(), opts)
	}),
}

var reviewStagedCmd = &cobra.Command{
	Use:   "staged",
	Short: "Score staged changes (index vs HEAD)",
	Args:  cobra.NoArgs,
	RunE: scoreCommand(func(cmd *cobra.Command, _ []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Staged(cmd.Context(), opts)
	}),
}

var (
	flagParent string
)

var reviewCommitCmd = &cobra.Command{
	Use:   "commit <sha>",
	Short: "Score a specific commit",
	Args:  cobra.ExactArgs(1),
	RunE: scoreCommand(func(cmd *cobra.Command, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Commit(cmd.Context(), args[0], flagParent, opts)
	}),
}

var (
	flagMergeBase bool
)

var reviewRangeCmd = &cobra.Command{
	Use:   "range <revRange>",
	Short: "Score a revision range (e.g., origin/main..HEAD)",
	Args:  cobra.ExactArgs(1),
	RunE: scoreCommand(func(cmd *cobra.Command, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Range(cmd.Context(), args[0], flagMergeBase, opts)
	}),
}

var (
	flagSnippetPath string
	flagSnippetBase string
)

var reviewSnippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Score code read from stdin as a new or changed file",
	Args:  cobra.NoArgs,
	RunE: scoreCommand(func(cmd *cobra.Command, _ []string, _ gitctx.DiffOptions) (gitctx.DiffResult, error) {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return gitctx.DiffResult{}, fmt.Errorf("reading stdin: %w", err)
		}
		var base string
		if flagSnippetBase != "" {
			data, err := os.ReadFile(flagSnippetBase)
			if err != nil {
				return gitctx.DiffResult{}, fmt.Errorf("reading base file: %w", err)
			}
			base = string(data)
		}
		path := flagSnippetPath
		if path == "" {
			path = "stdin.py"
		}
		return gitctx.Snippet(cmd.Context(), string(content), path, base)
	}),
}

var reviewFileCmd = &cobra.Command{
	Use:   "file <path|->",
	Short: "Score a saved unified diff (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: scoreCommand(func(cmd *cobra.Command, args []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.DiffFile(args[0], cmd.InOrStdin(), opts)
	}),
}

var reviewCodebaseCmd = &cobra.Command{
	Use:   "codebase",
	Short: "Score every tracked file as if it were newly added",
	Args:  cobra.NoArgs,
	RunE: scoreCommand(func(cmd *cobra.Command, _ []string, opts gitctx.DiffOptions) (gitctx.DiffResult, error) {
		return gitctx.Codebase(cmd.Context(), opts)
	}),
}

func init() {
	reviewSubcommands := []*cobra.Command{
		reviewUnstagedCmd,
		reviewStagedCmd,
		reviewCommitCmd,
		reviewRangeCmd,
		reviewSnippetCmd,
		reviewFileCmd,
		reviewCodebaseCmd,
	}
	for _, cmd := range reviewSubcommands {
		reviewCmd.AddCommand(cmd)
		addScoreFlags(cmd)
	}

	// Commit-specific flags
	reviewCommitCmd.Flags().StringVar(&flagParent, "parent", "", "Override parent SHA (for merge commits)")

	// Range-specific flags
	reviewRangeCmd.Flags().BoolVar(&flagMergeBase, "merge-base", true, "Use merge base for branch comparisons")

	// Snippet-specific flags
	reviewSnippetCmd.Flags().StringVar(&flagSnippetPath, "path", "", "File path used for language detection and the report (default stdin.py)")
	reviewSnippetCmd.Flags().StringVar(&flagSnippetBase, "base", "", "Base file to diff against")
}
