package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/prscore/internal/config"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/github"
	"github.com/dshills/prscore/internal/gitctx"
)

var (
	flagGHOwner string
	flagGHRepo  string
	flagGHPost  bool
)

var githubCmd = &cobra.Command{
	Use:   "github <pr-url|pr-number>",
	Short: "Score a GitHub pull request",
	Long: "Fetch a pull request from GitHub, score it, and optionally post the report as a PR comment.\n" +
		"Accepts a URL such as https://github.com/owner/repo/pull/123, or a number with --owner/--repo\n" +
		"(detected from the origin remote when omitted). GITHUB_TOKEN is needed for private\n" +
		"repositories and for --post.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := resolvePRRef(cmd, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client := github.NewClient()

		fmt.Fprintf(os.Stderr, "Fetching PR #%d from %s...\n", ref.Number, ref.FullName())
		pr, err := client.GetPullRequest(ctx, ref)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if github.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		pr = filterPRFiles(pr, buildDiffOpts(cfg))
		report, profile := runScoring(ctx, pr, cfg)
		if report == nil || !flagGHPost {
			return nil
		}

		body, err := renderMarkdown(report, pr, cfg, profile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering comment: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if err := client.PostComment(ctx, ref, body); err != nil {
			fmt.Fprintf(os.Stderr, "Error posting comment: %v\n", err)
			if github.IsAuthError(err) || !client.HasToken() {
				exitCode = ExitAuthError
			} else if exitCode == ExitSuccess {
				exitCode = ExitRuntimeError
			}
			return nil
		}
		fmt.Fprintf(os.Stderr, "Report posted to PR #%d.\n", ref.Number)
		return nil
	},
}

// resolvePRRef accepts a PR URL or a number plus owner/repo.
func resolvePRRef(cmd *cobra.Command, arg string) (github.PRRef, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return github.ParsePRURL(arg)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return github.PRRef{}, fmt.Errorf("invalid PR reference %q: want a PR URL or number", arg)
	}

	owner, repo := flagGHOwner, flagGHRepo
	if owner == "" || repo == "" {
		detectedOwner, detectedRepo, err := github.DetectRepo(cmd.Context())
		if err != nil {
			return github.PRRef{}, errors.Join(err, errors.New("use --owner and --repo to specify the repository"))
		}
		if owner == "" {
			owner = detectedOwner
		}
		if repo == "" {
			repo = detectedRepo
		}
	}
	return github.PRRef{Owner: owner, Repo: repo, Number: n}, nil
}

// filterPRFiles applies include/exclude globs to fetched files.
func filterPRFiles(pr diff.PullRequest, opts gitctx.DiffOptions) diff.PullRequest {
	kept := make([]diff.FileChange, 0, len(pr.Files))
	for _, f := range pr.Files {
		if len(opts.Include) > 0 && !gitctx.MatchesAny(f.Filename, opts.Include) {
			continue
		}
		if len(opts.Exclude) > 0 && gitctx.MatchesAny(f.Filename, opts.Exclude) {
			continue
		}
		kept = append(kept, f)
	}
	pr.Files = kept
	return pr
}

func init() {
	addScoreFlags(githubCmd)
	githubCmd.Flags().StringVar(&flagGHOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	githubCmd.Flags().StringVar(&flagGHRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	githubCmd.Flags().BoolVar(&flagGHPost, "post", false, "Post the markdown report as a PR comment")
}
