package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/prscore/internal/diff"
)

const (
	defaultAPIURL = "https://api.github.com"
	filesPerPage  = 100
	// GitHub stops listing files after 3000.
	maxFilePages = 30
)

// ErrNotFound is returned when the repository or pull request does not
// exist or is not visible with the current credentials.
var ErrNotFound = errors.New("pull request not found or repository is private")

// APIError is a non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err is a 401 or 403 from the API.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a client from GITHUB_TOKEN and GITHUB_API_URL. Without
// a token only public repositories are reachable and rate limits are low.
func NewClient() *Client {
	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		token:   os.Getenv("GITHUB_TOKEN"),
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}
}

// HasToken reports whether requests are authenticated.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// PRRef identifies a pull request.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns "owner/repo".
func (r PRRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

var prURLRe = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// ParsePRURL extracts the pull request reference from a URL such as
// https://github.com/owner/repo/pull/123. Trailing path segments like
// /files are accepted.
func ParsePRURL(url string) (PRRef, error) {
	m := prURLRe.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return PRRef{}, fmt.Errorf("invalid GitHub PR URL %q: expected https://github.com/owner/repo/pull/123", url)
	}
	n, err := strconv.Atoi(m[3])
	if err != nil || n <= 0 {
		return PRRef{}, fmt.Errorf("invalid pull request number in %q", url)
	}
	return PRRef{Owner: m[1], Repo: m[2], Number: n}, nil
}

type pullResponse struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PRFile is one entry of the pull request files listing. Patch is empty
// for binary files and very large diffs.
type PRFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch"`
}

// GetPullRequest fetches the pull request metadata and every changed file.
func (c *Client) GetPullRequest(ctx context.Context, ref PRRef) (diff.PullRequest, error) {
	var pull pullResponse
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", ref.Owner, ref.Repo, ref.Number)
	if err := c.getJSON(ctx, path, &pull); err != nil {
		return diff.PullRequest{}, fmt.Errorf("fetching PR %s#%d: %w", ref.FullName(), ref.Number, err)
	}

	files, err := c.GetPRFiles(ctx, ref)
	if err != nil {
		return diff.PullRequest{}, err
	}

	pr := diff.PullRequest{
		RepoName: ref.FullName(),
		Number:   ref.Number,
		Title:    pull.Title,
		Body:     pull.Body,
		Files:    make([]diff.FileChange, 0, len(files)),
	}
	for _, f := range files {
		pr.Files = append(pr.Files, diff.FileChange{
			Filename:  f.Filename,
			Patch:     f.Patch,
			Additions: f.Additions,
			Deletions: f.Deletions,
		})
	}
	return pr, nil
}

// GetPRFiles lists the changed files of a pull request, following
// pagination.
func (c *Client) GetPRFiles(ctx context.Context, ref PRRef) ([]PRFile, error) {
	var all []PRFile
	for page := 1; page <= maxFilePages; page++ {
		var batch []PRFile
		path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files?per_page=%d&page=%d",
			ref.Owner, ref.Repo, ref.Number, filesPerPage, page)
		if err := c.getJSON(ctx, path, &batch); err != nil {
			return nil, fmt.Errorf("fetching PR files (page %d): %w", page, err)
		}
		all = append(all, batch...)
		if len(batch) < filesPerPage {
			return all, nil
		}
	}
	slog.Warn("pull request file listing truncated", slog.Int("files", len(all)))
	return all, nil
}

type commentRequest struct {
	Body string `json:"body"`
}

// PostComment adds an issue comment to the pull request.
func (c *Client) PostComment(ctx context.Context, ref PRRef, body string) error {
	if c.token == "" {
		return fmt.Errorf("posting a comment requires GITHUB_TOKEN")
	}
	payload, err := json.Marshal(commentRequest{Body: body})
	if err != nil {
		return fmt.Errorf("marshaling comment: %w", err)
	}
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", ref.Owner, ref.Repo, ref.Number)
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return responseError(resp)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// responseError extracts the API message from an error response.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var msg struct {
		Message string `json:"message"`
	}
	text := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
		text = msg.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: text}
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo(ctx context.Context) (owner, repo string, err error) {
	out, err := exec.CommandContext(ctx, "git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
