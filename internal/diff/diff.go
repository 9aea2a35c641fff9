package diff

import (
	"strings"
)

const fileMarker = "+++ b/"

// FileChange is one changed file as seen by the analyzers.
type FileChange struct {
	Filename  string `json:"filename"`
	Patch     string `json:"patch,omitempty"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// PullRequest is the unit of analysis: metadata plus the ordered file list.
type PullRequest struct {
	RepoName string       `json:"repo_name"`
	Number   int          `json:"pr_number"`
	Title    string       `json:"title"`
	Body     string       `json:"body"`
	Files    []FileChange `json:"files"`
}

// Local metadata used for diffs that did not come from a hosting service.
const (
	LocalRepoName = "local"
	LocalTitle    = "local-diff"
)

// Parse splits unified-diff text into file records in the order their
// "+++ b/" markers appear. Lines before the first marker are dropped.
func Parse(text string) []FileChange {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var files []FileChange
	var current *FileChange
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Patch = strings.Join(body, "\n")
		files = append(files, *current)
		current = nil
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, fileMarker) {
			flush()
			current = &FileChange{Filename: strings.TrimSpace(strings.TrimPrefix(line, fileMarker))}
			continue
		}
		if current == nil {
			continue
		}
		body = append(body, line)
		switch {
		case isAdded(line):
			current.Additions++
		case isRemoved(line):
			current.Deletions++
		}
	}
	flush()

	return files
}

// ParsePullRequest wraps Parse with the metadata used for local diffs.
func ParsePullRequest(text string) PullRequest {
	return PullRequest{
		RepoName: LocalRepoName,
		Number:   0,
		Title:    LocalTitle,
		Files:    Parse(text),
	}
}

// AddedCode returns the added lines of a patch with their leading '+'
// removed, joined by newlines. The result is usually not a complete
// program.
func AddedCode(patch string) string {
	if patch == "" {
		return ""
	}
	var added []string
	for _, line := range strings.Split(patch, "\n") {
		if isAdded(line) {
			added = append(added, line[1:])
		}
	}
	return strings.Join(added, "\n")
}

func isAdded(line string) bool {
	return strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++")
}

func isRemoved(line string) bool {
	return strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---")
}
