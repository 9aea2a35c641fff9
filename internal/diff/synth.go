package diff

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// Synthesize renders content as a new-file unified diff for path, so raw
// snippets can go through the same pipeline as real changes.
func Synthesize(path, content string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("synthesize: empty path")
	}
	content = strings.TrimSuffix(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	lines := strings.Split(content, "\n")
	var body strings.Builder
	for _, line := range lines {
		body.WriteString("+")
		body.WriteString(line)
		body.WriteString("\n")
	}

	fd := &godiff.FileDiff{
		OrigName: "/dev/null",
		NewName:  "b/" + path,
		Extended: []string{
			fmt.Sprintf("diff --git a/%s b/%s", path, path),
			"new file mode 100644",
		},
		Hunks: []*godiff.Hunk{{
			OrigStartLine: 0,
			OrigLines:     0,
			NewStartLine:  1,
			NewLines:      int32(len(lines)),
			Body:          []byte(body.String()),
		}},
	}

	out, err := godiff.PrintFileDiff(fd)
	if err != nil {
		return "", fmt.Errorf("printing synthesized diff for %s: %w", path, err)
	}
	return string(out), nil
}
