package redact

import (
	"path"
	"regexp"
	"strings"
)

// Placeholder replaces every masked value.
const Placeholder = "[REDACTED]"

// DefaultPaths hides files that usually hold nothing but credentials.
var DefaultPaths = []string{"**/.env", "**/.env.*", "**/*.pem", "**/*.key", "**/id_rsa"}

// assignment captures NAME, the separator, an optional quote and the value.
var assignment = regexp.MustCompile(
	`(?i)\b([a-z0-9_.-]*(?:private_key|api_key|apikey|secret|token|password|passwd)[a-z0-9_.-]*)(\s*[:=]\s*)(["']?)([^\s"',;]+)`,
)

var shapes = []*regexp.Regexp{
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`sk-(?:ant-)?[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`-----BEGIN\s+(?:[A-Z]+\s+)?PRIVATE KEY-----`),
}

// Secrets masks credential values in one piece of text.
func Secrets(text string) string {
	out := assignment.ReplaceAllString(text, "${1}${2}${3}"+Placeholder)
	for _, re := range shapes {
		out = re.ReplaceAllString(out, Placeholder)
	}
	return out
}

// Patch masks credentials line by line, leaving the leading diff marker of
// each line intact. If path matches one of hidePaths the whole patch is
// replaced by a notice.
func Patch(patch, file string, hidePaths []string) string {
	if MatchPath(file, hidePaths) {
		return Placeholder + " (patch hidden by path policy)"
	}
	lines := strings.Split(patch, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		switch line[0] {
		case '+', '-', ' ':
			lines[i] = line[:1] + Secrets(line[1:])
		default:
			lines[i] = Secrets(line)
		}
	}
	return strings.Join(lines, "\n")
}

// MatchPath reports whether file matches any pattern. A leading "**/"
// matches in any directory.
func MatchPath(file string, patterns []string) bool {
	base := path.Base(file)
	for _, p := range patterns {
		if ok, _ := path.Match(p, file); ok {
			return true
		}
		if rest, found := strings.CutPrefix(p, "**/"); found {
			if ok, _ := path.Match(rest, base); ok {
				return true
			}
			if ok, _ := path.Match(rest, file); ok {
				return true
			}
		}
	}
	return false
}
