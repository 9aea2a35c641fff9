package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/review"
)

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "markdown", "sarif"}

// Writer writes a report in a specific format. pr supplies the title and
// patches the report itself does not carry.
type Writer interface {
	Write(w io.Writer, report *review.Report, pr diff.PullRequest) error
}

// Options tune the human-facing writers.
type Options struct {
	Color     bool     // ANSI styling in text output
	ShowPatch bool     // include redacted patch excerpts in markdown
	HidePaths []string // files whose patch is never shown
	Profile   string   // penalty profile name shown in headers
	Version   string   // tool version for SARIF
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string, opts Options) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{opts: opts}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{opts: opts}, nil
	case "sarif":
		return &SARIFWriter{version: opts.Version}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteReport writes the report to outPath, or to stdout when outPath is
// empty. Text output is only colored on a terminal.
func WriteReport(report *review.Report, pr diff.PullRequest, format, outPath string, opts Options) error {
	var w io.Writer
	if outPath != "" {
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
		opts.Color = false
	} else {
		w = os.Stdout
		opts.Color = opts.Color && isTerminal(os.Stdout)
	}

	writer, err := GetWriter(format, opts)
	if err != nil {
		return err
	}
	return writer.Write(w, report, pr)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// patchFor finds the patch of filename in pr.
func patchFor(pr diff.PullRequest, filename string) string {
	for _, f := range pr.Files {
		if f.Filename == filename {
			return f.Patch
		}
	}
	return ""
}
