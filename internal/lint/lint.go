package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Defaults for the process-backed linter.
const (
	DefaultCommand = "pyflakes"
	DefaultTimeout = 10 * time.Second
)

// Sentinel errors for expected linter failures.
var (
	ErrNotInstalled = errors.New("linter not installed")
	ErrTimeout      = errors.New("linter timed out")
	ErrFailed       = errors.New("linter failed")
)

// Linter produces diagnostic lines for a source fragment. filename is the
// path the fragment came from; implementations may use it in messages.
type Linter interface {
	Name() string
	Lint(ctx context.Context, filename string, src []byte) ([]string, error)
}

// ExecLinter runs an external command on a temporary copy of the fragment.
type ExecLinter struct {
	command string
	args    []string
	timeout time.Duration
	ext     string
}

// Option configures an ExecLinter.
type Option func(*ExecLinter)

// WithArgs sets arguments placed before the file path.
func WithArgs(args ...string) Option {
	return func(l *ExecLinter) {
		l.args = append([]string(nil), args...)
	}
}

// WithTimeout bounds each invocation. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(l *ExecLinter) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithExtension sets the temp file extension, ".py" by default.
func WithExtension(ext string) Option {
	return func(l *ExecLinter) {
		l.ext = ext
	}
}

// NewExecLinter returns a linter that runs command. An empty command
// selects DefaultCommand.
func NewExecLinter(command string, opts ...Option) *ExecLinter {
	if command == "" {
		command = DefaultCommand
	}
	l := &ExecLinter{
		command: command,
		timeout: DefaultTimeout,
		ext:     ".py",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name identifies the command line, without the file argument.
func (l *ExecLinter) Name() string {
	return strings.TrimSpace(l.command + " " + strings.Join(l.args, " "))
}

// Available reports whether the command can be found on PATH.
func (l *ExecLinter) Available() bool {
	_, err := exec.LookPath(l.command)
	return err == nil
}

// Lint runs the command and returns its non-empty output lines. The
// temporary file is removed before Lint returns.
func (l *ExecLinter) Lint(ctx context.Context, filename string, src []byte) (lines []string, err error) {
	ctx, span := startLintSpan(ctx, l.command, filename)
	defer span.End()
	start := time.Now()
	defer func() {
		recordLintMetrics(ctx, l.command, time.Since(start), len(lines), err)
		setLintSpanResult(span, len(lines), err)
	}()

	path, err := exec.LookPath(l.command)
	if err != nil {
		slog.Debug("linter not on PATH", slog.String("command", l.command))
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, l.command)
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	tmp, err := os.CreateTemp("", "prscore-lint-*"+l.ext)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}

	out, err := l.run(ctx, path, tmpPath)
	if err != nil {
		return nil, err
	}

	lines = splitLines(out)
	if filename != "" {
		for i := range lines {
			lines[i] = strings.ReplaceAll(lines[i], tmpPath, filename)
		}
	}
	slog.Debug("lint completed",
		slog.String("file", filename),
		slog.String("linter", l.command),
		slog.Int("findings", len(lines)),
		slog.Duration("duration", time.Since(start)),
	)
	return lines, nil
}

func (l *ExecLinter) run(ctx context.Context, path, file string) ([]byte, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	args := append(append([]string(nil), l.args...), file)
	cmd := exec.CommandContext(cmdCtx, path, args...)
	// Children of a killed linter can hold the output pipe open.
	cmd.WaitDelay = time.Second

	// Diagnostics may go to either stream; pyflakes uses both.
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		slog.Warn("linter timed out",
			slog.String("command", l.command),
			slog.Duration("timeout", l.timeout),
		)
		return nil, fmt.Errorf("%w after %s", ErrTimeout, l.timeout)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil && out.Len() == 0 {
		return nil, fmt.Errorf("%w: %s: %v", ErrFailed, l.command, err)
	}
	return out.Bytes(), nil
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Absorbed reports whether err is one of the expected failures that
// callers treat as "no findings".
func Absorbed(err error) bool {
	return errors.Is(err, ErrNotInstalled) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrFailed)
}
