package lint

import (
	"context"
	"log/slog"

	"github.com/dshills/prscore/internal/cache"
)

// CachedLinter serves results from the on-disk cache and runs the wrapped
// linter on a miss. Only successful runs are stored.
type CachedLinter struct {
	next  Linter
	cache *cache.Cache
}

// NewCachedLinter wraps next. A nil or disabled cache passes every call
// through.
func NewCachedLinter(next Linter, c *cache.Cache) Linter {
	if c == nil || !c.Enabled() {
		return next
	}
	return &CachedLinter{next: next, cache: c}
}

// Name returns the wrapped linter's name.
func (l *CachedLinter) Name() string {
	return l.next.Name()
}

// Lint implements Linter.
func (l *CachedLinter) Lint(ctx context.Context, filename string, src []byte) ([]string, error) {
	key := cache.BuildKey(l.next.Name(), filename, src)
	if lines, ok := l.cache.Get(key); ok {
		slog.Debug("lint cache hit", slog.String("file", filename))
		return lines, nil
	}
	lines, err := l.next.Lint(ctx, filename, src)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Put(key, lines); err != nil {
		slog.Warn("lint cache write failed", slog.String("file", filename), slog.Any("error", err))
	}
	return lines, nil
}
