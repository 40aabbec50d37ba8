package dat

import "log/slog"

// Option configures an Archive.
type Option func(*Archive)

// WithLogger attaches a logger used for debug-level read and cache
// events. If not set, logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = l
	}
}

// WithCacheSize enables an LRU cache of decoded entry contents holding
// up to n entries, keyed by normalized path. Concurrent reads of the
// same uncached entry are deduplicated, so a miss storm decompresses
// the entry once.
//
// Cached slices are returned directly; callers must treat the result of
// ReadFile as read-only when caching is enabled.
func WithCacheSize(n int) Option {
	return func(a *Archive) {
		a.cacheSize = n
	}
}

// ExtractOption configures ExtractAll.
type ExtractOption func(*extractConfig)

// defaultExtractWorkers is used when no ExtractWithWorkers option is set.
const defaultExtractWorkers = 4

type extractConfig struct {
	workers int
}

// ExtractWithWorkers sets the number of concurrent extraction workers.
// Values < 1 force serial extraction.
func ExtractWithWorkers(n int) ExtractOption {
	return func(c *extractConfig) {
		c.workers = n
	}
}
