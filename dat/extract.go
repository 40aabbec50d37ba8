package dat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extract writes the decoded entry at path to dest on disk, creating
// parent directories as needed.
func (a *Archive) Extract(path, dest string) error {
	data, err := a.ReadFile(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("dat: extract %s: %w", path, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("dat: extract %s: %w", path, err)
	}
	return nil
}

// ExtractAll extracts every entry matching pattern (see List) under
// destDir, preserving the archive's directory layout with native
// separators. Entries are extracted concurrently; the first failure
// cancels the remaining work.
func (a *Archive) ExtractAll(destDir, pattern string, opts ...ExtractOption) error {
	cfg := extractConfig{workers: defaultExtractWorkers}
	for _, opt := range opts {
		opt(&cfg)
	}
	workers := cfg.workers
	if workers < 1 {
		workers = 1
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	for _, path := range a.List(pattern) {
		path := path
		eg.Go(func() error {
			rel := filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
			return a.Extract(path, filepath.Join(destDir, rel))
		})
	}
	return eg.Wait()
}
