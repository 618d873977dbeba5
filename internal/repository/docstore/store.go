// Package docstore loads a directory of controlled-document YAML files
// into an immutable in-memory store. Loading happens exactly once, at
// startup; afterwards the store only serves unsynchronized reads.
package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/quorail/docshelf/internal/domain"
	"github.com/quorail/docshelf/internal/domain/document"
)

// DefaultWorkers is the load-phase fan-out bound.
const DefaultWorkers = 5

// DefaultExtension is the document file suffix.
const DefaultExtension = ".yml"

// Options configures the load phase.
type Options struct {
	Extension string // file suffix filter (default ".yml")
	Workers   int    // pool size (default 5)
}

// Store is the immutable post-load mapping from document name to
// document. Any number of readers may use it concurrently.
type Store struct {
	docs    map[string]document.Document
	names   []string
	skipped int
}

// job is one file handed to a load worker.
type job struct {
	index int
	path  string
}

// result is one worker's outcome for a single file.
type result struct {
	index int
	doc   document.Document
	path  string
	err   error
}

// Load scans dir for document files and builds the store. Individual
// files that fail to parse are skipped with a warning; an unreadable
// directory is an error. The returned store is fully populated before
// Load returns; callers must not serve queries earlier.
func Load(ctx context.Context, dir string, opts Options, logger *zap.Logger) (*Store, error) {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	paths, err := listFiles(dir, ext)
	if err != nil {
		return nil, err
	}

	results, err := loadAll(ctx, paths, workers)
	if err != nil {
		return nil, err
	}

	// Fan-in is single-threaded; results are replayed in sorted file
	// order so the duplicate policy (first file wins) is deterministic.
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	docs := make(map[string]document.Document, len(results))
	skipped := 0
	for _, res := range results {
		if res.err != nil {
			skipped++
			logger.Warn("skipping document file",
				zap.String("path", res.path),
				zap.Error(res.err),
			)
			continue
		}
		name := res.doc.Name()
		if _, exists := docs[name]; exists {
			skipped++
			logger.Warn("duplicate document name, keeping earlier file",
				zap.String("name", name),
				zap.String("path", res.path),
			)
			continue
		}
		docs[name] = res.doc
	}

	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	logger.Info("document store loaded",
		zap.String("dir", dir),
		zap.Int("documents", len(docs)),
		zap.Int("skipped", skipped),
	)

	return &Store{docs: docs, names: names, skipped: skipped}, nil
}

// loadAll fans the files out over a bounded worker pool and collects
// every per-file result.
func loadAll(ctx context.Context, paths []string, workers int) ([]result, error) {
	jobs := make(chan job)
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				doc, err := loadFile(j.path)
				results <- result{index: j.index, doc: doc, path: j.path, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, path: path}:
			}
		}
	}()

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load canceled: %w", err)
	}

	collected := make([]result, 0, len(paths))
	for res := range results {
		collected = append(collected, res)
	}
	return collected, nil
}

// loadFile reads and parses one document file.
func loadFile(path string) (document.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return document.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return document.Parse(DeriveName(path), data)
}

// listFiles enumerates matching files (non-recursive) in sorted order.
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// DeriveName extracts the document name from a file path: the base name
// up to the first dot.
func DeriveName(path string) string {
	base := filepath.Base(path)
	name, _, _ := strings.Cut(base, ".")
	return name
}

// Names returns all document names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Get returns a document by name.
func (s *Store) Get(name string) (document.Document, error) {
	doc, ok := s.docs[name]
	if !ok {
		return document.Document{}, fmt.Errorf("document %q: %w", name, domain.ErrDocumentNotFound)
	}
	return doc, nil
}

// Len returns the number of loaded documents.
func (s *Store) Len() int { return len(s.docs) }

// Skipped returns the number of files dropped during the load phase
// (parse failures and duplicate names).
func (s *Store) Skipped() int { return s.skipped }
