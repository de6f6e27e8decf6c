// Package workspace implements the execution routine shared by the lingora
// front ends: an inventory of the translation and rust sources a Config
// names, with every translation file classified against the base locales.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
	"github.com/kannan/lingora/internal/logger"
)

const (
	fluentExt = ".ftl"
	rustExt   = ".rs"
)

// Executor runs against a validated configuration.
type Executor interface {
	Execute(ctx context.Context, cfg *config.Config) (*Result, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, cfg *config.Config) (*Result, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, cfg *config.Config) (*Result, error) {
	return f(ctx, cfg)
}

// Run calls ex with cfg and wraps any failure in *app.ExecutionError.
// errors.Is(err, context.Canceled) still holds for a cancelled run.
func Run(ctx context.Context, ex Executor, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, &app.ExecutionError{Err: errors.New("no configuration")}
	}

	res, err := ex.Execute(ctx, cfg)
	if err != nil {
		var execErr *app.ExecutionError
		if errors.As(err, &execErr) {
			return nil, err
		}
		return nil, &app.ExecutionError{Err: err}
	}
	if res == nil {
		return nil, &app.ExecutionError{Err: errors.New("executor returned no result")}
	}
	return res, nil
}

// Scanner collects translation and rust source files and classifies them.
type Scanner struct{}

// NewScanner creates a new workspace scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Execute scans every source in cfg, at most cfg.Jobs() at a time.
func (s *Scanner) Execute(ctx context.Context, cfg *config.Config) (*Result, error) {
	log := logger.With("component", "scanner")
	log.Debug("scan started",
		"fluent_sources", len(cfg.FluentSources()),
		"rust_sources", len(cfg.RustSources()),
		"jobs", cfg.Jobs())

	var (
		mu        sync.Mutex
		fluent    []fluentFile
		rustFiles []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs())

	for _, root := range cfg.FluentSources() {
		root := root
		g.Go(func() error {
			files, err := collect(gctx, root, fluentExt)
			if err != nil {
				return err
			}
			mu.Lock()
			fluent = append(fluent, files...)
			mu.Unlock()
			return nil
		})
	}

	for _, root := range cfg.RustSources() {
		root := root
		g.Go(func() error {
			files, err := collect(gctx, root, rustExt)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, f := range files {
				rustFiles = append(rustFiles, f.path)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fluent = dedupeFiles(fluent)
	res := classify(cfg, fluent, dedupeStrings(rustFiles))

	log.Info("scan completed",
		"documents", len(res.Documents),
		"files", res.FileCount(),
		"rust_files", len(res.RustFiles),
		"issues", len(res.Issues))

	return res, nil
}

// collect gathers files with the given extension under root. A root that is a
// file is taken as-is whatever its extension. rel paths are relative to the
// root's folder so locale lookup never looks above it.
func collect(ctx context.Context, root, ext string) ([]fluentFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}

	if !info.IsDir() {
		return []fluentFile{{path: root, rel: filepath.Base(root)}}, nil
	}

	var files []fluentFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("error accessing path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, fluentFile{path: path, rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return files, nil
}

// dedupeFiles drops files reached through more than one source. The copy
// with the longest relative path is kept, as it has the most folders to
// derive a locale from.
func dedupeFiles(files []fluentFile) []fluentFile {
	sort.Slice(files, func(i, j int) bool {
		if files[i].path != files[j].path {
			return files[i].path < files[j].path
		}
		return len(files[i].rel) > len(files[j].rel)
	})
	return slices.CompactFunc(files, func(a, b fluentFile) bool { return a.path == b.path })
}

func dedupeStrings(in []string) []string {
	sort.Strings(in)
	return slices.Compact(in)
}
