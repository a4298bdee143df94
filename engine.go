package eguicha

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ynishi/eguicha/internal/flow"
	"github.com/ynishi/eguicha/internal/parser"
	"github.com/ynishi/eguicha/internal/store"
)

// Engine orchestrates the analysis pipeline: file discovery, parsing,
// extraction, and optional snapshot persistence.
type Engine struct {
	vocab        *flow.Vocabulary
	store        *store.Store
	snapshotPath string

	// useParallel enables the worker-pool analysis pipeline.
	useParallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithVocabulary replaces the default egui vocabulary.
func WithVocabulary(v *Vocabulary) Option {
	return func(e *Engine) {
		e.vocab = v
	}
}

// WithParallel controls parallel analysis. When true (default),
// AnalyzeFiles fans files out over a worker pool, one independent walker
// per file. Set to false for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// WithSnapshotDB opens a SQLite snapshot store at dbPath so analysis runs
// can be persisted and diffed.
func WithSnapshotDB(dbPath string) Option {
	return func(e *Engine) {
		e.snapshotPath = dbPath
	}
}

// New creates an Engine. Without options it analyzes with the default egui
// vocabulary and no snapshot store.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		vocab:       flow.DefaultVocabulary(),
		useParallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.snapshotPath != "" {
		s, err := store.NewStore(e.snapshotPath)
		if err != nil {
			return nil, fmt.Errorf("eguicha: create store: %w", err)
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, fmt.Errorf("eguicha: migrate: %w", err)
		}
		e.store = s
	}
	return e, nil
}

// Close releases the Engine's database resources, if any.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Store returns the snapshot store, or nil when none is configured.
func (e *Engine) Store() *Store {
	return e.store
}

// AnalyzeSource analyzes Rust source directly. path is stamped onto every
// produced record; it does not need to exist on disk.
func (e *Engine) AnalyzeSource(ctx context.Context, path string, src []byte) (*FileAnalysis, error) {
	f, err := parser.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root := f.Root()
	return &flow.FileAnalysis{
		Path:      path,
		Elements:  flow.ExtractElements(path, root, f.Source),
		Actions:   flow.ExtractActions(path, root, f.Source),
		Mutations: flow.ExtractMutations(path, root, f.Source),
		Flows:     flow.ExtractFlows(path, root, f.Source, e.vocab),
	}, nil
}

// AnalyzeFile reads and analyzes a single Rust file.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (*FileAnalysis, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("eguicha: read %s: %w", path, err)
	}
	return e.AnalyzeSource(ctx, path, src)
}

// AnalyzeFiles analyzes the given files and aggregates the results in
// input order. Non-.rs paths are skipped.
func (e *Engine) AnalyzeFiles(ctx context.Context, paths []string) (*ProjectAnalysis, error) {
	var rustPaths []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".rs") {
			rustPaths = append(rustPaths, p)
		}
	}
	if e.useParallel {
		return e.analyzeFilesParallel(ctx, rustPaths)
	}

	res := &flow.ProjectAnalysis{}
	for _, p := range rustPaths {
		fa, err := e.AnalyzeFile(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("eguicha: analyze %s: %w", p, err)
		}
		res.Files = append(res.Files, fa)
	}
	return res, nil
}

// AnalyzeDirectory discovers .rs files under dir (skipping target/ and
// hidden directories) and analyzes them.
func (e *Engine) AnalyzeDirectory(ctx context.Context, dir string) (*ProjectAnalysis, error) {
	paths, err := discoverRustFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("eguicha: discover %s: %w", dir, err)
	}
	return e.AnalyzeFiles(ctx, paths)
}

// Snapshot persists an analysis as a new run and returns the run ID.
// Requires WithSnapshotDB.
func (e *Engine) Snapshot(root string, res *ProjectAnalysis) (string, error) {
	if e.store == nil {
		return "", fmt.Errorf("eguicha: no snapshot store configured")
	}
	runID, err := e.store.SaveRun(root, res)
	if err != nil {
		return "", fmt.Errorf("eguicha: snapshot: %w", err)
	}
	return runID, nil
}

func discoverRustFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "target" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".rs") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
