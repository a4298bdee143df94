// Package script embeds a Risor VM for user-defined report scripts. A
// script receives the analysis result as a plain data global and either
// prints its report or evaluates to a string that the caller writes out.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"
	"github.com/risor-io/risor/object"

	"github.com/ynishi/eguicha/internal/flow"
)

// Runtime loads and evaluates report scripts.
type Runtime struct {
	scriptsDir string
	fsys       fs.FS
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithFS loads scripts from an fs.FS instead of from disk, enabling
// embedding via go:embed. Also routes Risor import statements through the
// same filesystem.
func WithFS(fsys fs.FS) Option {
	return func(r *Runtime) {
		r.fsys = fsys
	}
}

// NewRuntime creates a Runtime that loads scripts relative to scriptsDir
// (unless WithFS overrides the source).
func NewRuntime(scriptsDir string, opts ...Option) *Runtime {
	r := &Runtime{scriptsDir: scriptsDir}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunReport loads a script and evaluates it with the analysis bound as the
// "analysis" global. If the script evaluates to a string, it is written to
// out; scripts that print directly need no final value.
func (r *Runtime) RunReport(ctx context.Context, scriptPath string, res *flow.ProjectAnalysis, out io.Writer) error {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	return r.eval(ctx, src, scriptPath, res, out)
}

// RunReportSource evaluates Risor source directly. Useful for testing
// without script files.
func (r *Runtime) RunReportSource(ctx context.Context, source string, res *flow.ProjectAnalysis, out io.Writer) error {
	return r.eval(ctx, source, "<inline>", res, out)
}

func (r *Runtime) eval(ctx context.Context, source, label string, res *flow.ProjectAnalysis, out io.Writer) error {
	data, err := analysisData(res)
	if err != nil {
		return fmt.Errorf("script: bind analysis: %w", err)
	}
	globals := map[string]any{"analysis": data}

	opts := []risor.Option{risor.WithGlobal("analysis", data)}
	if imp := r.buildImporter(globals); imp != nil {
		opts = append(opts, risor.WithImporter(imp))
	}

	result, err := risor.Eval(ctx, source, opts...)
	if err != nil {
		return fmt.Errorf("script: %s: %w", label, err)
	}
	if s, ok := result.(*object.String); ok && out != nil {
		fmt.Fprintln(out, s.Value())
	}
	return nil
}

// analysisData converts the analysis into plain maps and slices, the shape
// Risor ingests as script-side data.
func analysisData(res *flow.ProjectAnalysis) (any, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Runtime) buildImporter(globals map[string]any) importer.Importer {
	globalNames := make([]string, 0, len(globals))
	for name := range globals {
		globalNames = append(globalNames, name)
	}

	if r.fsys != nil {
		return importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: globalNames,
			SourceFS:    r.fsys,
			Extensions:  []string{".risor"},
		})
	}
	if r.scriptsDir != "" {
		return importer.NewLocalImporter(importer.LocalImporterOptions{
			GlobalNames: globalNames,
			SourceDir:   r.scriptsDir,
			Extensions:  []string{".risor"},
		})
	}
	return nil
}

// LoadScript reads a .risor file from the configured source.
func (r *Runtime) LoadScript(path string) (string, error) {
	if r.fsys != nil {
		fsPath := filepath.ToSlash(path)
		data, err := fs.ReadFile(r.fsys, fsPath)
		if err != nil {
			return "", fmt.Errorf("script: loading %s from fs: %w", fsPath, err)
		}
		return string(data), nil
	}

	fullPath := path
	if !filepath.IsAbs(path) && r.scriptsDir != "" {
		fullPath = filepath.Join(r.scriptsDir, path)
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("script: loading %s: %w", fullPath, err)
	}
	return string(data), nil
}
