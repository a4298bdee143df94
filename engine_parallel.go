package eguicha

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ynishi/eguicha/internal/flow"
)

// analyzeFilesParallel fans files out over a worker pool. Each file gets an
// independent parse and walker, so workers share no mutable state; results
// are reassembled into input order before returning.
func (e *Engine) analyzeFilesParallel(ctx context.Context, paths []string) (*ProjectAnalysis, error) {
	if len(paths) == 0 {
		return &flow.ProjectAnalysis{}, nil
	}

	numWorkers := min(runtime.NumCPU(), len(paths))
	if numWorkers < 1 {
		numWorkers = 1
	}

	type workItem struct {
		idx  int
		path string
	}
	workCh := make(chan workItem, len(paths))
	for i, p := range paths {
		workCh <- workItem{idx: i, path: p}
	}
	close(workCh)

	type result struct {
		idx int
		fa  *flow.FileAnalysis
		err error
	}
	resultCh := make(chan result, len(paths))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				src, err := os.ReadFile(item.path)
				if err != nil {
					resultCh <- result{idx: item.idx, err: fmt.Errorf("read file: %w", err)}
					continue
				}
				fa, err := e.AnalyzeSource(ctx, item.path, src)
				resultCh <- result{idx: item.idx, fa: fa, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	analyses := make([]*flow.FileAnalysis, len(paths))
	var errs []error
	for res := range resultCh {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("analyze %s: %w", paths[res.idx], res.err))
			continue
		}
		analyses[res.idx] = res.fa
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("eguicha: parallel analysis had %d error(s): %w", len(errs), errs[0])
	}

	return &flow.ProjectAnalysis{Files: analyses}, nil
}
