// Package fileproc provides concurrent source processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"augur/pkg/parser"
	"augur/pkg/source"
)

// ProcessingError records an error for one input file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker
// count. 2x suits the mixed I/O and CGO workload of parsing.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// MapSources parses files in parallel, calling fn for each file with a
// dedicated parser. Results come back in input order, with failed files
// omitted; per-file errors are returned separately in input order so
// callers can report skips deterministically.
func MapSources[T any](ctx context.Context, files []source.File, fn func(*parser.Parser, source.File) (T, error), onProgress ProgressFunc) ([]T, []ProcessingError) {
	return MapSourcesN(ctx, files, 0, fn, onProgress)
}

// MapSourcesN is MapSources with a configurable worker count.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func MapSourcesN[T any](ctx context.Context, files []source.File, maxWorkers int, fn func(*parser.Parser, source.File) (T, error), onProgress ProgressFunc) ([]T, []ProcessingError) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	// Indexed slots keep results aligned with input order regardless of
	// worker completion order.
	slots := make([]T, len(files))
	ok := make([]bool, len(files))
	slotErrs := make([]error, len(files))
	var progressMu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, f := range files {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				slotErrs[i] = err
				return
			}

			psr := parser.New()
			defer psr.Close()

			result, err := fn(psr, f)
			if err != nil {
				slotErrs[i] = err
			} else {
				slots[i] = result
				ok[i] = true
			}

			if onProgress != nil {
				progressMu.Lock()
				onProgress()
				progressMu.Unlock()
			}
		})
	}
	p.Wait()

	results := make([]T, 0, len(files))
	var errs []ProcessingError
	for i := range files {
		if ok[i] {
			results = append(results, slots[i])
			continue
		}
		if slotErrs[i] != nil {
			errs = append(errs, ProcessingError{Path: files[i].Path, Err: slotErrs[i]})
		}
	}
	return results, errs
}
