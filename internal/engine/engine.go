// Package engine builds a whole-program entity graph from source files
// and runs dead-code, duplication, and naming analyses over it.
package engine

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"augur/internal/fileproc"
	"augur/pkg/config"
	"augur/pkg/models"
	"augur/pkg/parser"
	"augur/pkg/source"
)

// Engine runs one analysis per call. The graph it builds is owned by
// the run and discarded when the report is returned; nothing is shared
// between runs.
type Engine struct {
	cfg     *config.Config
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the extraction worker count.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// New creates an engine with the given configuration.
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeProvider collects files from the provider and analyzes them.
// A collection failure is fatal: no partial report is produced.
func (e *Engine) AnalyzeProvider(ctx context.Context, p source.Provider, onProgress fileproc.ProgressFunc) (*models.Report, error) {
	files, err := p.Collect()
	if err != nil {
		return nil, fmt.Errorf("acquire sources: %w", err)
	}
	return e.Analyze(ctx, files, onProgress)
}

// Analyze runs the full pipeline over in-memory sources: parallel
// extraction, a barrier, global linking, the three read-only analyses,
// then statistics. Zero input files is not an error and yields a zero
// report.
func (e *Engine) Analyze(ctx context.Context, files []source.File, onProgress fileproc.ProgressFunc) (*models.Report, error) {
	report := models.NewReport()
	if len(files) == 0 {
		return report, nil
	}

	// Stage 1: extraction. Each file parses independently; failures
	// become skip records. Results come back in input order, which
	// fixes node insertion order and with it every downstream ordering.
	results, procErrs := fileproc.MapSourcesN(ctx, files, e.workers, func(psr *parser.Parser, f source.File) (fileResult, error) {
		return extractFile(psr, f)
	}, onProgress)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	for _, pe := range procErrs {
		report.FilesSkipped = append(report.FilesSkipped, pe.Path)
	}
	report.FilesAnalyzed = len(results)

	// Barrier reached: the node set is complete. Build the arena.
	g := NewGraph()
	topLevel := make(map[int]bool)
	tokens := make(map[int][]string)
	for _, fr := range results {
		for _, en := range fr.nodes {
			idx := g.Add(en.node)
			topLevel[idx] = en.topLevel
			tokens[idx] = en.tokens
		}
	}
	report.NodesCreated = g.Len()

	// Stage 2: linking needs the whole graph, never interleave it with
	// extraction.
	report.DependenciesMapped = link(g, results)

	// Stage 3: the analyses are read-only over the finished graph and
	// run concurrently.
	explicit, fallback := entryPoints(g, topLevel, e.cfg.Thresholds.EntryPointLineCutoff)

	var (
		dead       []string
		duplicates []models.DuplicateGroup
		clones     []models.ClonePair
		mismatches []models.SemanticMismatch
		stats      models.GraphStats
	)

	p := pool.New()
	if e.cfg.Analysis.DeadCode {
		p.Go(func() {
			dead = deadCode(g, explicit, fallback)
		})
	}
	if e.cfg.Analysis.Duplicates {
		p.Go(func() {
			duplicates = duplicateGroups(g)
		})
	}
	if e.cfg.Analysis.Clones {
		p.Go(func() {
			clones = clonePairs(g, tokens, e.cfg.Thresholds.CloneSimilarity, e.cfg.Thresholds.CloneMinTokens)
		})
	}
	if e.cfg.Analysis.Naming {
		p.Go(func() {
			mismatches = semanticMismatches(g)
		})
	}
	if e.cfg.Analysis.Stats {
		p.Go(func() {
			stats = computeStats(g, e.cfg.Thresholds.CouplingThreshold, e.cfg.Thresholds.TopConnected)
		})
	}
	p.Wait()

	if dead != nil {
		report.DeadCode = dead
	}
	if duplicates != nil {
		report.Duplicates = duplicates
	}
	report.Clones = clones
	if mismatches != nil {
		report.SemanticMismatches = mismatches
	}
	if e.cfg.Analysis.Stats {
		report.GraphStats = stats
	} else {
		report.GraphStats.TotalNodes = g.Len()
	}

	return report, nil
}
