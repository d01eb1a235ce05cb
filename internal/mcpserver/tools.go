package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"augur/internal/engine"
	"augur/pkg/config"
	"augur/pkg/models"
	"augur/pkg/source"
)

// AnalyzeInput is the base input for all analyze tools.
type AnalyzeInput struct {
	Path string `json:"path,omitempty" jsonschema:"Directory to analyze. Defaults to current directory."`
	Rev  string `json:"rev,omitempty" jsonschema:"Git revision to read sources from instead of the working tree."`
}

// ProjectInput configures the full analysis.
type ProjectInput struct {
	AnalyzeInput
	CouplingThreshold int `json:"coupling_threshold,omitempty" jsonschema:"Connection count above which a node is highly coupled. Default 10."`
}

// DeadcodeInput configures dead-code analysis.
type DeadcodeInput struct {
	AnalyzeInput
	EntryLineCutoff uint32 `json:"entry_line_cutoff,omitempty" jsonschema:"Line cutoff for the fallback entry-point heuristic. Default 50."`
}

// DuplicatesInput configures duplicate detection.
type DuplicatesInput struct {
	AnalyzeInput
	Threshold float64 `json:"threshold,omitempty" jsonschema:"Clone similarity threshold (0.0-1.0). Default 0.85."`
}

func runAnalysis(ctx context.Context, in AnalyzeInput, cfg *config.Config) (*models.Report, error) {
	dir := in.Path
	if dir == "" {
		dir = "."
	}

	var provider source.Provider
	if in.Rev != "" {
		p, err := source.NewGitRevision(dir, in.Rev, cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	} else {
		provider = source.NewFilesystem(dir, cfg)
	}

	report, err := engine.New(cfg).AnalyzeProvider(ctx, provider, nil)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleAnalyzeProject(ctx context.Context, req *mcp.CallToolRequest, input ProjectInput) (*mcp.CallToolResult, any, error) {
	cfg := config.LoadOrDefault()
	if input.CouplingThreshold > 0 {
		cfg.Thresholds.CouplingThreshold = input.CouplingThreshold
	}

	report, err := runAnalysis(ctx, input.AnalyzeInput, cfg)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(report)
}

func handleAnalyzeDeadcode(ctx context.Context, req *mcp.CallToolRequest, input DeadcodeInput) (*mcp.CallToolResult, any, error) {
	cfg := config.LoadOrDefault()
	if input.EntryLineCutoff > 0 {
		cfg.Thresholds.EntryPointLineCutoff = input.EntryLineCutoff
	}
	cfg.Analysis.Duplicates = false
	cfg.Analysis.Clones = false
	cfg.Analysis.Naming = false

	report, err := runAnalysis(ctx, input.AnalyzeInput, cfg)
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		FilesAnalyzed int      `json:"files_analyzed" toon:"files_analyzed"`
		FilesSkipped  []string `json:"files_skipped" toon:"files_skipped"`
		DeadCode      []string `json:"dead_code" toon:"dead_code"`
	}{report.FilesAnalyzed, report.FilesSkipped, report.DeadCode}
	return toolResult(out)
}

func handleAnalyzeDuplicates(ctx context.Context, req *mcp.CallToolRequest, input DuplicatesInput) (*mcp.CallToolResult, any, error) {
	cfg := config.LoadOrDefault()
	if input.Threshold > 0 {
		cfg.Thresholds.CloneSimilarity = input.Threshold
	}
	cfg.Analysis.DeadCode = false
	cfg.Analysis.Naming = false

	report, err := runAnalysis(ctx, input.AnalyzeInput, cfg)
	if err != nil {
		return toolError(err.Error())
	}

	out := struct {
		FilesAnalyzed int                     `json:"files_analyzed" toon:"files_analyzed"`
		Duplicates    []models.DuplicateGroup `json:"duplicates" toon:"duplicates"`
		Clones        []models.ClonePair      `json:"clones" toon:"clones"`
	}{report.FilesAnalyzed, report.Duplicates, report.Clones}
	return toolResult(out)
}
