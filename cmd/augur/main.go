package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"augur/internal/engine"
	"augur/internal/mcpserver"
	"augur/internal/output"
	"augur/internal/progress"
	"augur/pkg/config"
	"augur/pkg/models"
	"augur/pkg/source"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "augur",
		Usage:   "Code dependency and duplication analysis CLI",
		Version: version,
		Description: `Augur parses source files into an entity graph of functions and
classes with call edges, then reports dead code, structural duplicates,
naming mismatches, and graph statistics.

Supports: Go, Python, TypeScript, JavaScript, Ruby`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"AUGUR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.StringFlag{
				Name:  "rev",
				Usage: "Analyze sources at a git revision instead of the working tree",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			deadcodeCmd(),
			duplicatesCmd(),
			namingCmd(),
			statsCmd(),
			initCmd(),
			mcpCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func getPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}
	if format := c.String("format"); format != "" {
		cfg.Output.Format = format
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	return cfg, nil
}

func buildProvider(c *cli.Context, cfg *config.Config) (source.Provider, error) {
	dir := getPath(c)
	if rev := c.String("rev"); rev != "" {
		return source.NewGitRevision(dir, rev, cfg)
	}
	return source.NewFilesystem(dir, cfg), nil
}

// runEngine acquires sources, runs the full pipeline with a progress
// bar, and returns the report.
func runEngine(c *cli.Context, cfg *config.Config) (*models.Report, error) {
	provider, err := buildProvider(c, cfg)
	if err != nil {
		return nil, err
	}

	files, err := provider.Collect()
	if err != nil {
		return nil, fmt.Errorf("acquire sources: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := progress.NewTracker("Analyzing", len(files))
	report, err := engine.New(cfg).Analyze(ctx, files, tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return nil, err
	}
	tracker.FinishSuccess()
	return report, nil
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Run the full analysis and print a combined report",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			report, err := runEngine(c, cfg)
			if err != nil {
				return err
			}

			f, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer f.Close()

			if f.Format() == output.FormatJSON || f.Format() == output.FormatToon {
				return f.Output(report)
			}

			for _, table := range []*output.Table{
				output.SummaryTable(report),
				output.DeadCodeTable(report),
				output.DuplicatesTable(report),
				output.ClonesTable(report),
				output.NamingTable(report, cfg.Output.Color),
				output.StatsTable(report),
			} {
				if err := f.Output(table); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func deadcodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "deadcode",
		Aliases:   []string{"dc"},
		Usage:     "Find functions and classes unreachable from entry points",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "entry-line-cutoff",
				Usage: "Line cutoff for the fallback entry-point heuristic",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cutoff := c.Uint("entry-line-cutoff"); cutoff > 0 {
				cfg.Thresholds.EntryPointLineCutoff = uint32(cutoff)
			}
			cfg.Analysis.Duplicates = false
			cfg.Analysis.Clones = false
			cfg.Analysis.Naming = false

			report, err := runEngine(c, cfg)
			if err != nil {
				return err
			}

			f, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer f.Close()
			return f.Output(output.DeadCodeTable(report))
		},
	}
}

func duplicatesCmd() *cli.Command {
	return &cli.Command{
		Name:      "duplicates",
		Aliases:   []string{"dup"},
		Usage:     "Group structurally identical code and find near-duplicate clones",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Clone similarity threshold (0.0-1.0)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if threshold := c.Float64("threshold"); threshold > 0 {
				cfg.Thresholds.CloneSimilarity = threshold
			}
			cfg.Analysis.DeadCode = false
			cfg.Analysis.Naming = false

			report, err := runEngine(c, cfg)
			if err != nil {
				return err
			}

			f, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.Output(output.DuplicatesTable(report)); err != nil {
				return err
			}
			return f.Output(output.ClonesTable(report))
		},
	}
}

func namingCmd() *cli.Command {
	return &cli.Command{
		Name:      "naming",
		Usage:     "Report names whose implied intent disagrees with the body",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			cfg.Analysis.DeadCode = false
			cfg.Analysis.Duplicates = false
			cfg.Analysis.Clones = false

			report, err := runEngine(c, cfg)
			if err != nil {
				return err
			}

			f, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer f.Close()
			return f.Output(output.NamingTable(report, cfg.Output.Color))
		},
	}
}

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print graph statistics and connectivity rankings",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "coupling-threshold",
				Usage: "Connection count above which a node is highly coupled",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if threshold := c.Int("coupling-threshold"); threshold > 0 {
				cfg.Thresholds.CouplingThreshold = threshold
			}
			cfg.Analysis.Duplicates = false
			cfg.Analysis.Clones = false
			cfg.Analysis.Naming = false
			cfg.Analysis.DeadCode = false

			report, err := runEngine(c, cfg)
			if err != nil {
				return err
			}

			f, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer f.Close()
			return f.Output(output.StatsTable(report))
		},
	}
}

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the analysis tools over the Model Context Protocol (stdio)",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcpserver.NewServer(version).Run(ctx)
		},
	}
}
