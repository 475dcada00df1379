package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hwidmann/taskcanvas/pkg/pipeline"
	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output      string // output file path (single format) or base path (multiple)
	bundlePath  string // resource bundle TOML file
	theme       string // HTML color theme: "light" or "dark"
	noCache     bool   // disable caching
	seed        uint64 // override the bundle's layout seed
	parallelism int    // concurrent figure renders
	interactive bool   // pick tasks interactively before building
	redisAddr   string // redis cache address (empty uses file cache)
	redisDB     int    // redis database number
}

// buildCommand creates the build command running the full pipeline.
func (c *CLI) buildCommand() *cobra.Command {
	var formatsStr string
	opts := buildOpts{theme: pipeline.ThemeLight}

	cmd := &cobra.Command{
		Use:   "build [config.json]",
		Short: "Build a structural document from a problem-set configuration",
		Long: `Build a structural document from a problem-set configuration.

The build command validates the configuration, renders all figures, lays out
pages per task category, and assembles the final square-viewport document.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			return c.runBuild(cmd, args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), html (comma-separated)")
	cmd.Flags().StringVarP(&opts.bundlePath, "bundle", "b", "", "resource bundle TOML file (defaults built in)")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "HTML theme: light (default), dark")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "override the bundle's graph layout seed")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 0, "concurrent figure renders (default 4)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick tasks interactively before building")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis cache address (host:port); uses the file cache when empty")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")

	return cmd
}

// runBuild loads the configuration, runs the pipeline, and writes outputs.
func (c *CLI) runBuild(cmd *cobra.Command, input string, formats []string, opts *buildOpts) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(input)
	if err != nil {
		return err
	}

	if opts.interactive {
		cfg, err = pickTasks(cfg)
		if err != nil {
			return err
		}
	}

	bundle, err := loadBundle(opts.bundlePath)
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}

	runner, err := c.newRunner(cmd, cacheOpts{
		noCache:   opts.noCache,
		redisAddr: opts.redisAddr,
		redisDB:   opts.redisDB,
	})
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	pipeOpts := pipeline.Options{
		Formats:     formats,
		Theme:       opts.theme,
		NoCache:     opts.noCache,
		Seed:        opts.seed,
		Parallelism: opts.parallelism,
		Logger:      c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Building document...")
	spinner.Start()

	result, err := runner.Build(ctx, cfg, bundle, pipeOpts)
	if err != nil {
		spinner.StopWithError("Build failed")
		var schemaErrs *pipeline.SchemaErrors
		if errors.As(err, &schemaErrs) {
			printViolations(schemaErrs.Violations)
			return fmt.Errorf("%d schema violations", len(schemaErrs.Violations))
		}
		return err
	}
	spinner.Stop()

	if err := writeOutputs(result, formats, input, opts); err != nil {
		return err
	}

	printSuccess("Built %s", input)
	printStats(result.Stats.TaskCount, result.Stats.PageCount, result.Stats.FigureCount,
		result.CacheInfo.DocumentHit)
	printKeyValue("build", result.BuildID.String())
	printKeyValue("config", result.ConfigHash[:12])
	for _, w := range result.Document.Warnings {
		printWarning("%s", w)
	}
	printNewline()
	printNextStep("Preview in the browser", fmt.Sprintf("%s serve %s", appName, input))

	return nil
}

// writeOutputs serializes the result to every requested format.
// A single format writes to opts.output directly (or derives the path from
// the input); multiple formats append the format as extension to the base.
func writeOutputs(result *pipeline.Result, formats []string, input string, opts *buildOpts) error {
	base := basePath(opts.output, input)

	for _, format := range formats {
		var data []byte
		var err error
		switch format {
		case pipeline.FormatJSON:
			data, err = problem.MarshalStructural(result.Document)
		case pipeline.FormatHTML:
			data, err = WriteHTML(result.Document, opts.theme)
		default:
			err = fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("serialize %s: %w", format, err)
		}

		path := opts.output
		if path == "" || len(formats) > 1 {
			path = base + "." + format
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// buildDocument runs the pipeline without writing files; used by serve.
func (c *CLI) buildDocument(ctx context.Context, cmd *cobra.Command, input string, opts *buildOpts) (*pipeline.Result, error) {
	cfg, err := loadConfig(input)
	if err != nil {
		return nil, err
	}
	bundle, err := loadBundle(opts.bundlePath)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	runner, err := c.newRunner(cmd, cacheOpts{
		noCache:   opts.noCache,
		redisAddr: opts.redisAddr,
		redisDB:   opts.redisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	return runner.Build(ctx, cfg, bundle, pipeline.Options{
		Theme:  opts.theme,
		Seed:   opts.seed,
		Logger: c.Logger,
	})
}
