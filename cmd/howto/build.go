package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/config"
	"github.com/alnah/go-howto/internal/source"
)

// runBuild renders every discovered source with a pool of generators.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes one input, got %d", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(&flags.exportFlags, envCfg)
	if err != nil {
		return err
	}
	env.Config = cfg

	inputPath := "."
	if len(positional) == 1 {
		inputPath = positional[0]
	}
	if flags.stdout {
		return buildToStdout(inputPath, flags, cfg, env)
	}
	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}

	jobs, err := discoverSources(inputPath, output)
	if err != nil {
		return fmt.Errorf("discovering sources: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoSources, inputPath)
	}

	params := &buildParams{pdf: cfg.PDF.Enabled}
	if params.pdf {
		if params.page, err = pageSettings(cfg); err != nil {
			return err
		}
	}

	opts, err := generatorOptions(cfg)
	if err != nil {
		return err
	}
	// Fail fast on a bad style or asset path; pool generators are lazy.
	probe, err := howto.NewGenerator(opts...)
	if err != nil {
		return err
	}
	_ = probe.Close()

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := howto.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}

	pool := howto.NewGeneratorPool(size, opts...)
	defer pool.Close()

	results := buildBatch(ctx, &poolAdapter{pool: pool}, jobs, params)

	summary := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		return fmt.Errorf("%d page(s) failed: %w", summary.Failed, summary.FirstErr)
	}
	return nil
}

// buildToStdout writes the page of a single source to stdout, for piping
// into a clipboard tool or another program. PDF enabled in the config file
// is ignored; an explicit --pdf is a usage error.
func buildToStdout(inputPath string, flags *buildFlags, cfg *config.Config, env *Environment) error {
	if flags.output != "" || flags.pdf {
		return fmt.Errorf("%w: --stdout cannot be combined with --output or --pdf", ErrUsage)
	}
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v", source.ErrRead, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: --stdout needs a single source file, %s is a directory", ErrUsage, inputPath)
	}

	src, err := source.Load(inputPath)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	if _, err := io.WriteString(env.Stdout, gen.Preview(src)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
