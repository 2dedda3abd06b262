package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events a single save produces.
const watchDebounce = 100 * time.Millisecond

// runWatch builds one source, then rebuilds it on every save until ctx is
// canceled. Build failures are reported and watching continues.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	switch len(positional) {
	case 0:
		return fmt.Errorf("%w: watch needs a source file", ErrNoInput)
	case 1:
	default:
		return fmt.Errorf("%w: watch takes one file, got %d", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(&flags.exportFlags, loadEnvConfig())
	if err != nil {
		return err
	}
	env.Config = cfg

	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}
	jobs, err := discoverSources(positional[0], output)
	if err != nil {
		return err
	}
	if len(jobs) != 1 || jobs[0].InputPath != positional[0] {
		return fmt.Errorf("%w: watch takes a file, %s is a directory", ErrUsage, positional[0])
	}
	job := jobs[0]

	params := &buildParams{pdf: cfg.PDF.Enabled}
	if params.pdf {
		if params.page, err = pageSettings(cfg); err != nil {
			return err
		}
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer gen.Close()

	rebuild := func() {
		result := buildFile(ctx, gen, job, params, newOutputNames())
		printResults([]BuildResult{result}, flags.common.quiet, flags.common.verbose, env)
	}

	rebuild()
	return watchFile(ctx, job.InputPath, rebuild, env.Stderr, func() {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", job.InputPath)
		}
	})
}

// watchFile calls onChange after each write to path until ctx is canceled.
// The parent directory is watched so editors that save by renaming a temp
// file over path are seen too. ready runs once the watch is in place.
func watchFile(ctx context.Context, path string, onChange func(), errOut io.Writer, ready func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if ready != nil {
		ready()
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == abs && ev.Has(fsnotify.Write|fsnotify.Create) {
				fire = time.After(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch error: %v\n", err)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}
