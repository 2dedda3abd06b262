package main

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/server"
)

// runServe runs the page editor until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(&flags.exportFlags, loadEnvConfig())
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	env.Config = cfg

	var page *howto.PageSettings
	if cfg.PDF.Enabled {
		if page, err = pageSettings(cfg); err != nil {
			return err
		}
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer gen.Close()

	labels, err := howto.LabelsFor(cfg.Render.Lang)
	if err != nil {
		return err
	}

	var requestLog io.Writer
	if !flags.common.quiet {
		requestLog = env.Stderr
	}

	srv, err := server.New(gen, server.Config{
		Labels:       labels,
		Page:         page,
		PDF:          cfg.PDF.Enabled,
		RateLimit:    cfg.Server.RateLimit,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		PDFCacheTTL:  cfg.Server.PDFCacheTTL,
		LogOutput:    requestLog,
	})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx, cfg.Server.Addr, func(addr net.Addr) {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Serving on http://%s (Ctrl+C to stop)\n", addr)
		}
	})
}
