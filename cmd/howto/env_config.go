package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-howto/internal/config"
)

// envPrefix marks the environment variables read by howto.
const envPrefix = "HOWTO_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // HOWTO_CONFIG: config file name or path
	Style      string        // HOWTO_STYLE: CSS style name or path
	Lang       string        // HOWTO_LANG: page labels
	Timeout    time.Duration // HOWTO_TIMEOUT: PDF export timeout
	OutputDir  string        // HOWTO_OUTPUT_DIR: default output directory
	Addr       string        // HOWTO_ADDR: editor listen address
	PageSize   string        // HOWTO_PAGE_SIZE: a4, letter, legal
	Workers    int           // HOWTO_WORKERS: parallel workers
}

// knownEnvVars lists valid HOWTO_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HOWTO_CONFIG":     true,
	"HOWTO_STYLE":      true,
	"HOWTO_LANG":       true,
	"HOWTO_TIMEOUT":    true,
	"HOWTO_OUTPUT_DIR": true,
	"HOWTO_ADDR":       true,
	"HOWTO_PAGE_SIZE":  true,
	"HOWTO_WORKERS":    true,
	"HOWTO_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("HOWTO_CONFIG"),
		Style:      os.Getenv("HOWTO_STYLE"),
		Lang:       os.Getenv("HOWTO_LANG"),
		OutputDir:  os.Getenv("HOWTO_OUTPUT_DIR"),
		Addr:       os.Getenv("HOWTO_ADDR"),
		PageSize:   os.Getenv("HOWTO_PAGE_SIZE"),
	}

	if timeout := os.Getenv("HOWTO_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("HOWTO_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HOWTO_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies set environment values over cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeExportFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Render.Style = env.Style
	}
	if env.Lang != "" {
		cfg.Render.Lang = env.Lang
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.PageSize != "" {
		cfg.PDF.Page.Size = env.PageSize
	}
}
