package main

import (
	"fmt"
	"time"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/config"
)

// loadConfig builds the effective configuration for a command:
// defaults, then the config file (--config or HOWTO_CONFIG), then
// environment variables, then flags.
func loadConfig(f *exportFlags, env *envConfig) (*config.Config, error) {
	name := f.common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	if err := mergeExportFlags(f, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeExportFlags merges CLI flags into config. Set flags win.
func mergeExportFlags(f *exportFlags, cfg *config.Config) error {
	if f.render.style != "" {
		cfg.Render.Style = f.render.style
	}
	if f.render.lang != "" {
		cfg.Render.Lang = f.render.lang
	}
	if f.render.highlight {
		cfg.Render.Highlight = true
	}
	if f.render.assetPath != "" {
		cfg.Assets.BasePath = f.render.assetPath
	}

	if f.pdf {
		cfg.PDF.Enabled = true
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, f.timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, f.timeout)
		}
		cfg.PDF.Timeout = d
	}

	if f.page.size != "" {
		cfg.PDF.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.PDF.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.PDF.Page.Margin = f.page.margin
	}
	return nil
}

// generatorOptions translates cfg into Generator options.
func generatorOptions(cfg *config.Config) ([]howto.Option, error) {
	labels, err := howto.LabelsFor(cfg.Render.Lang)
	if err != nil {
		return nil, err
	}

	opts := []howto.Option{
		howto.WithStyle(cfg.Render.Style),
		howto.WithLabels(labels),
		howto.WithTimeout(cfg.PDF.Timeout),
	}
	if cfg.Render.Highlight {
		opts = append(opts, howto.WithHighlighting(cfg.Render.HighlightStyle))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, howto.WithAssetPath(cfg.Assets.BasePath))
	}
	return opts, nil
}

// pageSettings returns validated PDF page settings from cfg.
func pageSettings(cfg *config.Config) (*howto.PageSettings, error) {
	page := &howto.PageSettings{
		Size:        cfg.PDF.Page.Size,
		Orientation: cfg.PDF.Page.Orientation,
		Margin:      cfg.PDF.Page.Margin,
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// newGenerator builds one generator from cfg. Used to fail fast on a bad
// style or asset path before any work starts.
func newGenerator(cfg *config.Config) (*howto.Generator, error) {
	opts, err := generatorOptions(cfg)
	if err != nil {
		return nil, err
	}
	return howto.NewGenerator(opts...)
}
