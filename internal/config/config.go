// Package config loads the YAML configuration shared by the build, watch and
// serve commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/alnah/go-howto/internal/fileutil"
	"github.com/alnah/go-howto/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxStyleLength       = 64  // asset name; raw CSS belongs in a file
	MaxLangLength        = 35  // longest practical BCP 47 tag
	MaxPageSizeLength    = 10  // "letter", "a4", "legal"
	MaxOrientationLength = 10  // "portrait", "landscape"
	MaxAddrLength        = 255 // host:port
)

// Limits for numeric fields.
const (
	MaxTimeout      = 10 * time.Minute
	MaxRateLimit    = 10_000
	MaxBodyBytesCap = 32 << 20
	MaxPDFCacheTTL  = 24 * time.Hour
)

// userConfigDirName is the directory searched under os.UserConfigDir.
const userConfigDirName = "go-howto"

// Config holds all configuration for page generation and serving.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	PDF    PDFConfig    `yaml:"pdf"`
	Server ServerConfig `yaml:"server"`
	Assets AssetsConfig `yaml:"assets"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// RenderConfig defines how pages look.
type RenderConfig struct {
	Style          string `yaml:"style"`          // asset name (default: "default")
	Lang           string `yaml:"lang"`           // label preset: "en" or "ru"
	Highlight      bool   `yaml:"highlight"`      // chroma token colors in code blocks
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
}

// PDFConfig defines the optional PDF export.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"` // e.g. "30s"
	Page    PageConfig    `yaml:"page"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// ServerConfig defines the preview server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	RateLimit    int           `yaml:"rateLimit"`    // requests per minute per IP, 0 = unlimited
	MaxBodyBytes int64         `yaml:"maxBodyBytes"` // form body cap
	PDFCacheTTL  time.Duration `yaml:"pdfCacheTTL"`  // reuse identical PDF downloads, 0 = off
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Style:          "default",
			Lang:           "en",
			HighlightStyle: "monokai",
		},
		PDF: PDFConfig{
			Timeout: 30 * time.Second,
			Page: PageConfig{
				Size:        "letter",
				Orientation: "portrait",
				Margin:      0.5,
			},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			RateLimit:    60,
			MaxBodyBytes: 1 << 20,
			PDFCacheTTL:  10 * time.Minute,
		},
	}
}

// Validate checks field lengths and ranges. Called by LoadConfig, and
// available for callers that build a Config by hand.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"render.style", c.Render.Style, MaxStyleLength},
		{"render.lang", c.Render.Lang, MaxLangLength},
		{"render.highlightStyle", c.Render.HighlightStyle, MaxStyleLength},
		{"pdf.page.size", c.PDF.Page.Size, MaxPageSizeLength},
		{"pdf.page.orientation", c.PDF.Page.Orientation, MaxOrientationLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Render.Lang != "" {
		if _, err := language.Parse(c.Render.Lang); err != nil {
			return fmt.Errorf("%w: render.lang %q is not a language tag", ErrInvalidValue, c.Render.Lang)
		}
	}
	if c.PDF.Timeout < 0 || c.PDF.Timeout > MaxTimeout {
		return fmt.Errorf("%w: pdf.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxTimeout, c.PDF.Timeout)
	}
	if c.PDF.Page.Margin < 0 {
		return fmt.Errorf("%w: pdf.page.margin must not be negative, got %.2f", ErrInvalidValue, c.PDF.Page.Margin)
	}
	if c.Server.RateLimit < 0 || c.Server.RateLimit > MaxRateLimit {
		return fmt.Errorf("%w: server.rateLimit must be between 0 and %d, got %d", ErrInvalidValue, MaxRateLimit, c.Server.RateLimit)
	}
	if c.Server.MaxBodyBytes < 0 || c.Server.MaxBodyBytes > MaxBodyBytesCap {
		return fmt.Errorf("%w: server.maxBodyBytes must be between 0 and %d, got %d", ErrInvalidValue, MaxBodyBytesCap, c.Server.MaxBodyBytes)
	}
	if c.Server.PDFCacheTTL < 0 || c.Server.PDFCacheTTL > MaxPDFCacheTTL {
		return fmt.Errorf("%w: server.pdfCacheTTL must be between 0 and %s, got %s", ErrInvalidValue, MaxPDFCacheTTL, c.Server.PDFCacheTTL)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path; anything else is
// searched for with SearchPaths. Keys missing from the file keep their
// DefaultConfig values. There is no silent fallback when the file is missing.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// the working directory, then the user config directory, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
