package main

import (
	"errors"
	"os"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/config"
	"github.com/alnah/go-howto/internal/source"
)

// Exit codes for the howto CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or source
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, howto.ErrBrowserConnect) ||
		errors.Is(err, howto.ErrPageCreate) ||
		errors.Is(err, howto.ErrPageLoad) ||
		errors.Is(err, howto.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, source.ErrRead) ||
		errors.Is(err, source.ErrTooLarge) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoSources) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, source.ErrUnsupportedFormat) ||
		errors.Is(err, source.ErrDecode) ||
		errors.Is(err, howto.ErrInvalidPageSize) ||
		errors.Is(err, howto.ErrInvalidOrientation) ||
		errors.Is(err, howto.ErrInvalidMargin) ||
		errors.Is(err, howto.ErrUnknownLabels) ||
		errors.Is(err, howto.ErrStyleNotFound) ||
		errors.Is(err, howto.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
