package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrNoSources          = errors.New("no source files found")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrGeneratorInit      = errors.New("failed to initialize generator")
)

// usageError wraps a flag parsing error in ErrUsage. flag.ErrHelp passes
// through so -h can exit cleanly.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
