package source

import "errors"

// Sentinel errors for source operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported source format")
	ErrDecode            = errors.New("failed to decode source")
	ErrRead              = errors.New("failed to read source")
	ErrTooLarge          = errors.New("source exceeds maximum size")
)
