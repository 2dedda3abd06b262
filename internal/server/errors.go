package server

import "errors"

// Sentinel errors for server setup.
var (
	ErrNilExporter  = errors.New("exporter is required")
	ErrTemplateLoad = errors.New("failed to load form template")
)
