// Package assets provides the CSS styles embedded into exported pages and the
// HTML templates of the preview server.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles ("default", the look of the
// original instruction page, and "print") and the preview form template.
//
// AssetResolver is the loader used by the generator. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// missing, so a directory may override a single style without copying the rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # page styles
//	└── templates/
//	    └── {name}.html      # server templates (e.g., form.html)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
