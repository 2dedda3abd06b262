package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/source"
)

// SourceJob is one source to build and where its output goes.
type SourceJob struct {
	InputPath  string
	OutputDir  string // directory for <slug>.html when OutputFile is empty
	OutputFile string // explicit .html path, single-source builds only
}

// discoverSources finds all source files under inputPath.
// output is a directory, an .html file for a single source, or empty to
// write next to each source.
func discoverSources(inputPath, output string) ([]SourceJob, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if _, err := source.FormatFor(inputPath); err != nil {
			return nil, err
		}
		job := SourceJob{InputPath: inputPath, OutputDir: output}
		switch {
		case isHTMLPath(output):
			job = SourceJob{InputPath: inputPath, OutputFile: output}
		case output == "":
			job.OutputDir = filepath.Dir(inputPath)
		}
		return []SourceJob{job}, nil
	}

	if isHTMLPath(output) {
		return nil, fmt.Errorf("%w: --output %q names a file but %s is a directory", ErrUsage, output, inputPath)
	}

	var jobs []SourceJob
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !source.IsSource(path) {
			return nil
		}
		jobs = append(jobs, SourceJob{
			InputPath: path,
			OutputDir: resolveOutputDir(path, output, inputPath),
		})
		return nil
	})

	return jobs, err
}

// resolveOutputDir mirrors the source's position under baseInputDir inside
// outputDir. An empty outputDir keeps pages next to their sources.
func resolveOutputDir(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return filepath.Dir(inputPath)
	}

	if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
		return filepath.Join(outputDir, filepath.Dir(relPath))
	}
	return outputDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > howto.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, howto.MaxPoolSize)
	}
	return nil
}

func isHTMLPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".html")
}

// pdfPathFor returns the PDF path next to an HTML path.
func pdfPathFor(htmlPath string) string {
	return strings.TrimSuffix(htmlPath, filepath.Ext(htmlPath)) + ".pdf"
}
