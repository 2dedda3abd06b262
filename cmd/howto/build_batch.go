package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/fileutil"
	"github.com/alnah/go-howto/internal/source"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Exporter is the part of *howto.Generator the build needs.
type Exporter interface {
	Export(ctx context.Context, input howto.ExportInput) (*howto.ExportResult, error)
}

// Compile-time interface implementation check.
var _ Exporter = (*howto.Generator)(nil)

// Pool abstracts generator pool operations for testability.
type Pool interface {
	Acquire() (Exporter, error)
	Release(Exporter)
	Size() int
}

// buildParams holds the settings shared by every page of a build.
type buildParams struct {
	pdf  bool
	page *howto.PageSettings
}

// BuildResult holds the outcome of a single page build.
type BuildResult struct {
	InputPath  string
	OutputPath string // HTML file
	PDFPath    string // empty unless PDF was exported
	Err        error
	Duration   time.Duration
}

// outputNames hands out unique output paths within one build, so two sources
// with the same title do not overwrite each other.
type outputNames struct {
	mu   sync.Mutex
	used map[string]bool
}

func newOutputNames() *outputNames {
	return &outputNames{used: make(map[string]bool)}
}

// claim returns path, or path with a -2, -3... suffix if already claimed.
func (n *outputNames) claim(path string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for i := 2; n.used[candidate]; i++ {
		candidate = base + "-" + strconv.Itoa(i) + ext
	}
	n.used[candidate] = true
	return candidate
}

// buildBatch processes sources concurrently using the generator pool.
func buildBatch(ctx context.Context, pool Pool, jobs []SourceJob, params *buildParams) []BuildResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))
	names := newOutputNames()

	results := make([]BuildResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			exp, err := pool.Acquire()
			if err != nil {
				// Generator creation failed, mark remaining jobs as failed
				for idx := range queue {
					results[idx] = BuildResult{
						InputPath: jobs[idx].InputPath,
						Err:       fmt.Errorf("%w: %v", ErrGeneratorInit, err),
					}
				}
				return
			}
			defer pool.Release(exp)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						InputPath: jobs[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = buildFile(ctx, exp, jobs[idx], params, names)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// buildFile loads one source, exports it and writes the output files.
func buildFile(ctx context.Context, exp Exporter, job SourceJob, params *buildParams, names *outputNames) BuildResult {
	start := time.Now()
	result := BuildResult{InputPath: job.InputPath}
	fail := func(err error) BuildResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	src, err := source.Load(job.InputPath)
	if err != nil {
		return fail(err)
	}

	res, err := exp.Export(ctx, howto.ExportInput{
		Document:  howto.Collect(src),
		PDF:       params.pdf,
		Page:      params.page,
		SourceDir: src.Dir(),
	})
	if err != nil {
		return fail(err)
	}

	htmlPath := job.OutputFile
	if htmlPath == "" {
		htmlPath = filepath.Join(job.OutputDir, res.Filename)
	}
	htmlPath = names.claim(htmlPath)
	result.OutputPath = htmlPath

	if err := os.MkdirAll(filepath.Dir(htmlPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	// #nosec G306 -- pages are meant to be readable
	if err := fileutil.WriteFileAtomic(htmlPath, res.HTML, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.pdf {
		pdfPath := pdfPathFor(htmlPath)
		// #nosec G306 -- PDFs are meant to be readable
		if err := fileutil.WriteFileAtomic(pdfPath, res.PDF, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.PDFPath = pdfPath
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed builds.
type ResultSummary struct {
	Succeeded int
	Failed    int
	FirstErr  error
}

// countResults tallies succeeded and failed builds.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = r.Err
			}
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results using the environment's writers.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		outputs := r.OutputPath
		if r.PDFPath != "" {
			outputs += ", " + r.PDFPath
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, outputs, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}
