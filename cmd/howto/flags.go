package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds page appearance flags.
type renderFlags struct {
	style     string // name, CSS file path or raw CSS
	lang      string // label preset
	highlight bool
	assetPath string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// exportFlags holds flags shared by commands that write or serve pages.
type exportFlags struct {
	common  commonFlags
	render  renderFlags
	page    pageFlags
	pdf     bool
	timeout string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	exportFlags
	output  string
	workers int
	stdout  bool // print one page instead of writing files
}

// watchFlags holds all flags for the watch command.
type watchFlags struct {
	exportFlags
	output string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	exportFlags
	addr string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addRenderFlags adds page appearance flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "CSS style name or file path")
	fs.StringVarP(&f.lang, "lang", "l", "", "page labels: en, ru")
	fs.BoolVar(&f.highlight, "highlight", false, "color code blocks")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addPageFlags adds PDF page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addExportFlags adds every flag of exportFlags to a FlagSet.
func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addPageFlags(fs, &f.page)
	fs.BoolVar(&f.pdf, "pdf", false, "also export PDF (needs Chrome)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", stderr, printBuildUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.stdout, "stdout", false, "write the page of one source to stdout")
	addExportFlags(fs, &f.exportFlags)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, []string, error) {
	f := &watchFlags{}
	fs := newFlagSet("watch", stderr, printWatchUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	addExportFlags(fs, &f.exportFlags)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", stderr, printServeUsage)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	addExportFlags(fs, &f.exportFlags)

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}
