package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: howto <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render instruction pages from source files")
	fmt.Fprintln(w, "  serve      Run the page editor in a browser")
	fmt.Fprintln(w, "  watch      Rebuild a page whenever its source changes")
	fmt.Fprintln(w, "  doctor     Check the PDF export setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'howto help <command>' for details on a specific command.")
}

// printExportFlags prints the flags shared by build, watch and serve.
func printExportFlags(w io.Writer) {
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -s, --style <name>        Style name, CSS file, or CSS text")
	fmt.Fprintln(w, "  -l, --lang <tag>          Page labels: en, ru")
	fmt.Fprintln(w, "      --highlight           Color code blocks")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles and templates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also export PDF (needs Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: howto build <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render instruction pages to <slug>.html (and <slug>.pdf with --pdf).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source file or directory (.yaml, .yml, .toml, .md, .markdown)")
	fmt.Fprintln(w, "           Defaults to the current directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory, or .html file for one source")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --stdout              Print the page of one source (e.g., | pbcopy)")
	fmt.Fprintln(w)
	printExportFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: howto watch <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a page, then rebuild it every time the source file is saved.")
	fmt.Fprintln(w, "Stops on Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory, or .html file")
	fmt.Fprintln(w)
	printExportFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: howto serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the page editor with a live preview and downloads.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w)
	printExportFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: howto doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that --pdf can run: browser, sandbox, temp dir, page settings and style.")
	fmt.Fprintln(w, "Exits non-zero when a check fails.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdWatch:
		printWatchUsage(env.Stdout)
	case cmdServe:
		printServeUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: howto version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: howto help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
