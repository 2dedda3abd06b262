package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-howto"
	"github.com/alnah/go-howto/internal/assets"
	"github.com/alnah/go-howto/internal/config"
	"github.com/alnah/go-howto/internal/hints"
	"github.com/alnah/go-howto/internal/source"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild   = "build"
	cmdServe   = "serve"
	cmdWatch   = "watch"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// defaultConfigName is the config file suggested by hints.
const defaultConfigName = "howto"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	configureMaxProcs(hasVerboseFlag(args[2:]), env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := withShutdownSignals(context.Background())
	defer stop()

	err := run(ctx, args[1], args[2:], env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run dispatches one command. A source file in command position is
// shorthand for build.
func run(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch {
	case cmd == cmdBuild:
		return runBuild(ctx, args, env)
	case cmd == cmdServe:
		return runServe(ctx, args, env)
	case cmd == cmdWatch:
		return runWatch(ctx, args, env)
	case cmd == cmdDoctor:
		return runDoctor(args, env)
	case cmd == cmdVersion:
		fmt.Fprintf(env.Stdout, "howto %s\n", Version)
		return nil
	case cmd == cmdHelp, cmd == "-h", cmd == "--help":
		return runHelp(args, env)
	case !isCommand(cmd) && source.IsSource(cmd):
		return runBuild(ctx, append([]string{cmd}, args...), env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	switch name {
	case cmdBuild, cmdServe, cmdWatch, cmdDoctor, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota. Its log
// line is shown only in verbose mode.
func configureMaxProcs(verbose bool, stderr io.Writer) {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, howto.ErrBrowserConnect),
		errors.Is(err, howto.ErrPageCreate),
		errors.Is(err, howto.ErrPDFGeneration):
		return hints.ForBrowserConnect()
	case errors.Is(err, howto.ErrPageLoad),
		errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(defaultConfigName))
	case errors.Is(err, howto.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, source.ErrUnsupportedFormat):
		return hints.ForUnsupportedSource(source.Extensions())
	case errors.Is(err, howto.ErrUnknownLabels):
		return hints.ForLabels(howto.LabelPresets())
	case errors.Is(err, syscall.EADDRINUSE):
		return hints.ForAddressInUse()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
