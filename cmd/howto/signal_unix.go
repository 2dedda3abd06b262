//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownSignals stop build, serve and watch.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// withShutdownSignals returns a context canceled on SIGINT or SIGTERM.
func withShutdownSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
