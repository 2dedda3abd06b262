//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// shutdownSignals stop build, serve and watch. SIGTERM does not exist on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}

// withShutdownSignals returns a context canceled on Ctrl+C.
func withShutdownSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
