// Command lookup queries the customer sheet from the command line, using the
// same configuration and sources as the webhook server.
//
// Results are printed as JSON on stdout; logs go to stderr.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var stderr io.Writer = os.Stderr

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
