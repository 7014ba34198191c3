// Command hermesctl answers one routing query against the configured database and prints the
// result as JSON.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(loadRouter).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
