// Command rbtset builds red-black tree sets from fixture files, renders them
// as Graphviz DOT, and offers an interactive shell over an integer set.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amp-labs/rbtset/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{}

	err := newRootCmd(a).ExecuteContext(ctx)
	if tdErr := a.teardown(ctx); tdErr != nil {
		slog.Warn("telemetry shutdown failed", "error", tdErr)
	}

	stop()

	if err != nil {
		logger.Fatal("rbtset failed", "error", err)
	}
}
