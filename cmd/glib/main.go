// Command glib trains and applies gradient-descent regression models.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/YuminosukeSato/glib/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
