package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dori/constructtrack/internal/cli"
)

var version = "0.1.0"

func main() {
	cli.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
