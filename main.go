package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/allscreenshots/allscreenshots-cli/cli"
	"github.com/allscreenshots/allscreenshots-cli/ui"
)

func main() {
	// interrupts cancel the context so watch and schedule run can print
	// their summary before exiting
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err))
		os.Exit(1)
	}
}
