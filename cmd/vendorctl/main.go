package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"vendorly/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	code := cli.GetExitCode(err)
	if err != nil && !cli.Reported(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(code)
}
