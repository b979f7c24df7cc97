package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/rigidsim/internal/cli"
)

// main runs the rigidsim command tree. Ctrl-C stops a running scene; the
// steps done so far are still reported and saved.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
