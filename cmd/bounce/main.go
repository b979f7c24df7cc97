// Command bounce draws a ball bouncing on the ground plane as a character frame every 10ms.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/rigidsim/internal/app"
	"github.com/san-kum/rigidsim/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	a := app.New(log, nil, os.Stdout)
	if _, err := a.Run(ctx, app.Options{Config: config.ForScene("bounce")}); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
