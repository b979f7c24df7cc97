// Command freefall prints the position of a ball falling from rest at (0, 0, 10) for 1000 steps.
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
	if _, err := a.Run(ctx, app.Options{Config: config.ForScene("freefall")}); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
