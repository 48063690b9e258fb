package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voidwatch/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "voidwatch: %v\n", err)
		return 1
	}
	return 0
}
