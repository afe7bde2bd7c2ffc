// Package main runs the Golden Burguer application core server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/golden-burguer/appcore/internal/app/runtime"
)

func main() {
	application, err := runtime.NewApplication()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
