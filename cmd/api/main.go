package main

import (
	"context"
	"log"

	"electorate/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("electorate api bootstrap failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("electorate api stopped: %v", err)
	}
}
