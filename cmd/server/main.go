// Package main implements the entry point for the equation API server,
// which accepts equations in everyday math notation, normalizes them to a
// strict grammar, and solves them with a symbolic engine.
package main

import (
	"context"
	"log"
)

// main initializes configuration, logging, and the solve pipeline, then
// runs the HTTP server until it receives a shutdown signal.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
