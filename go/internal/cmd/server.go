package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/mcdev12/rosterbot/go/internal/gateway"
)

func setupServer(cfg *Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	// Register API routes
	services.API.RegisterRoutes(mux)

	// Register the live trade feed
	wsHandler := gateway.NewWebSocketHandler(services.Gateway)
	wsHandler.RegisterRoutes(mux)

	// Add health check endpoint
	setupHealthCheck(mux)

	return &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: c.Handler(mux),
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("Failed to write health check response: %v", err)
		}
	})
}
