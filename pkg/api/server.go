// Package api exposes the record conversion and comparison operations,
// plus the transaction archive, over HTTP.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ypbank/txfile/pkg/storage"
)

// NewRouter builds the HTTP router for a server.
func NewRouter(server *Server, metrics *Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link", requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if server.config.APIKey != "" {
			r.Use(apiKeyMiddleware(server.config.APIKey))
		}

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/convert", metrics.InstrumentHandler("POST", "/api/v1/convert", server.handleConvert))
		r.Post("/compare", metrics.InstrumentHandler("POST", "/api/v1/compare", server.handleCompare))

		r.Get("/records", metrics.InstrumentHandler("GET", "/api/v1/records", server.handleExportRecords))
		r.Post("/records", metrics.InstrumentHandler("POST", "/api/v1/records", server.handleImportRecords))
		r.Get("/records/{id}", metrics.InstrumentHandler("GET", "/api/v1/records/{id}", server.handleGetRecord))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(archive *storage.Archive, config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(archive, config, metrics)
	router := NewRouter(server, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting txfile REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, router))

	return nil
}
