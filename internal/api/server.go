// Package api exposes the portfolio snapshot over HTTP.
package api

import (
	"net/http"
	"time"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, snapshots SnapshotBuilder) *http.Server {
	handler := NewHandler(snapshots)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/portfolio", handler.GetPortfolio)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return &http.Server{
		Addr:    ":" + port,
		Handler: mux,
		// The write timeout covers the sequential scrape loop, which grows
		// linearly with holding count.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
