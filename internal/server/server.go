// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DataHandler serves the most recently published snapshot document.
type DataHandler struct {
	Path string
}

// ServeHTTP returns the snapshot file verbatim. A missing or invalid
// file comes back as an empty object so consumers always receive JSON.
func (h *DataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	data, err := os.ReadFile(h.Path)
	if err != nil || !json.Valid(data) {
		w.Write([]byte("{}"))
		return
	}
	w.Write(data)
}

// Server exposes the published snapshot over HTTP.
type Server struct {
	addr   string
	server *http.Server
}

// New creates the snapshot server.
func New(addr, snapshotPath string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/getAllData", &DataHandler{Path: snapshotPath})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Handler returns the route tree, for serving through a test listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	log.Printf("Server listening on %s", ln.Addr())

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		log.Println("Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
