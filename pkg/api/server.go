// Package api serves saved turn records over HTTP so finished sessions can
// be inspected without opening the database.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mccartn3y/tetris-cli/pkg/api/handlers"
	"github.com/mccartn3y/tetris-cli/pkg/api/middleware"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port       int
	TLS        *TLSConfig
	Repository repositories.Repository
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	requestLogMiddleware := middleware.NewRequestLogMiddleware()

	mux := http.NewServeMux()
	mux.Handle("/sessions/{sessionID}/turns", requestLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.HandleListTurnRecords(opts.Repository)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/turns/{turnID}", requestLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.HandleGetTurnRecord(opts.Repository)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: mux,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
