// Package web serves the single-page front end and its JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/doeshing/sensi-go/assets"
	"github.com/doeshing/sensi-go/internal/application/session"
	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/ports"
)

// Server exposes the session controller over HTTP.
type Server struct {
	Session *session.Controller
	Logger  ports.Logger
	Addr    string
}

// Router builds the route table.
func (s *Server) Router() (*mux.Router, error) {
	static, err := fs.Sub(assets.Web, "web")
	if err != nil {
		return nil, fmt.Errorf("load embedded page: %w", err)
	}

	r := mux.NewRouter()
	r.Use(requestID, s.accessLog)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleLookup).Methods(http.MethodPost)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleClearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/history/{id}", s.handleHistoryItem).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}/restore", s.handleRestore).Methods(http.MethodPost)
	api.HandleFunc("/preferences", s.handlePreferences).Methods(http.MethodGet)
	api.HandleFunc("/preferences/mute/toggle", s.handleToggleMute).Methods(http.MethodPost)

	r.PathPrefix("/").Handler(http.FileServer(http.FS(static))).Methods(http.MethodGet)
	return r, nil
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	router, err := s.Router()
	if err != nil {
		return err
	}
	addr := s.Addr
	if addr == "" {
		addr = domain.DefaultServerAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.Logger.Info("web server listening", map[string]interface{}{"addr": addr})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultServerShutdownTimeout)
		defer cancel()
		s.Logger.Info("web server shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	}
}
