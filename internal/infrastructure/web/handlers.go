package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/doeshing/sensi-go/internal/application/session"
)

type lookupRequest struct {
	DeviceName string `json:"deviceName"`
}

type errorResponse struct {
	Error string         `json:"error"`
	State *session.State `json:"state,omitempty"`
}

type preferencesResponse struct {
	Muted bool `json:"muted"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Session.State())
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	// A lookup runs to completion even if the client goes away.
	state, err := s.Session.Submit(context.WithoutCancel(r.Context()), req.DeviceName)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, state)
	case errors.Is(err, session.ErrEmptyInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), State: &state})
	case errors.Is(err, session.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), State: &state})
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: state.Error, State: &state})
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Session.State().History)
}

func (s *Server) handleHistoryItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, ok := s.Session.History.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("%s: %s", session.ErrNotFound, id)})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	state, err := s.Session.Restore(id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, state)
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, session.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), State: &state})
	default:
		s.internalError(w, "restore failed", err)
	}
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	state, err := s.Session.ClearHistory()
	if err != nil {
		s.internalError(w, "clear history failed", err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preferencesResponse{Muted: s.Session.State().Muted})
}

func (s *Server) handleToggleMute(w http.ResponseWriter, r *http.Request) {
	state, err := s.Session.ToggleMute()
	if err != nil {
		s.internalError(w, "mute toggle failed", err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Muted: state.Muted})
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.Logger.Error(msg, err, nil)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
