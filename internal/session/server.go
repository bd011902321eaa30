package session

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"example.com/mastermind/internal/httpapi"
	"example.com/mastermind/internal/mastermind"
)

type Server struct {
	svc   *Service
	authn func(http.Handler) http.Handler
	log   *slog.Logger
}

// NewServer exposes svc over HTTP. authn attaches the caller's user id to the
// request context (see httpapi.OptionalAuth); nil leaves every caller
// anonymous.
func NewServer(svc *Service, authn func(http.Handler) http.Handler, log *slog.Logger) *Server {
	if authn == nil {
		authn = func(h http.Handler) http.Handler { return h }
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, authn: authn, log: log}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/sessions", s.authn(http.HandlerFunc(s.handleCreate)))
	mux.Handle("/api/sessions/", s.authn(http.HandlerFunc(s.handleGet)))
	mux.Handle("/api/solve", s.authn(http.HandlerFunc(s.handleSolve)))
	mux.Handle("/ws/", s.authn(http.HandlerFunc(s.handleWS)))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	var strategy mastermind.Strategy
	if req.Strategy != "" {
		st, err := mastermind.ParseStrategy(req.Strategy)
		if err != nil {
			httpapi.WriteError(w, http.StatusBadRequest, "bad_input", err.Error())
			return
		}
		strategy = st
	}

	userID, _ := httpapi.UserIDFromContext(r.Context())
	sess, err := s.svc.Create(userID, req.Length, strategy)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_input", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, CreateResponse{
		SessionID: sess.ID,
		Length:    sess.Length,
		Strategy:  sess.Strategy,
		WSPath:    "/ws/" + sess.ID,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	id, ok := sessionIDFromPath("/api/sessions/", r.URL.Path)
	if !ok {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid session id")
		return
	}
	sess, ok := s.svc.Get(id)
	if !ok {
		httpapi.WriteError(w, http.StatusNotFound, "not_found", ErrNotFound.Error())
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, sess.state())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	secret, err := mastermind.ParseCombination(req.Secret)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "bad_input", err.Error())
		return
	}
	var strategy mastermind.Strategy
	if req.Strategy != "" {
		if strategy, err = mastermind.ParseStrategy(req.Strategy); err != nil {
			httpapi.WriteError(w, http.StatusBadRequest, "bad_input", err.Error())
			return
		}
	}

	userID, _ := httpapi.UserIDFromContext(r.Context())
	report, err := s.svc.Solve(r.Context(), userID, secret, strategy)
	switch {
	case errors.Is(err, mastermind.ErrInvalidLength):
		httpapi.WriteError(w, http.StatusBadRequest, "bad_input", err.Error())
		return
	case err != nil:
		s.log.Error("solve failed", "secret", secret.String(), "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "solver failed")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, report)
}

// sessionIDFromPath extracts a canonical UUID that must be the only segment
// after prefix.
func sessionIDFromPath(prefix, path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	id, err := uuid.Parse(rest)
	if err != nil || id.String() != rest {
		return "", false
	}
	return rest, true
}
