// Package server exposes the pipeline over HTTP: a synchronous review
// endpoint that takes a JSON table and returns it with pending rows
// filled in, plus the thin login/registration glue and static UI files.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"callcenter-qa-go/internal/logger"
	"callcenter-qa-go/internal/types"
	"callcenter-qa-go/internal/users"
)

// BatchRunner processes every pending row of a table in place.
type BatchRunner interface {
	Run(ctx context.Context, table *types.BatchTable) error
}

type Server struct {
	runner BatchRunner
	users  *users.Store
	log    *logger.Logger
}

func New(runner BatchRunner, userStore *users.Store, log *logger.Logger) *Server {
	return &Server{runner: runner, users: userStore, log: log}
}

// Handler builds the HTTP mux. staticDir may be empty to disable the UI.
func (s *Server) Handler(staticDir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/register", s.handleRegister)
	mux.HandleFunc("/api/review", s.handleReview)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Info("health check")
	fmt.Fprint(w, "ok")
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "login")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "invalid request body"})
		return
	}
	ok, err := s.users.Authenticate(creds.Username, creds.Password)
	if err != nil {
		reqLog.WithError(err).Error("user store read failed")
		writeJSON(w, http.StatusInternalServerError, authResponse{Success: false, Message: "internal error"})
		return
	}
	if !ok {
		reqLog.WithField("username", creds.Username).Warn("login rejected")
		writeJSON(w, http.StatusUnauthorized, authResponse{Success: false, Message: "Invalid credentials"})
		return
	}
	reqLog.WithField("username", creds.Username).Info("login ok")
	writeJSON(w, http.StatusOK, authResponse{Success: true, Username: creds.Username})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "register")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "invalid request body"})
		return
	}
	if err := s.users.Register(creds.Username, creds.Password); err != nil {
		if errors.Is(err, users.ErrExists) {
			writeJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "Username already exists"})
			return
		}
		reqLog.WithError(err).Error("user store write failed")
		writeJSON(w, http.StatusInternalServerError, authResponse{Success: false, Message: "internal error"})
		return
	}
	reqLog.WithField("username", creds.Username).Info("user registered")
	writeJSON(w, http.StatusOK, authResponse{Success: true, Username: creds.Username})
}

// handleReview takes a JSON array of call records and returns the same
// array with transcription and review filled in for rows that were
// pending. Rows already processed come back byte-for-byte unchanged.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "review")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var records []types.CallRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		reqLog.WithError(err).Warn("bad request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tbl := &types.BatchTable{Records: records}
	reqLog.WithField("rows", len(records)).Info("review batch received")
	if err := s.runner.Run(r.Context(), tbl); err != nil {
		reqLog.WithError(err).Warn("batch run failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, tbl.Records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
