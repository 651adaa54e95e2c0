package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/w-h-a/stockist"
	"github.com/w-h-a/stockist/server"
)

const defaultSessionID = "default"

type messageRequest struct {
	Text      string `json:"text"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the assistant over HTTP. Malformed or empty input is
// the only 4xx surface; every processed turn returns 200, apology
// replies included.
type Server struct {
	options   server.Options
	assistant *stockist.Assistant
	srv       *http.Server
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http server listening", "address", s.options.Address)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	// message is an alias for text, consulted only when text is absent
	text := req.Text
	if len(text) == 0 {
		text = req.Message
	}

	if len(strings.TrimSpace(text)) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text input cannot be empty"})
		return
	}

	sessionID := req.SessionID
	if len(strings.TrimSpace(sessionID)) == 0 {
		sessionID = defaultSessionID
	}

	reply := s.assistant.ProcessMessage(r.Context(), sessionID, text)

	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	info, ok := s.assistant.SessionInfo(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSessionClear(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.assistant.ClearSession(id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(context.Background(), "failed to encode response", "error", err)
	}
}

func NewServer(assistant *stockist.Assistant, opts ...server.Option) *Server {
	if assistant == nil {
		panic("assistant is required")
	}

	options := server.NewOptions(opts...)

	s := &Server{
		options:   options,
		assistant: assistant,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/messages", s.handleMessage).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/sessions/{id}", s.handleSessionInfo).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/sessions/{id}", s.handleSessionClear).Methods(http.MethodDelete)

	var handler http.Handler = router
	for i := len(options.Middleware) - 1; i >= 0; i-- {
		handler = options.Middleware[i](handler)
	}

	s.srv = &http.Server{
		Addr:    options.Address,
		Handler: handler,
	}

	return s
}
