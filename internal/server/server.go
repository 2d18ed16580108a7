// Package server exposes the analyzer over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/botirk38/argmap"
	"github.com/botirk38/argmap/chunker"
	"github.com/botirk38/argmap/internal/history"
)

const (
	maxJSONBody  = 4 << 20
	maxAudioBody = 100 << 20

	defaultTermCount = 10
)

// RunStore persists pipeline results. *history.Store satisfies it.
type RunStore interface {
	Save(ctx context.Context, run *history.Run) error
	Get(ctx context.Context, id string) (*history.Run, error)
	List(ctx context.Context, limit int) ([]*history.Run, error)
	Delete(ctx context.Context, id string) error
}

// Server serves the argmap HTTP API.
type Server struct {
	analyzer *argmap.Analyzer
	store    RunStore
	logger   *slog.Logger
	mux      *http.ServeMux
}

// New builds a Server. store and logger may be nil; without a store the
// history endpoints answer 404 and runs are not persisted.
func New(analyzer *argmap.Analyzer, store RunStore, logger *slog.Logger) (*Server, error) {
	if analyzer == nil {
		return nil, errors.New("analyzer cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		analyzer: analyzer,
		store:    store,
		logger:   logger.With("component", "api-server"),
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/compare", s.handleCompare)
	s.mux.HandleFunc("POST /api/coverage", s.handleCoverage)
	s.mux.HandleFunc("POST /api/process", s.handleProcess)
	s.mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	s.mux.HandleFunc("GET /api/history", s.handleHistoryList)
	s.mux.HandleFunc("GET /api/history/{id}", s.handleHistoryGet)
	s.mux.HandleFunc("DELETE /api/history/{id}", s.handleHistoryDelete)
	return s, nil
}

// Handler returns the HTTP handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Full pipeline runs make several sequential model calls.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	s.logger.Info("api server listening", "address", listener.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": s.analyzer.Provider().Name(),
	})
}

type compareRequest struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2"`
	Terms int    `json:"terms"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Terms <= 0 {
		req.Terms = defaultTermCount
	}
	s.writeJSON(w, http.StatusOK, argmap.Explain(req.Text1, req.Text2, req.Terms))
}

type coverageRequest struct {
	Transcript string `json:"transcript"`
	Diagram    string `json:"diagram"`
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	var req coverageRequest
	if !s.decode(w, r, &req) {
		return
	}
	scores, err := s.analyzer.Coverage(r.Context(), req.Transcript, req.Diagram)
	if err != nil {
		s.fail(w, "coverage", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"chunks": scores})
}

type processRequest struct {
	Transcript string `json:"transcript"`
}

type processResponse struct {
	ID string `json:"id,omitempty"`
	*argmap.Result
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.analyzer.Process(r.Context(), req.Transcript)
	if err != nil {
		s.fail(w, "process", err)
		return
	}

	resp := processResponse{Result: res}
	if s.store != nil {
		run := history.FromResult(res)
		if err := s.store.Save(r.Context(), run); err != nil {
			s.logger.Warn("failed to save run", "error", err)
		} else {
			resp.ID = run.ID
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAudioBody))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "Audio too large")
		return
	}
	text, err := s.analyzer.Transcribe(r.Context(), audio)
	switch {
	case errors.Is(err, argmap.ErrNoTranscriber):
		s.writeError(w, http.StatusNotImplemented, "Transcription is not configured")
	case errors.Is(err, argmap.ErrEmptyAudio):
		s.writeError(w, http.StatusBadRequest, "Empty audio")
	case err != nil:
		s.fail(w, "transcribe", err)
	default:
		s.writeJSON(w, http.StatusOK, map[string]string{"text": text})
	}
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "History is disabled")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.internalError(w, "history list", err)
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "History is disabled")
		return
	}
	run, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		s.internalError(w, "history get", err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "History is disabled")
		return
	}
	err := s.store.Delete(r.Context(), r.PathValue("id"))
	if errors.Is(err, history.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		s.internalError(w, "history delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v and answers 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// clientErrors are rejected inputs. Their messages are safe to return.
var clientErrors = []error{
	argmap.ErrEmptyTranscript,
	argmap.ErrEmptyDiagram,
	argmap.ErrEmptyInstruction,
	argmap.ErrEmptyAudio,
	argmap.ErrPromptTooLong,
	chunker.ErrTextTooLong,
}

// fail answers a rejected input with 400 and anything else with a generic 500.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			s.logger.Debug("request rejected", "op", op, "error", err)
			s.writeError(w, http.StatusBadRequest, target.Error())
			return
		}
	}
	s.internalError(w, op, err)
}

// internalError logs err and answers with a generic 500 so provider details
// never reach the client.
func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", "op", op, "error", err)
	s.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
