// Package server exposes the generation pipeline over HTTP.
//
// The API is deliberately small:
//
//	POST /generate  — run the pipeline; body is a pipeline.Options JSON
//	                  document, response carries artifacts base64-encoded
//	GET  /healthz   — liveness probe
//
// Generation is CPU-bound and deterministic, so the server is stateless;
// horizontal scaling only needs a shared artifact cache (see the Redis
// backend in pkg/cache).
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/basegen/pkg/errors"
	"github.com/matzehuels/basegen/pkg/pipeline"
)

// Server handles HTTP generation requests through a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server over the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/generate", s.handleGenerate)
	return r
}

// generateResponse is the envelope for a successful generation.
type generateResponse struct {
	Seed      uint64            `json:"seed"`
	Style     string            `json:"style"`
	Levels    int               `json:"levels"`
	Rooms     int               `json:"rooms"`
	Verts     int               `json:"verts"`
	Faces     int               `json:"faces"`
	Cached    map[string]bool   `json:"cached,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"` // base64 on the wire
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := http.StatusInternalServerError
		code := errors.GetCode(err)
		switch code {
		case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidStyle,
			errors.ErrCodeInvalidLevels, errors.ErrCodeInvalidFormat,
			errors.ErrCodeInvalidOverride:
			status = http.StatusBadRequest
		}
		writeError(w, status, errors.UserMessage(err), string(code))
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Seed:      result.Seed,
		Style:     string(result.Config.Style),
		Levels:    result.Config.NumLevels,
		Rooms:     result.Stats.RoomCount,
		Verts:     result.Stats.VertexCount,
		Faces:     result.Stats.FaceCount,
		Cached:    result.CacheInfo.ArtifactHits,
		Artifacts: result.Artifacts,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger tags each request with a uuid and logs method, path,
// status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-ID", id)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
