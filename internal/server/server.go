// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abhisek/snapsolve/internal/extract"
	"github.com/abhisek/snapsolve/internal/pipeline"
	"github.com/abhisek/snapsolve/internal/store"
)

// maxUploadBytes bounds the accepted image size (10 MiB).
const maxUploadBytes = 10 << 20

// Pipeline is the solving surface the server needs.
type Pipeline interface {
	SolveOne(ctx context.Context, img extract.Image, opts pipeline.Options) (*pipeline.ImageResult, error)
	SolveAll(ctx context.Context, img extract.Image, opts pipeline.Options) (*pipeline.ImageResult, error)
	Statistics(ctx context.Context) (*store.Statistics, error)
}

// Server serves the solve endpoints. A nil pipeline answers 503 on
// everything except the health check.
type Server struct {
	pipeline Pipeline
}

// New creates a Server.
func New(p Pipeline) *Server {
	return &Server{pipeline: p}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /solve", s.handleSolve)
	mux.HandleFunc("POST /solveall", s.handleSolveAll)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// ListenAndServe runs the HTTP server until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	s.solve(w, r, func(ctx context.Context, img extract.Image, opts pipeline.Options) (*pipeline.ImageResult, error) {
		return s.pipeline.SolveOne(ctx, img, opts)
	})
}

func (s *Server) handleSolveAll(w http.ResponseWriter, r *http.Request) {
	s.solve(w, r, func(ctx context.Context, img extract.Image, opts pipeline.Options) (*pipeline.ImageResult, error) {
		return s.pipeline.SolveAll(ctx, img, opts)
	})
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, run func(context.Context, extract.Image, pipeline.Options) (*pipeline.ImageResult, error)) {
	if s.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not ready")
		return
	}

	img, err := readImage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := pipeline.Options{
		Verify: r.FormValue("verify") == "true" || r.FormValue("verify") == "1",
	}

	result, err := run(r.Context(), img, opts)
	if err != nil {
		if errors.Is(err, extract.ErrNoQuestions) {
			writeError(w, http.StatusUnprocessableEntity, "no questions found in image")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to solve image")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not ready")
		return
	}

	stats, err := s.pipeline.Statistics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	code := http.StatusOK
	if s.pipeline == nil {
		status = "not ready"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}

// readImage pulls the uploaded image out of the multipart form and
// verifies it is a supported format.
func readImage(r *http.Request) (extract.Image, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return extract.Image{}, fmt.Errorf("invalid multipart form")
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return extract.Image{}, fmt.Errorf("missing image field")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return extract.Image{}, fmt.Errorf("failed to read image")
	}
	if len(data) == 0 {
		return extract.Image{}, fmt.Errorf("empty image")
	}
	if len(data) > maxUploadBytes {
		return extract.Image{}, fmt.Errorf("image too large")
	}

	mime := extract.DetectMIME(data)
	if mime == "" {
		return extract.Image{}, fmt.Errorf("unsupported image format, need JPEG or PNG")
	}

	return extract.Image{Data: data, MIME: mime}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
