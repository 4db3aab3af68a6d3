// Package httpapi exposes the evaluation service over HTTP. Handlers
// are thin: validate, call ports, shape the response.
package httpapi

import (
	"net/http"

	"design-eval/internal/application/port/input"
	"design-eval/internal/application/port/output"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/gorilla/handlers"
)

type Server struct {
	capture   output.CapturePort
	evaluator input.DesignEvaluator
	storage   output.StoragePort
	sheets    output.SheetLogPort
	report    output.ReportPort
	logger    output.LoggerPort
}

func NewServer(
	capture output.CapturePort,
	evaluator input.DesignEvaluator,
	storage output.StoragePort,
	sheets output.SheetLogPort,
	report output.ReportPort,
	logger output.LoggerPort,
) *Server {
	return &Server{
		capture:   capture,
		evaluator: evaluator,
		storage:   storage,
		sheets:    sheets,
		report:    report,
		logger:    logger,
	}
}

// Router wires the chi mux with request logging and permissive CORS.
// The service is meant to sit behind a browser extension or dashboard,
// so any origin may call it.
func (s *Server) Router() http.Handler {
	requestLogger := httplog.NewLogger("design-eval", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httplog.RequestLogger(requestLogger))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/evaluations", s.handleEvaluations)
	r.Get("/sheets-url", s.handleSheetsURL)
	r.Post("/evaluate", s.handleEvaluate)
	r.Post("/report", s.handleReport)
	r.Post("/upload-screenshot", s.handleUploadScreenshot)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)
}
