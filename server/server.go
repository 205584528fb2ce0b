// Package server exposes card generation over HTTP.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ByLCY/newscard/card"
	"github.com/ByLCY/newscard/layout"
)

// formFields maps the HTML form names to card roles.
var formFields = []struct {
	name string
	role layout.Role
}{
	{"tag_line", layout.RoleHeadline},
	{"after_tag", layout.RoleSubhead},
	{"main_content", layout.RoleBody},
	{"company_name", layout.RoleBrand},
	{"side_note", layout.RoleAnnotation},
	{"first_caption", layout.RoleCaption1},
	{"second_caption", layout.RoleCaption2},
	{"big_question", layout.RoleQuestion},
}

// Server serves the form, a health check and the generate endpoint.
type Server struct {
	gen    *card.Generator
	logger *log.Logger
	router chi.Router
}

// New wires routes for gen.
func New(gen *card.Generator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{gen: gen, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/generate", s.handleGenerate)
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// requestLogger attaches a logger tagged with a fresh request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		l := s.logger.With("request_id", id)
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey, l)))
		l.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func loggerFrom(r *http.Request) *log.Logger {
	if l, ok := r.Context().Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	loggerFrom(r).Info("health check route accessed")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := s.gen.Config()
	type field struct {
		Name  string
		Label string
		Limit int
		Long  bool
	}
	fields := make([]field, 0, len(formFields))
	for _, f := range formFields {
		fields = append(fields, field{
			Name:  f.name,
			Label: string(f.role),
			Limit: cfg.Limits[f.role],
			Long:  f.role == layout.RoleBody || f.role == layout.RoleCaption1 || f.role == layout.RoleCaption2,
		})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct {
		Preset string
		Fields []field
	}{cfg.Name, fields}); err != nil {
		loggerFrom(r).Error("render index", "err", err)
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	l := loggerFrom(r)
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		l.Error("parse form", "err", err)
		http.Error(w, "Error generating image", http.StatusBadRequest)
		return
	}
	var fields layout.Fields
	for _, f := range formFields {
		fields.Set(f.role, r.FormValue(f.name))
	}
	fields = fields.Normalize(s.gen.Config())

	c, err := s.gen.Generate(fields)
	if err != nil {
		l.Error("error generating image", "err", err)
		http.Error(w, "Error generating image", http.StatusInternalServerError)
		return
	}
	if c.LogoErr != nil {
		l.Error("error adding logo", "err", c.LogoErr)
	}
	l.Info("card generated", "preset", c.Plan.Preset, "compressed", c.Plan.Compressed, "anchored", c.Plan.Anchored, "bytes", len(c.PNG))
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(c.PNG)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>newscard</title></head>
<body>
<h1>newscard <small>{{.Preset}}</small></h1>
<form method="post" action="/generate">
{{range .Fields}}<p><label>{{.Label}}<br>
{{if .Long}}<textarea name="{{.Name}}"{{if .Limit}} maxlength="{{.Limit}}"{{end}} rows="4" cols="60"></textarea>{{else}}<input name="{{.Name}}"{{if .Limit}} maxlength="{{.Limit}}"{{end}} size="60">{{end}}
</label></p>
{{end}}<button type="submit">Generate</button>
</form>
</body>
</html>
`))
