// Package preview implements the local template-preview API using chi.
// It re-reads the template file on every request so an editor loop
// (save, refresh) needs no server restart.
package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/voss/kohl/internal/models"
	"github.com/voss/kohl/internal/render"
	"github.com/voss/kohl/internal/template"
)

// Handler serves template preview and validation.
type Handler struct {
	templatePath string
	commentStyle models.CommentStyle
	maxGap       int
	cache        template.PipelineCache
	logger       *slog.Logger
}

// NewHandler wires the preview endpoints to the configured template.
func NewHandler(templatePath string, commentStyle models.CommentStyle, maxGap int, cache template.PipelineCache, logger *slog.Logger) *Handler {
	return &Handler{
		templatePath: templatePath,
		commentStyle: commentStyle,
		maxGap:       maxGap,
		cache:        cache,
		logger:       logger,
	}
}

// NewRouter creates a chi router with the preview routes mounted.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/render", h.Render)
	r.Get("/validate", h.Validate)
	r.Get("/keys", h.Keys)
	return r
}

// renderResponse is the body of GET /render.
type renderResponse struct {
	Markdown string `json:"markdown"`
}

// keysResponse is the body of GET /keys.
type keysResponse struct {
	Variables []string `json:"variables"`
	Filters   []string `json:"filters"`
}

// Render renders the configured template against sample annotations.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	src, err := os.ReadFile(h.templatePath)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("template not readable: "+err.Error()))
		return
	}
	tmpl := template.Compile(string(src), template.WithCache(h.cache))
	renderer := render.NewRenderer(tmpl, h.commentStyle, h.maxGap)
	writeJSON(w, http.StatusOK, renderResponse{Markdown: renderer.RenderAnnotations(SampleAnnotations())})
}

// Validate reports the validator findings for the configured template.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	src, err := os.ReadFile(h.templatePath)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("template not readable: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, template.Validate(string(src)))
}

// Keys lists the variables and filters templates may reference.
func (h *Handler) Keys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, keysResponse{
		Variables: template.DataKeys(),
		Filters:   template.FilterNames(),
	})
}

// SampleAnnotations is the fixture every preview render uses, covering
// chapters, merged neighbours, notes, and decorations.
func SampleAnnotations() []models.Annotation {
	return []models.Annotation{
		{
			Text:     "The first highlight of the opening chapter.",
			Chapter:  "Chapter One",
			PageNo:   12,
			Datetime: "2024-03-09 21:14:05",
			Color:    "yellow",
		},
		{
			Text:     "A second highlight on the same page, merged with the first.",
			Chapter:  "Chapter One",
			PageNo:   12,
			Datetime: "2024-03-09 21:15:41",
			Color:    "yellow",
		},
		{
			Text:     "An annotated highlight a few pages on.",
			Note:     "Worth re-reading.",
			Chapter:  "Chapter One",
			PageNo:   15,
			Datetime: "2024-03-09 21:30:12",
			Color:    "green",
		},
		{
			Text:     "A struck-out passage from the next chapter.",
			Chapter:  "Chapter Two",
			PageNo:   31,
			Datetime: "2024-03-10 08:02:55",
			Drawer:   "strikeout",
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
