package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"avaro.dev/internal/catalog"
	"avaro.dev/internal/middleware"
	"avaro.dev/internal/render"
	"avaro.dev/internal/ui"
)

// PageHandler serves the server-rendered page
type PageHandler struct {
	catalog  *catalog.Catalog
	renderer *render.Renderer
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(c *catalog.Catalog, r *render.Renderer) *PageHandler {
	return &PageHandler{catalog: c, renderer: r}
}

// Index handles GET /. The page is always rendered Idle; the live session
// takes over once the browser connects.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	root := ui.NewRoot(h.catalog, nil)

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, root.View()); err != nil {
		h.renderError(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

// Overlay handles GET /overlays/{id}. The id may carry the ".html" suffix
// the static export writes, so the page script fetches the same relative
// URL either way.
func (h *PageHandler) Overlay(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(chi.URLParam(r, "id"), ".html")

	p, err := h.catalog.Project(id)
	if errors.Is(err, catalog.ErrProjectNotFound) {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	var buf bytes.Buffer
	ov := ui.NewOverlay(p, h.catalog.Accent(p.ID), nil, nil)
	if err := h.renderer.Overlay(&buf, ov.View()); err != nil {
		h.renderError(w, r, err)
		return
	}
	writeHTML(w, &buf)
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.Log(r.Context()).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("Failed to render page")
	respondError(w, http.StatusInternalServerError, "Failed to render page")
}

func writeHTML(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
