package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flowbox/pkg/buildinfo"
	"github.com/matzehuels/flowbox/pkg/document"
	"github.com/matzehuels/flowbox/pkg/errors"
	"github.com/matzehuels/flowbox/pkg/observability"
	"github.com/matzehuels/flowbox/pkg/pipeline"
	"github.com/matzehuels/flowbox/pkg/render"
)

var contentTypes = map[string]string{
	render.FormatSVG:  "image/svg+xml",
	render.FormatPNG:  "image/png",
	render.FormatPDF:  "application/pdf",
	render.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	render.FormatJSON: "application/json",
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type createLayoutResponse struct {
	ID     string          `json:"id"`
	Layout document.Layout `json:"layout"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := document.ReadDocument(http.MaxBytesReader(w, r.Body, maxBodyBytes), document.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	layout, err := s.runner.Layout(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.store.Save(r.Context(), layout)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, createLayoutResponse{ID: id, Layout: layout})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

// handleRender accepts either a document or a serialized layout. Documents
// are laid out first; layouts are rendered as they are.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	opts.Formats = []string{format}
	opts.Style = q.Get("style")
	opts.LineGuides = q.Has("line_guides")
	opts.Margins = q.Has("margins")
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	var layout document.Layout
	if document.IsLayoutJSON(body) {
		layout, err = document.UnmarshalLayout(body)
	} else {
		var doc document.Document
		if doc, err = document.ReadDocument(bytes.NewReader(body), document.FormatJSON); err == nil {
			layout, err = s.runner.Layout(r.Context(), doc, opts)
		}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// layoutOptions reads constraint overrides from the query string.
func layoutOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		WidthMode:  q.Get("width_mode"),
		HeightMode: q.Get("height_mode"),
		Refresh:    q.Has("refresh"),
	}
	var err error
	if opts.Width, err = intParam(q.Get("width"), "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q.Get("height"), "height"); err != nil {
		return opts, err
	}
	return opts, opts.ValidateForLayout()
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidConstraint, "%s must be an integer: %q", name, v)
	}
	return n, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
