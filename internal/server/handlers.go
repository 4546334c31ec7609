package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartlayout/pkg/buildinfo"
	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/config"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/layout"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// ScopeHeader namespaces a client's cache entries.
const ScopeHeader = "X-Cache-Scope"

// CacheHeader reports "hit" or "miss" for the layout stage.
const CacheHeader = "X-Cache"

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	job, opts, err := s.readJob(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runnerFor(r).ComputeWithCacheInfo(r.Context(), job, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, hitOrMiss(hit))
	if err := writeJSON(w, http.StatusOK, res); err != nil {
		s.writeError(w, r, err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	job, opts, err := s.readJob(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runnerFor(r).Execute(r.Context(), job, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(CacheHeader, hitOrMiss(result.CacheInfo.LayoutHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleTicks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := pipeline.TicksRequest{
		First:    q.Get("first"),
		Last:     q.Get("last"),
		Vertical: q.Get("vertical") == "true",
		Spec: ticks.Spec{
			Kind:    q.Get("kind"),
			Periods: config.ParseList(q.Get("periods")),
			Format:  q.Get("format"),
		},
	}
	var err error
	parse := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			*dst, err = strconv.ParseFloat(v, 64)
			if err != nil {
				err = errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name)
			}
		}
	}
	var fh, fw float64
	parse("length", &req.Length)
	parse("font_height", &fh)
	parse("font_width", &fw)
	if v := q.Get("min_chars"); v != "" && err == nil {
		req.Spec.MinChars, err = strconv.Atoi(v)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter min_chars")
		}
	}
	if err == nil && (req.First == "" || req.Last == "") {
		err = errors.New(errors.ErrCodeInvalidInput, "first and last are required")
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Font = layout.FontMetrics{Height: fh, Width: fw}

	res, err := pipeline.GenerateTicks(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, res); err != nil {
		s.writeError(w, r, err)
	}
}

// readJob decodes the request document and the pipeline options from the
// query string.
func (s *Server) readJob(w http.ResponseWriter, r *http.Request) (pipeline.Job, pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	q := r.URL.Query()

	if v := q.Get("env"); v != "" {
		width, height, err := config.ParseSize(v)
		if err != nil {
			return pipeline.Job{}, opts, err
		}
		opts.EnvWidth, opts.EnvHeight = width, height
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pipeline.Job{}, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter scale")
		}
		opts.Scale = scale
	}
	opts.Debug = q.Get("debug") == "true"
	opts.Refresh = q.Get("refresh") == "true"
	opts.Logger = s.requestLogger(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return pipeline.Job{}, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	doc, err := config.Parse(body, documentFormat(r))
	if err != nil {
		return pipeline.Job{}, opts, err
	}
	job, err := doc.Build()
	return job, opts, err
}

// documentFormat reads the document format from the "doc" query
// parameter or the Content-Type, defaulting to JSON.
func documentFormat(r *http.Request) string {
	if f := r.URL.Query().Get("doc"); f != "" {
		return f
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case strings.HasSuffix(mt, "toml"):
		return config.FormatTOML
	case strings.HasSuffix(mt, "yaml"):
		return config.FormatYAML
	}
	return config.FormatJSON
}

// runnerFor scopes cache keys when the client names a scope.
func (s *Server) runnerFor(r *http.Request) *pipeline.Runner {
	scope := strings.TrimSpace(r.Header.Get(ScopeHeader))
	if scope == "" {
		return s.runner
	}
	scoped := *s.runner
	scoped.Keyer = cache.NewScopedKeyer(s.runner.Keyer, "scope:"+scope+":")
	scoped.Logger = s.requestLogger(r.Context())
	return &scoped
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.requestLogger(r.Context()).Error("request failed", "error", err)
		msg = "internal error"
	}
	_ = writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errors.GetCode(err),
		RequestID: RequestID(r.Context()),
	})
}

// writeJSON encodes v before touching the response, so an unencodable
// value leaves w free for an error reply.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode response")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return nil
}
