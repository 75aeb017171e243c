package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/generate"
)

const maxBodyBytes = 64 << 10

const msgEmptyPrompt = "Please enter a prompt to analyze."

// PageData is what the index template renders
type PageData struct {
	CSRFField template.HTML
	Provider  string
	Model     string
	Modes     []analysis.Mode
	Mode      analysis.Mode
	Prompt    string
	Result    *analysis.Result
	Error     string
}

// AnalyzeRequest is the JSON body of POST /api/analyze
type AnalyzeRequest struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) page(r *http.Request) *PageData {
	return &PageData{
		CSRFField: csrf.TemplateField(r),
		Provider:  s.gen.ProviderName(),
		Model:     s.gen.Model(),
		Modes:     analysis.Modes,
		Mode:      analysis.ModeGeneral,
	}
}

// GetIndex renders the empty form
func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.page(r))
}

// PostIndex analyzes the submitted form and renders the result or the error
func (s *Server) PostIndex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	data := s.page(r)

	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form data"
		s.render(w, r, http.StatusBadRequest, data)
		return
	}

	data.Prompt = r.FormValue("prompt")
	mode, err := analysis.ParseMode(r.FormValue("mode"))
	if err != nil {
		data.Error = err.Error()
		s.render(w, r, http.StatusBadRequest, data)
		return
	}
	data.Mode = mode

	areq, err := analysis.NewRequest(data.Prompt, mode)
	if err != nil {
		data.Error = msgEmptyPrompt
		s.render(w, r, http.StatusBadRequest, data)
		return
	}

	result, err := s.gen.Generate(r.Context(), areq.RawText, areq.Mode)
	if err != nil {
		s.logFailure(r, err)
		data.Error = generate.Describe(err)
		s.render(w, r, statusFor(err), data)
		return
	}

	data.Result = result
	s.render(w, r, http.StatusOK, data)
}

// PostAPIAnalyze is the JSON variant of PostIndex
func (s *Server) PostAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	// Browsers only send application/json cross-origin after a CORS
	// preflight, which this server never grants
	if r.Header.Get("Sec-Fetch-Site") == "cross-site" {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cross-site requests are not allowed"})
		return
	}
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{Error: "content type must be application/json"})
		return
	}

	var req AnalyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	mode, err := analysis.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	areq, err := analysis.NewRequest(req.Prompt, mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgEmptyPrompt})
		return
	}

	result, err := s.gen.Generate(r.Context(), areq.RawText, areq.Mode)
	if err != nil {
		s.logFailure(r, err)
		writeJSON(w, statusFor(err), errorResponse{Error: generate.Describe(err)})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) GetHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": s.gen.ProviderName(),
		"model":    s.gen.Model(),
	})
}

func (s *Server) csrfFailed(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn("csrf check failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(csrf.FailureReason(r)),
	)
	http.Error(w, "Forbidden - invalid or missing CSRF token", http.StatusForbidden)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data *PageData) {
	// Render to a buffer first so a template error does not send half a page
	buf := &bytes.Buffer{}
	if err := s.tpl.ExecuteTemplate(buf, "index", data); err != nil {
		s.logger.Error("template execution failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) logFailure(r *http.Request, err error) {
	s.logger.Warn("analysis failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
}

// statusFor maps generation errors to HTTP status codes
func statusFor(err error) int {
	var (
		providerErr *generate.ProviderError
		parseErr    *generate.ParseError
	)
	switch {
	case errors.Is(err, analysis.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, generate.ErrConfiguration):
		return http.StatusInternalServerError
	case errors.As(err, &providerErr), errors.As(err, &parseErr), errors.Is(err, generate.ErrEmptyResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
