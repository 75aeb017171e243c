package web

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/config"
	"github.com/sant0-9/promptforge/internal/generate"
	"github.com/sant0-9/promptforge/internal/llm/llmtest"
)

func newTestServer(t *testing.T, provider *llmtest.Provider, apiKey string) http.Handler {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.APIKey = apiKey

	srv, err := New(generate.New(cfg, generate.WithProvider(provider)), cfg.Server, nil)
	require.NoError(t, err)
	return srv.Routes()
}

var tokenRe = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

// formRequest fetches the page to obtain a CSRF token and cookie, then
// builds a form POST carrying them
func formRequest(t *testing.T, h http.Handler, form url.Values) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	m := tokenRe.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2, "csrf field not found")
	form.Set("gorilla.csrf.Token", html.UnescapeString(m[1]))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func apiRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetIndex(t *testing.T) {
	h := newTestServer(t, &llmtest.Provider{Reply: llmtest.ValidReply}, "k")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Enhance Prompt")
	assert.Contains(t, body, "gorilla.csrf.Token")
	assert.Contains(t, body, `value="Business"`)
	assert.Contains(t, body, "via Gemini")
	// the form locks its button on the first submit
	assert.Contains(t, body, `id="enhance"`)
	assert.Contains(t, body, "btn.disabled = true")
}

func TestPostIndexRequiresCSRFToken(t *testing.T) {
	provider := &llmtest.Provider{Reply: llmtest.ValidReply}
	h := newTestServer(t, provider, "k")

	form := url.Values{"prompt": {"write a blog post about coffee"}, "mode": {"General"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, provider.Calls())
}

func TestPostIndexRendersResult(t *testing.T) {
	provider := &llmtest.Provider{Reply: llmtest.ValidReply}
	h := newTestServer(t, provider, "k")

	req := formRequest(t, h, url.Values{"prompt": {"write a blog post about coffee"}, "mode": {"coding"}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Optimized Variations")
	assert.Contains(t, body, "The CO-STAR Framework")
	assert.Contains(t, body, `class="score low"`)
	assert.Contains(t, body, `value="Coding" checked`)
	assert.Equal(t, 1, provider.Calls())
	assert.Contains(t, provider.LastRequest().System, "Coding")
}

func TestPostIndexBlankPrompt(t *testing.T) {
	provider := &llmtest.Provider{Reply: llmtest.ValidReply}
	h := newTestServer(t, provider, "k")

	req := formRequest(t, h, url.Values{"prompt": {"   "}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), html.EscapeString(msgEmptyPrompt))
	assert.Equal(t, 0, provider.Calls())
}

func TestPostIndexShowsError(t *testing.T) {
	h := newTestServer(t, &llmtest.Provider{Reply: "not json"}, "k")

	req := formRequest(t, h, url.Values{"prompt": {"hello"}})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `role="alert"`)
	assert.NotContains(t, body, "not json")
	assert.NotContains(t, body, "Optimized Variations")
}

func TestAPIAnalyze(t *testing.T) {
	provider := &llmtest.Provider{Reply: llmtest.ValidReply}
	h := newTestServer(t, provider, "k")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, apiRequest(`{"prompt":"write a blog post about coffee","mode":"Creative"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res analysis.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 35, res.OriginalScore)
	assert.Len(t, res.Suggestions, 3)
	assert.Len(t, res.Variations, 3)
	assert.NoError(t, res.Validate())
	assert.Contains(t, provider.LastRequest().System, "Creative")
}

func TestAPIAnalyzeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		status      int
		errContains string
	}{
		{"empty prompt", `{"prompt":"  "}`, "application/json", http.StatusBadRequest, "enter a prompt"},
		{"unknown mode", `{"prompt":"hi","mode":"Legal"}`, "application/json", http.StatusBadRequest, "unknown mode"},
		{"bad json", `{"prompt":`, "application/json", http.StatusBadRequest, "invalid JSON"},
		{"form body", `prompt=hi`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType, "application/json"},
		{"no content type", `{"prompt":"x","mode":"General"}`, "", http.StatusUnsupportedMediaType, "application/json"},
		{"text plain", `{"prompt":"x","mode":"General"}`, "text/plain", http.StatusUnsupportedMediaType, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &llmtest.Provider{Reply: llmtest.ValidReply}
			h := newTestServer(t, provider, "k")

			req := apiRequest(tt.body)
			req.Header.Set("Content-Type", tt.contentType)
			req.Header.Set("Origin", "https://evil.example")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var out errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
			assert.Contains(t, out.Error, tt.errContains)
			assert.Equal(t, 0, provider.Calls())
		})
	}
}

func TestAPIAnalyzeRejectsCrossSite(t *testing.T) {
	provider := &llmtest.Provider{Reply: llmtest.ValidReply}
	h := newTestServer(t, provider, "k")

	req := apiRequest(`{"prompt":"x"}`)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, provider.Calls())

	req = apiRequest(`{"prompt":"x"}`)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, provider.Calls())
}

func TestAPIAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider *llmtest.Provider
		apiKey   string
		status   int
		want     string
	}{
		{"missing credential", &llmtest.Provider{Reply: llmtest.ValidReply}, "", http.StatusInternalServerError, "API key is not configured"},
		{"provider failure", &llmtest.Provider{Err: errors.New("gemini: quota exceeded")}, "k", http.StatusBadGateway, "gemini: quota exceeded"},
		{"malformed reply", &llmtest.Provider{Reply: "Sure! Here you go"}, "k", http.StatusBadGateway, "could not be read"},
		{"empty reply", &llmtest.Provider{Reply: ""}, "k", http.StatusBadGateway, "No response text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.provider, tt.apiKey)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, apiRequest(`{"prompt":"hello"}`))

			assert.Equal(t, tt.status, rec.Code)
			var out errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
			assert.Contains(t, out.Error, tt.want)
		})
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, &llmtest.Provider{}, "k")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "gemini-3-flash-preview", out["model"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(analysis.ErrEmptyInput))
	assert.Equal(t, http.StatusInternalServerError, statusFor(generate.ErrMissingCredential))
	assert.Equal(t, http.StatusBadGateway, statusFor(&generate.ProviderError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&generate.ParseError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusBadGateway, statusFor(generate.ErrEmptyResponse))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(&generate.ProviderError{Err: context.Canceled}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("other")))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	srv, err := New(generate.New(cfg, generate.WithProvider(&llmtest.Provider{})), cfg.Server, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
