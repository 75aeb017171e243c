package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func testSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"score": {Type: TypeInteger, Minimum: FloatPtr(0), Maximum: FloatPtr(100)},
			"tags":  {Type: TypeArray, Items: &Schema{Type: TypeString}, MinItems: IntPtr(3), MaxItems: IntPtr(3)},
		},
		Required: []string{"score", "tags"},
		Order:    []string{"score", "tags"},
	}
}

func TestOpenAISendsJSONSchema(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"gpt-4o-mini","choices":[{"message":{"content":"{\"score\":1}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer srv.Close()

	p := newOpenAICompatible("openai", srv.URL, "sk-test", "gpt-4o-mini", jsonModeSchema)
	resp, err := p.Complete(context.Background(), NewJSONRequest("", "be helpful", "hi", testSchema()))
	require.NoError(t, err)

	assert.Equal(t, `{"score":1}`, resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	format := got["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	schema := format["json_schema"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])

	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "be helpful", messages[0].(map[string]any)["content"])
}

func TestJSONObjectModeSpellsSchemaInPrompt(t *testing.T) {
	p := newOpenAICompatible("groq", "http://unused", "k", "m", jsonModeObject)
	req := p.buildRequest(NewJSONRequest("", "be helpful", "hi", testSchema()))

	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	assert.Nil(t, req.ResponseFormat.JSONSchema)
	assert.Contains(t, req.Messages[0].Content, "be helpful")
	assert.Contains(t, req.Messages[0].Content, `"minItems": 3`)
}

func TestOpenAIStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := newOpenAICompatible("openai", srv.URL, "nope", "gpt-4o-mini", jsonModeSchema)
	_, err := p.Complete(context.Background(), NewJSONRequest("", "", "hi", nil))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "openai error (status 401)")
}

func TestAnthropicFoldsSchemaIntoSystem(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"claude","content":[{"type":"text","text":"{\"a\":"},{"type":"text","text":"1}"}],"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":4}}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", "")
	p.url = srv.URL

	resp, err := p.Complete(context.Background(), NewJSONRequest("", "you analyze prompts", "hi", testSchema()))
	require.NoError(t, err)

	assert.Equal(t, `{"a":1}`, resp.Content)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.True(t, strings.HasPrefix(got.System, "you analyze prompts"))
	assert.Contains(t, got.System, "JSON Schema")
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestOllamaSendsSchemaAsFormat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3.1:8b","message":{"role":"assistant","content":"{}"},"done":true,"done_reason":"stop","prompt_eval_count":2,"eval_count":1}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "")
	resp, err := p.Complete(context.Background(), NewJSONRequest("", "sys", "hi", testSchema()))
	require.NoError(t, err)

	assert.Equal(t, "{}", resp.Content)
	assert.Equal(t, 3, resp.Usage.TotalTokens)
	format, ok := got["format"].(map[string]any)
	require.True(t, ok, "format should carry the schema, got %T", got["format"])
	assert.Equal(t, "object", format["type"])
	assert.Equal(t, false, got["stream"])
}

func TestToGeminiSchema(t *testing.T) {
	out := toGeminiSchema(testSchema())

	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"score", "tags"}, out.PropertyOrdering)
	require.Contains(t, out.Properties, "tags")

	tags := out.Properties["tags"]
	assert.Equal(t, genai.TypeArray, tags.Type)
	assert.Equal(t, genai.TypeString, tags.Items.Type)
	require.NotNil(t, tags.MinItems)
	assert.Equal(t, int64(3), *tags.MinItems)
	assert.Equal(t, int64(3), *tags.MaxItems)

	score := out.Properties["score"]
	assert.Equal(t, genai.TypeInteger, score.Type)
	assert.Equal(t, 100.0, *score.Maximum)

	assert.Nil(t, toGeminiSchema(nil))
}

func TestGeminiConfigRequestsJSON(t *testing.T) {
	cfg := geminiConfig(NewJSONRequest("", "system text", "hi", testSchema()))

	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ResponseSchema)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "system text", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, int32(4096), cfg.MaxOutputTokens)
}
