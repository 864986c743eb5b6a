package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porttariff/internal/config"
	"porttariff/internal/generator"
	"porttariff/internal/generator/claude"
	"porttariff/internal/port"
)

func newClaudeTestGenerator(serverURL string) *claude.Generator {
	cfg := &config.ProviderConfig{
		Provider:     "claude",
		APIKey:       "test-claude-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  30,
	}
	return claude.NewGeneratorWithEndpoint(cfg, serverURL)
}

func TestClaudeGenerator_Generate_CodeExecution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-claude-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "code-execution-2025-05-22", r.Header.Get("anthropic-beta"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		assert.Equal(t, float64(16384), reqBody["max_tokens"])
		assert.Equal(t, 0.2, reqBody["temperature"])

		tools := reqBody["tools"].([]interface{})
		assert.Equal(t, "code_execution_20250522", tools[0].(map[string]interface{})["type"])

		messages := reqBody["messages"].([]interface{})
		content := messages[0].(map[string]interface{})["content"].([]interface{})
		require.Len(t, content, 1)
		assert.Equal(t, "calculate dues", content[0].(map[string]interface{})["text"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"content": [
				{"type": "server_tool_use", "input": {"code": "print(2)"}},
				{"type": "code_execution_tool_result", "content": {"stdout": "2\n", "return_code": 0}},
				{"type": "code_execution_tool_result", "content": {"stdout": "", "stderr": "boom", "return_code": 1}},
				{"type": "text", "text": "• **Light Dues:** ZAR 2.00"}
			]
		}`))
	}))
	defer server.Close()

	temperature := 0.2
	g := newClaudeTestGenerator(server.URL)
	resp, err := g.Generate(context.Background(), port.GenerateInput{
		Prompt:  "calculate dues",
		Options: port.GenerateOptions{Temperature: &temperature, CodeExecution: true},
	})

	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "end_turn", resp.Candidates[0].FinishReason)
	assert.Equal(t, []port.Part{
		port.CodePart{Language: "python", Code: "print(2)"},
		port.ExecutionResultPart{Outcome: "OUTCOME_OK", Output: "2\n"},
		port.ExecutionResultPart{Outcome: "OUTCOME_FAILED", Output: "boom"},
		port.TextPart{Text: "• **Light Dues:** ZAR 2.00"},
	}, resp.Candidates[0].Parts)
}

func TestClaudeGenerator_Generate_PDFAttachment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("anthropic-beta"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.NotContains(t, reqBody, "tools")

		content := reqBody["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		require.Len(t, content, 2)
		doc := content[0].(map[string]interface{})
		assert.Equal(t, "document", doc["type"])
		assert.Equal(t, "application/pdf", doc["source"].(map[string]interface{})["media_type"])

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"# Port Dues"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	g := newClaudeTestGenerator(server.URL)
	resp, err := g.Generate(context.Background(), port.GenerateInput{
		Prompt:     "extract rules",
		Attachment: &port.Attachment{Data: []byte("%PDF-"), MimeType: "application/pdf"},
	})

	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", resp.Model)
	assert.Equal(t, []port.Part{port.TextPart{Text: "# Port Dues"}}, resp.Candidates[0].Parts)
}

func TestClaudeGenerator_Generate_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	resp, err := newClaudeTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{Prompt: "x"})

	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestClaudeGenerator_Generate_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newClaudeTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{Prompt: "x"})

	var rlErr *generator.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 15.0, rlErr.RetryAfter.Seconds())
}

func TestClaudeGenerator_Generate_UnsupportedAttachment(t *testing.T) {
	_, err := newClaudeTestGenerator("http://127.0.0.1:0").Generate(context.Background(), port.GenerateInput{
		Prompt:     "x",
		Attachment: &port.Attachment{MimeType: "application/zip"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported attachment content type: application/zip")
}
