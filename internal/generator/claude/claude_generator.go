package claude

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"porttariff/internal/config"
	"porttariff/internal/generator"
	"porttariff/internal/port"
)

const (
	apiURL            = "https://api.anthropic.com/v1/messages"
	apiVersion        = "2023-06-01"
	codeExecutionBeta = "code-execution-2025-05-22"
	codeExecutionTool = "code_execution_20250522"
)

// Generator implements port.Generator using the Anthropic Messages API.
// Safety thresholds have no Anthropic equivalent and are ignored.
type Generator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGenerator creates a Claude-backed generator from a provider config.
func NewGenerator(cfg *config.ProviderConfig) *Generator {
	endpoint := apiURL
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
	}
	return newGenerator(cfg, endpoint)
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom API endpoint (for testing).
func NewGeneratorWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Generator {
	return newGenerator(cfg, endpoint)
}

func newGenerator(cfg *config.ProviderConfig, endpoint string) *Generator {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	return &Generator{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *Generator) Generate(ctx context.Context, input port.GenerateInput) (*port.RawResponse, error) {
	contentBlocks, err := buildContentBlocks(input)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	reqBody := map[string]interface{}{
		"model":      g.model,
		"max_tokens": 16384,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
	}
	if input.Options.Temperature != nil {
		reqBody["temperature"] = *input.Options.Temperature
	}
	if input.Options.CodeExecution {
		reqBody["tools"] = []map[string]interface{}{
			{"type": codeExecutionTool, "name": "code_execution"},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	if input.Options.CodeExecution {
		req.Header.Set("anthropic-beta", codeExecutionBeta)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, generator.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := generator.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, generator.NewRateLimitError("claude", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, g.model)
}

func buildContentBlocks(input port.GenerateInput) ([]map[string]interface{}, error) {
	var blocks []map[string]interface{}

	if a := input.Attachment; a != nil {
		encoded := base64.StdEncoding.EncodeToString(a.Data)
		switch a.MimeType {
		case "application/pdf":
			blocks = append(blocks, map[string]interface{}{
				"type": "document",
				"source": map[string]interface{}{
					"type":       "base64",
					"media_type": "application/pdf",
					"data":       encoded,
				},
			})
		case "image/jpeg", "image/png":
			blocks = append(blocks, map[string]interface{}{
				"type": "image",
				"source": map[string]interface{}{
					"type":       "base64",
					"media_type": a.MimeType,
					"data":       encoded,
				},
			})
		default:
			return nil, fmt.Errorf("unsupported attachment content type: %s", a.MimeType)
		}
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "text",
		"text": input.Prompt,
	})

	return blocks, nil
}

// apiResponse models the Anthropic Messages API response, including the
// server-side code execution tool blocks.
type apiResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type  string `json:"type"`
		Text  string `json:"text"`
		Input struct {
			Code string `json:"code"`
		} `json:"input"`
		Content struct {
			Stdout     string `json:"stdout"`
			Stderr     string `json:"stderr"`
			ReturnCode int    `json:"return_code"`
		} `json:"content"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, model string) (*port.RawResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if resp.StopReason == "max_tokens" {
		log.Printf("claude.Generator: output truncated (stop_reason: max_tokens)")
	}

	cand := port.Candidate{FinishReason: resp.StopReason}
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			cand.Parts = append(cand.Parts, port.TextPart{Text: block.Text})
		case "server_tool_use":
			cand.Parts = append(cand.Parts, port.CodePart{Language: "python", Code: block.Input.Code})
		case "code_execution_tool_result":
			outcome := "OUTCOME_OK"
			output := block.Content.Stdout
			if block.Content.ReturnCode != 0 {
				outcome = "OUTCOME_FAILED"
				output += block.Content.Stderr
			}
			cand.Parts = append(cand.Parts, port.ExecutionResultPart{Outcome: outcome, Output: output})
		}
	}

	out := &port.RawResponse{Model: model}
	if resp.Model != "" {
		out.Model = resp.Model
	}
	if len(cand.Parts) > 0 || cand.FinishReason != "" {
		out.Candidates = []port.Candidate{cand}
	}
	return out, nil
}
