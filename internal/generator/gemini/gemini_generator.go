package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"porttariff/internal/config"
	"porttariff/internal/generator"
	"porttariff/internal/port"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// harmCategories are the categories a safety threshold is applied to.
var harmCategories = []string{
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Generator implements port.Generator using the Gemini REST API.
type Generator struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewGenerator creates a Gemini-backed generator.
func NewGenerator(cfg *config.ProviderConfig) *Generator {
	return newGenerator(cfg, "")
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom API endpoint (for testing).
func NewGeneratorWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Generator {
	return newGenerator(cfg, endpoint)
}

func newGenerator(cfg *config.ProviderConfig, endpoint string) *Generator {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.5-pro"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	if endpoint == "" {
		base := apiBaseURL
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/")
		}
		endpoint = fmt.Sprintf("%s/%s:generateContent", base, model)
	}
	return &Generator{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *Generator) Generate(ctx context.Context, input port.GenerateInput) (*port.RawResponse, error) {
	parts := make([]map[string]interface{}, 0, 2)
	if input.Attachment != nil {
		mimeType, err := toGeminiMimeType(input.Attachment.MimeType)
		if err != nil {
			return nil, err
		}
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(input.Attachment.Data),
			},
		})
	}
	parts = append(parts, map[string]interface{}{"text": input.Prompt})

	genConfig := map[string]interface{}{
		"maxOutputTokens": 16384,
	}
	if input.Options.Temperature != nil {
		genConfig["temperature"] = *input.Options.Temperature
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": genConfig,
	}
	if input.Options.CodeExecution {
		reqBody["tools"] = []map[string]interface{}{
			{"code_execution": map[string]interface{}{}},
		}
	}
	if input.Options.SafetyThreshold != "" {
		settings := make([]map[string]interface{}, 0, len(harmCategories))
		for _, c := range harmCategories {
			settings = append(settings, map[string]interface{}{
				"category":  c,
				"threshold": input.Options.SafetyThreshold,
			})
		}
		reqBody["safetySettings"] = settings
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
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, generator.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := generator.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, generator.NewRateLimitError("gemini", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, g.model)
}

func toGeminiMimeType(contentType string) (string, error) {
	switch contentType {
	case "application/pdf", "image/jpeg", "image/png":
		return contentType, nil
	default:
		return "", fmt.Errorf("unsupported attachment content type: %s", contentType)
	}
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	ModelVersion string `json:"modelVersion"`
}

type geminiPart struct {
	Text           string `json:"text"`
	Thought        bool   `json:"thought"`
	ExecutableCode *struct {
		Language string `json:"language"`
		Code     string `json:"code"`
	} `json:"executableCode"`
	CodeExecutionResult *struct {
		Outcome string `json:"outcome"`
		Output  string `json:"output"`
	} `json:"codeExecutionResult"`
}

func parseResponse(body []byte, model string) (*port.RawResponse, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	out := &port.RawResponse{Model: model}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	for _, c := range resp.Candidates {
		cand := port.Candidate{FinishReason: c.FinishReason}
		for _, p := range c.Content.Parts {
			switch {
			case p.ExecutableCode != nil:
				cand.Parts = append(cand.Parts, port.CodePart{Language: p.ExecutableCode.Language, Code: p.ExecutableCode.Code})
			case p.CodeExecutionResult != nil:
				cand.Parts = append(cand.Parts, port.ExecutionResultPart{Outcome: p.CodeExecutionResult.Outcome, Output: p.CodeExecutionResult.Output})
			case p.Thought:
				// thinking summaries are not part of the answer
			case p.Text != "":
				cand.Parts = append(cand.Parts, port.TextPart{Text: p.Text})
			}
		}
		out.Candidates = append(out.Candidates, cand)
	}
	return out, nil
}
