// Package genaisdk implements port.Generator with the official Google GenAI SDK.
package genaisdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"porttariff/internal/config"
	"porttariff/internal/generator"
	"porttariff/internal/port"
)

var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHateSpeech,
	genai.HarmCategoryHarassment,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Generator calls Gemini through the GenAI SDK.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a GenAI SDK generator.
func NewGenerator(cfg *config.ProviderConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.5-pro"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Generate(ctx context.Context, input port.GenerateInput) (*port.RawResponse, error) {
	parts := make([]*genai.Part, 0, 2)
	if input.Attachment != nil {
		parts = append(parts, genai.NewPartFromBytes(input.Attachment.Data, input.Attachment.MimeType))
	}
	parts = append(parts, genai.NewPartFromText(input.Prompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, buildConfig(input.Options))
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return nil, generator.NewRateLimitError("genai", err, 0)
		}
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	return toRawResponse(resp, g.model), nil
}

func buildConfig(opts port.GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: 16384,
	}
	if opts.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*opts.Temperature))
	}
	if opts.CodeExecution {
		cfg.Tools = []*genai.Tool{{CodeExecution: &genai.ToolCodeExecution{}}}
	}
	if opts.SafetyThreshold != "" {
		for _, c := range harmCategories {
			cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
				Category:  c,
				Threshold: genai.HarmBlockThreshold(opts.SafetyThreshold),
			})
		}
	}
	return cfg
}

// toRawResponse converts an SDK response. Nil contents and parts are skipped.
func toRawResponse(resp *genai.GenerateContentResponse, model string) *port.RawResponse {
	out := &port.RawResponse{Model: model}
	if resp == nil {
		return out
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		cand := port.Candidate{FinishReason: string(c.FinishReason)}
		if c.Content != nil {
			for _, p := range c.Content.Parts {
				if part, ok := convertPart(p); ok {
					cand.Parts = append(cand.Parts, part)
				}
			}
		}
		out.Candidates = append(out.Candidates, cand)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.FallbackText = resp.Text()
	}
	return out
}

func convertPart(p *genai.Part) (port.Part, bool) {
	switch {
	case p == nil:
		return nil, false
	case p.ExecutableCode != nil:
		return port.CodePart{Language: string(p.ExecutableCode.Language), Code: p.ExecutableCode.Code}, true
	case p.CodeExecutionResult != nil:
		return port.ExecutionResultPart{Outcome: string(p.CodeExecutionResult.Outcome), Output: p.CodeExecutionResult.Output}, true
	case p.Thought:
		return nil, false
	case p.Text != "":
		return port.TextPart{Text: p.Text}, true
	default:
		return nil, false
	}
}
