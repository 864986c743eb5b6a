package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"porttariff/internal/domain"
	"porttariff/internal/dues"
	"porttariff/internal/extract"
	"porttariff/internal/generator"
	"porttariff/internal/port"
)

const (
	placeholderAmount = "Unable to calculate at this time. Please try 'calculate all'."
	maxLoggedResponse = 500
)

// CalculateInput is the DTO for one calculation request.
type CalculateInput struct {
	VesselInfo    string
	RequestedDues []string
	Debug         bool
}

// Resolution is the outcome of resolving a free-text due request. When
// Matched is false, Message explains why and lists the catalog.
type Resolution struct {
	Dues    []domain.DueType
	Matched bool
	Message string
}

// CalculatorService turns vessel particulars into due amounts.
type CalculatorService interface {
	Calculate(ctx context.Context, input *CalculateInput) (*domain.ResultSet, error)
	CalculateText(ctx context.Context, vesselInfo string, dueNames []string, debug bool) (string, error)
	ResolveRequest(text string) Resolution
}

// CalculatorConfig holds the generation options used for calculations.
type CalculatorConfig struct {
	Temperature     float64
	SafetyThreshold string
	Debug           bool
}

type calculatorService struct {
	gen     port.Generator
	rules   RulesService
	catalog []domain.DueType
	cfg     CalculatorConfig
}

// NewCalculatorService creates a new CalculatorService over the default catalog.
func NewCalculatorService(gen port.Generator, rules RulesService, cfg CalculatorConfig) CalculatorService {
	return &calculatorService{
		gen:     gen,
		rules:   rules,
		catalog: domain.Catalog(),
		cfg:     cfg,
	}
}

// Calculate runs a calculation and parses the result lines. An empty due
// list means the whole catalog.
func (s *calculatorService) Calculate(ctx context.Context, input *CalculateInput) (*domain.ResultSet, error) {
	if input == nil || strings.TrimSpace(input.VesselInfo) == "" {
		return nil, domain.ErrInvalidVesselInfo
	}

	dueNames := normalizeDueNames(input.RequestedDues)
	if len(dueNames) == 0 {
		dueNames = domain.DueNames(s.catalog)
	}

	text, err := s.CalculateText(ctx, input.VesselInfo, dueNames, input.Debug)
	if err != nil {
		return nil, err
	}

	lines := extract.ParseLines(text)
	if lines.Results.Len() == 0 {
		log.Printf("calculatorService.Calculate: no result lines in response: %s",
			generator.Truncate(text, maxLoggedResponse))
		return nil, domain.ErrEmptyResult
	}
	if len(lines.Unparsed) > 0 {
		log.Printf("calculatorService.Calculate: %d lines could not be parsed", len(lines.Unparsed))
	}
	return lines.Results, nil
}

// CalculateText runs the primary attempt and, when a single requested due
// came back empty, one fallback pass over the whole catalog. Processing
// faults are reported as text; only rules and generator failures are errors.
func (s *calculatorService) CalculateText(
	ctx context.Context,
	vesselInfo string,
	dueNames []string,
	debug bool,
) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("calculatorService.CalculateText: recovered: %v", r)
			text, err = fmt.Sprintf("❌ Error calculating dues: %v", r), nil
		}
	}()

	rules, err := s.rules.Rules(ctx)
	if err != nil {
		return "", err
	}

	mode := extract.ModeClean
	if debug || s.cfg.Debug {
		mode = extract.ModeDebug
	}

	out, err := s.attempt(ctx, rules, vesselInfo, dueNames, mode)
	if err != nil {
		return "", err
	}
	if !out.Retry {
		return out.Content, nil
	}

	log.Printf("calculatorService.CalculateText: no usable content for %v", dueNames)
	if len(dueNames) == 1 {
		if line, ok := s.fallback(ctx, rules, vesselInfo, dueNames[0], mode); ok {
			return line, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return placeholders(dueNames), nil
}

// ResolveRequest maps a chat command such as "calculate pilotage" to dues.
func (s *calculatorService) ResolveRequest(text string) Resolution {
	req := dues.ParseCommand(text)
	if req.All {
		return Resolution{Dues: append([]domain.DueType(nil), s.catalog...), Matched: true}
	}
	if req.Text == "" {
		return Resolution{
			Message: "❌ Please specify which dues to calculate or use 'calculate all'",
		}
	}

	matched := dues.Resolve(req.Text, s.catalog)
	if len(matched) == 0 {
		return Resolution{
			Message: fmt.Sprintf("❌ No matching dues found for '%s'. %s", req.Text, dues.Describe(s.catalog)),
		}
	}
	return Resolution{Dues: matched, Matched: true}
}

// attempt is one generator round trip. Retry is set when nothing usable
// survived extraction or cleaning.
func (s *calculatorService) attempt(
	ctx context.Context,
	rules, vesselInfo string,
	dueNames []string,
	mode extract.Mode,
) (extract.Extraction, error) {
	temperature := s.cfg.Temperature
	resp, err := s.gen.Generate(ctx, port.GenerateInput{
		Prompt: generator.BuildCalculateDuesPrompt(rules, vesselInfo, dueNames),
		Options: port.GenerateOptions{
			Temperature:     &temperature,
			CodeExecution:   true,
			SafetyThreshold: s.cfg.SafetyThreshold,
		},
	})
	if err != nil {
		return extract.Extraction{}, fmt.Errorf("%w: %w", domain.ErrGeneratorUnavailable, err)
	}

	out := extract.Extract(resp, mode)
	if out.Retry || out.Err != nil || mode == extract.ModeDebug {
		return out, nil
	}

	cleaned := extract.Clean(out.Content)
	if extract.IsNoContent(cleaned) {
		return extract.Extraction{Retry: true}, nil
	}
	return extract.Extraction{Content: cleaned}, nil
}

// fallback recalculates the whole catalog and picks the one due out of it.
func (s *calculatorService) fallback(
	ctx context.Context,
	rules, vesselInfo, dueName string,
	mode extract.Mode,
) (string, bool) {
	log.Printf("calculatorService.fallback: retrying %q via full catalog", dueName)

	out, err := s.attempt(ctx, rules, vesselInfo, domain.DueNames(s.catalog), mode)
	if err != nil {
		log.Printf("calculatorService.fallback: %v", err)
		return "", false
	}
	if out.Retry {
		return "", false
	}

	amount, ok := extract.LookupLine(out.Content, dueName)
	if !ok {
		log.Printf("calculatorService.fallback: %q not found in full calculation", dueName)
		return "", false
	}
	return extract.FormatLine(dueName, amount), true
}

func placeholders(dueNames []string) string {
	lines := make([]string, 0, len(dueNames))
	for _, name := range dueNames {
		lines = append(lines, extract.FormatLine(name, placeholderAmount))
	}
	return strings.Join(lines, "\n")
}

func normalizeDueNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
