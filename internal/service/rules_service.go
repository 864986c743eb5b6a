package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"porttariff/internal/domain"
	"porttariff/internal/extract"
	"porttariff/internal/generator"
	"porttariff/internal/port"
)

const rulesFlightKey = "rules"

// RulesService holds the rules document distilled from the tariff PDF.
// The document is loaded once and read many times.
type RulesService interface {
	Rules(ctx context.Context) (string, error)
	Extract(ctx context.Context, dues []string) (string, error)
	Loaded() bool
}

// RulesServiceConfig tunes rules extraction.
type RulesServiceConfig struct {
	SafetyThreshold string
}

type rulesService struct {
	store    port.RulesStore
	document port.DocumentSource
	gen      port.Generator
	cfg      RulesServiceConfig

	mu     sync.RWMutex
	rules  string
	loaded bool
	group  singleflight.Group
}

// NewRulesService creates a new RulesService.
func NewRulesService(
	store port.RulesStore,
	document port.DocumentSource,
	gen port.Generator,
	cfg RulesServiceConfig,
) RulesService {
	return &rulesService{
		store:    store,
		document: document,
		gen:      gen,
		cfg:      cfg,
	}
}

// Rules returns the cached rules, loading them from the store or extracting
// them from the tariff document on first use. Concurrent first callers share
// one load, which outlives the cancellation of any single caller.
func (s *rulesService) Rules(ctx context.Context) (string, error) {
	if rules, ok := s.cached(); ok {
		return rules, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(rulesFlightKey, func() (interface{}, error) {
		return s.load(flightCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			log.Printf("rulesService.Rules: joined in-flight rules load")
		}
		return res.Val.(string), nil
	}
}

func (s *rulesService) load(ctx context.Context) (string, error) {
	if rules, ok := s.cached(); ok {
		return rules, nil
	}

	rules, err := s.store.Load(ctx)
	if err == nil && strings.TrimSpace(rules) != "" {
		log.Printf("rulesService.Rules: using stored rules (%d bytes)", len(rules))
		s.remember(rules)
		return rules, nil
	}
	if err != nil && !errors.Is(err, domain.ErrRulesNotFound) {
		return "", fmt.Errorf("%w: loading stored rules: %w", domain.ErrRulesUnavailable, err)
	}

	log.Printf("rulesService.Rules: no stored rules, extracting from tariff document")
	return s.extract(ctx, domain.CatalogNames())
}

// Extract runs a fresh extraction for dues, persists it and returns it. The
// in-memory document is only populated if nothing was cached yet.
func (s *rulesService) Extract(ctx context.Context, dues []string) (string, error) {
	if len(dues) == 0 {
		dues = domain.CatalogNames()
	}
	return s.extract(ctx, dues)
}

func (s *rulesService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *rulesService) extract(ctx context.Context, dues []string) (string, error) {
	attachment, err := s.document.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRulesUnavailable, err)
	}

	resp, err := s.gen.Generate(ctx, port.GenerateInput{
		Prompt:     generator.BuildExtractRulesPrompt(dues),
		Attachment: attachment,
		Options: port.GenerateOptions{
			CodeExecution:   false,
			SafetyThreshold: s.cfg.SafetyThreshold,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: extracting rules: %w", domain.ErrGeneratorUnavailable, err)
	}

	out := extract.Extract(resp, extract.ModeDebug)
	if out.Err != nil {
		return "", fmt.Errorf("%w: processing extraction response: %w", domain.ErrRulesUnavailable, out.Err)
	}
	if out.Retry {
		return "", fmt.Errorf("%w: generator returned no rules text", domain.ErrRulesUnavailable)
	}

	if err := s.store.Save(ctx, out.Content); err != nil {
		// The extracted text is still good for this process.
		log.Printf("rulesService.extract: failed to persist rules: %v", err)
	} else {
		log.Printf("rulesService.extract: saved rules for %d dues (%d bytes)", len(dues), len(out.Content))
	}

	s.remember(out.Content)
	return out.Content, nil
}

func (s *rulesService) cached() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules, s.loaded
}

// remember caches rules unless a document is already cached.
func (s *rulesService) remember(rules string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.rules = rules
		s.loaded = true
	}
}
