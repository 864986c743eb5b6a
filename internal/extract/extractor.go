// Package extract turns raw generator responses into structured due amounts.
//
// The pipeline is Extract -> Clean -> ParseLines. Each stage is a pure
// function over strings so it can be tested without a generator.
package extract

import (
	"fmt"
	"strings"

	"porttariff/internal/port"
)

// Mode selects which response parts survive extraction.
type Mode int

const (
	// ModeClean keeps only narrative text.
	ModeClean Mode = iota
	// ModeDebug also keeps code and execution results, wrapped in markers.
	ModeDebug
)

func (m Mode) String() string {
	if m == ModeDebug {
		return "debug"
	}
	return "clean"
}

// ExecutionResultLabel introduces an execution result in debug output.
const ExecutionResultLabel = "**Execution Result:**"

// Extraction is the outcome of Extract. Retry reports that the response held
// nothing usable; Content is empty in that case. Err is set when a processing
// fault was turned into the diagnostic text in Content.
type Extraction struct {
	Content string
	Retry   bool
	Err     error
}

// noContentSentinels are the bare acknowledgements the service sometimes
// returns instead of results.
var noContentSentinels = map[string]struct{}{
	"":     {},
	"none": {},
	"null": {},
}

// IsNoContent reports whether s, trimmed and case-folded, is a null-like sentinel.
func IsNoContent(s string) bool {
	_, ok := noContentSentinels[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Extract concatenates the parts of resp allowed by mode, in candidate and
// part order. It never fails: processing faults are returned as a
// diagnostic string in Content.
func Extract(resp *port.RawResponse, mode Mode) (out Extraction) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			out = Extraction{Content: diagnostic(err, resp), Err: err}
		}
	}()

	if resp == nil {
		return Extraction{Retry: true}
	}

	content, err := collect(resp, mode)
	if err != nil {
		return Extraction{Content: diagnostic(err, resp), Err: err}
	}
	if content == "" {
		content = resp.FallbackText
	}
	if IsNoContent(content) {
		return Extraction{Retry: true}
	}
	return Extraction{Content: content}
}

func collect(resp *port.RawResponse, mode Mode) (string, error) {
	var pieces []string
	for ci, cand := range resp.Candidates {
		for pi, part := range cand.Parts {
			switch p := part.(type) {
			case port.TextPart:
				if p.Text != "" {
					pieces = append(pieces, p.Text)
				}
			case port.CodePart:
				if mode == ModeDebug && p.Code != "" {
					pieces = append(pieces, fmt.Sprintf("\n```%s\n%s\n```", codeLanguage(p.Language), p.Code))
				}
			case port.ExecutionResultPart:
				if mode == ModeDebug && p.Output != "" {
					pieces = append(pieces, fmt.Sprintf("\n%s\n%s", ExecutionResultLabel, p.Output))
				}
			default:
				return "", fmt.Errorf("candidate %d part %d: unsupported part type %T", ci, pi, part)
			}
		}
	}
	return strings.Join(pieces, "\n"), nil
}

func codeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == "language_unspecified" {
		return "python"
	}
	return lang
}

func diagnostic(err error, resp *port.RawResponse) string {
	fallback := ""
	if resp != nil {
		fallback = resp.FallbackText
	}
	return fmt.Sprintf("❌ Error processing response: %v\n\nRaw response: %s", err, fallback)
}
