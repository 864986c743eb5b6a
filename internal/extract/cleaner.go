package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Every pattern here is RE2, so matching is linear in the input length.
// Constructs RE2 lacks (lookahead) are replaced by small scanners.
var (
	canonicalBulletRe = regexp.MustCompile(`•\s*\*\*[^:\n]+:\*\*\s*[A-Z]{1,3}\s*[\d,]+`)
	fencedCodeRe      = regexp.MustCompile("(?s)```[A-Za-z0-9_+.-]*\n.*?\n```")
	narrativeOpenerRe = regexp.MustCompile(`Answering your|My thinking process|Here are the detailed calculations`)
	finalResultsRe    = regexp.MustCompile(`(?i)(#{1,6})[ \t]*final results?\b[ \t]*:?`)
	salvageRe         = regexp.MustCompile(`\*\*([^:*\n]*(?:Dues?|Cost)[^:*\n]*?):\*\*[^\n]*?([A-Z]{1,3}\s*[\d,]*\d(?:\.\d+)?)`)
	blankRunRe        = regexp.MustCompile(`\n{3,}`)
)

// stripStages run in order before the final-results section is isolated.
var stripStages = []func(string) string{
	stripCodeBlocks,
	stripExecutionResults,
	stripNarrative,
}

// Clean reduces generator output to its final results block. Input that
// already carries canonical bullet lines is returned unchanged, which makes
// Clean idempotent on well-formed output.
func Clean(content string) string {
	if IsCanonical(content) {
		return content
	}

	s := content
	for _, stage := range stripStages {
		s = stage(s)
	}

	if section, ok := isolateFinalResults(s); ok {
		s = section
	} else if salvaged, ok := salvageLines(s); ok {
		s = salvaged
	}

	return collapseBlankLines(s)
}

// IsCanonical reports whether content has at least one
// "• **<name>:** <CUR> <amount>" line.
func IsCanonical(content string) bool {
	return canonicalBulletRe.MatchString(content)
}

// FormatLine renders a canonical bullet result line.
func FormatLine(name, amount string) string {
	return fmt.Sprintf("• **%s:** %s", name, amount)
}

func stripCodeBlocks(s string) string {
	return fencedCodeRe.ReplaceAllString(s, "")
}

// stripExecutionResults removes each execution result label and its body.
// The body ends before the next blank line, before a line starting with an
// upper-case letter or '#', or at end of input.
func stripExecutionResults(s string) string {
	marker := ExecutionResultLabel + "\n"
	if !strings.Contains(s, marker) {
		return s
	}

	var b strings.Builder
	for {
		i := strings.Index(s, marker)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		rest := s[i+len(marker):]
		s = rest[executionResultEnd(rest):]
	}
}

func executionResultEnd(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '\n' {
			continue
		}
		next := s[i+1]
		if next == '\n' || next == '#' || (next >= 'A' && next <= 'Z') {
			return i
		}
	}
	return len(s)
}

// stripNarrative drops filler prose from a known opener up to the next
// "##" heading marker or end of input.
func stripNarrative(s string) string {
	var b strings.Builder
	for {
		loc := narrativeOpenerRe.FindStringIndex(s)
		if loc == nil {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:loc[0]])
		rest := s[loc[1]:]
		end := strings.Index(rest, "##")
		if end < 0 {
			return b.String()
		}
		s = rest[end:]
	}
}

// isolateFinalResults keeps only the "Final Results" heading and its body,
// up to the next heading of equal or higher rank.
func isolateFinalResults(s string) (string, bool) {
	loc := finalResultsRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, false
	}
	level := loc[3] - loc[2]

	end := len(s)
	offset := loc[1]
	for {
		nl := strings.IndexByte(s[offset:], '\n')
		if nl < 0 {
			break
		}
		lineStart := offset + nl + 1
		if lvl := headingLevel(s[lineStart:]); lvl > 0 && lvl <= level {
			end = offset + nl
			break
		}
		offset = lineStart
	}
	return s[loc[0]:end], true
}

// headingLevel returns the rank of a markdown heading line, or 0 when line
// is not a heading. "#1 priority" and "#tag" are not headings.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n > 6 {
		return 0
	}
	if n < len(line) && line[n] != ' ' && line[n] != '\t' && line[n] != '\n' && line[n] != '\r' {
		return 0
	}
	return n
}

// salvageLines rebuilds canonical bullets from any "**<...Due/Cost...>:** ... <amount>"
// fragments found anywhere in s.
func salvageLines(s string) (string, bool) {
	matches := salvageRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return s, false
	}
	var b strings.Builder
	for _, m := range matches {
		b.WriteString(FormatLine(strings.TrimSpace(m[1]), m[2]))
		b.WriteByte('\n')
	}
	return b.String(), true
}

func collapseBlankLines(s string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(s, "\n\n"))
}
