package extract

import (
	"log"
	"strings"

	"porttariff/internal/domain"
)

// NameValueBoundary separates a bold due name from its amount: "**Port Dues:** ZAR 1.00".
const NameValueBoundary = ":**"

// nameDecoration is trimmed from both ends of a parsed name.
const nameDecoration = "•*-· \t"

// Lines is the outcome of ParseLines.
type Lines struct {
	Results *domain.ResultSet
	// Unparsed holds lines that carried the boundary but could not be split
	// into exactly one name and one value.
	Unparsed []string
}

// ParseLines reads every "<name>:** <amount>" line in content. Duplicate
// names keep their first position and take the last amount.
func ParseLines(content string) Lines {
	out := Lines{Results: domain.NewResultSet()}
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, NameValueBoundary) {
			continue
		}
		name, value, ok := splitLine(line)
		if !ok {
			log.Printf("extract.ParseLines: skipping unparsable line: %q", line)
			out.Unparsed = append(out.Unparsed, line)
			continue
		}
		out.Results.Set(name, value)
	}
	return out
}

// LookupLine finds the amount for name in content using the same boundary
// rules as ParseLines, preferring an exact name match over a case-insensitive one.
func LookupLine(content, name string) (string, bool) {
	results := ParseLines(content).Results
	if amount, ok := results.Get(name); ok {
		return amount, true
	}
	for _, line := range results.Lines() {
		if strings.EqualFold(line.Name, name) {
			return line.Amount, true
		}
	}
	return "", false
}

func splitLine(line string) (name, value string, ok bool) {
	if strings.Count(line, NameValueBoundary) != 1 {
		return "", "", false
	}
	namePart, valuePart, _ := strings.Cut(line, NameValueBoundary)
	name = strings.Trim(strings.TrimSpace(namePart), nameDecoration)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(valuePart), true
}
