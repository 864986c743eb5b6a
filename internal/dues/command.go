package dues

import (
	"strings"

	"porttariff/internal/domain"
)

// Request is a parsed "calculate ..." chat command.
type Request struct {
	All  bool
	Text string
}

// ParseCommand strips the leading "calculate" verb from a chat command.
// "calculate all" (or a bare "all") selects the whole catalog.
func ParseCommand(command string) Request {
	text := strings.TrimSpace(strings.ToLower(command))
	text = strings.TrimSpace(strings.TrimPrefix(text, "calculate"))
	if text == "all" {
		return Request{All: true}
	}
	return Request{Text: text}
}

// Describe lists the catalog for user-facing messages.
func Describe(catalog []domain.DueType) string {
	var b strings.Builder
	b.WriteString("📋 Available dues I can calculate:")
	for _, d := range catalog {
		b.WriteString("\n• ")
		b.WriteString(string(d))
	}
	return b.String()
}
