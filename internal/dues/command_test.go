package dues_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"porttariff/internal/domain"
	"porttariff/internal/dues"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  dues.Request
	}{
		{"calculate all", dues.Request{All: true}},
		{"  Calculate ALL ", dues.Request{All: true}},
		{"all", dues.Request{All: true}},
		{"calculate pilotage", dues.Request{Text: "pilotage"}},
		{"calculate", dues.Request{Text: ""}},
		{"port and light", dues.Request{Text: "port and light"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, dues.ParseCommand(tt.input))
		})
	}
}

func TestDescribe(t *testing.T) {
	got := dues.Describe([]domain.DueType{domain.DuePort, domain.DueVTS})

	assert.Equal(t, "📋 Available dues I can calculate:\n• Port Dues\n• VTS Dues", got)
	assert.Equal(t, len(domain.Catalog()), strings.Count(dues.Describe(domain.Catalog()), "\n• "))
}
