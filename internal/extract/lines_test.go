package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porttariff/internal/domain"
	"porttariff/internal/extract"
)

func TestParseLines_Empty(t *testing.T) {
	lines := extract.ParseLines("")

	require.NotNil(t, lines.Results)
	assert.Equal(t, 0, lines.Results.Len())
	assert.Empty(t, lines.Unparsed)
}

func TestParseLines_LastWriteWins(t *testing.T) {
	lines := extract.ParseLines("• **A:** X\n• **A:** Y")

	assert.Equal(t, []domain.ResultLine{{Name: "A", Amount: "Y"}}, lines.Results.Lines())
}

func TestParseLines_EndToEnd(t *testing.T) {
	raw := "Here are the detailed calculations... ### Final Results:\n" +
		"• **Port Dues:** ZAR 199,549.22\n• **Light Dues:** ZAR 45,000.00"

	lines := extract.ParseLines(extract.Clean(raw))

	assert.Equal(t, []domain.ResultLine{
		{Name: "Port Dues", Amount: "ZAR 199,549.22"},
		{Name: "Light Dues", Amount: "ZAR 45,000.00"},
	}, lines.Results.Lines())
}

func TestParseLines_TrimsDecoration(t *testing.T) {
	lines := extract.ParseLines("- **Towage Dues:**   ZAR 12,000.00  \n   * **VTS Dues:** ZAR 300.00")

	amount, ok := lines.Results.Get("Towage Dues")
	require.True(t, ok)
	assert.Equal(t, "ZAR 12,000.00", amount)
	assert.Equal(t, []string{"Towage Dues", "VTS Dues"}, lines.Results.Names())
}

func TestParseLines_RecordsUnparsable(t *testing.T) {
	content := "• **Port Dues:** ZAR 1.00\n" +
		"• **Light:** **Dues:** twice\n" +
		":** ZAR 2.00\n" +
		"plain narrative"

	lines := extract.ParseLines(content)

	assert.Equal(t, []string{"Port Dues"}, lines.Results.Names())
	assert.Equal(t, []string{"• **Light:** **Dues:** twice", ":** ZAR 2.00"}, lines.Unparsed)
}

func TestLookupLine(t *testing.T) {
	content := "• **Port Dues:** ZAR 1.00\n• **pilotage dues:** ZAR 2.00\n• **Pilotage Dues:** ZAR 3.00"

	amount, ok := extract.LookupLine(content, "Pilotage Dues")
	require.True(t, ok)
	assert.Equal(t, "ZAR 3.00", amount)

	amount, ok = extract.LookupLine(content, "PORT DUES")
	require.True(t, ok)
	assert.Equal(t, "ZAR 1.00", amount)

	_, ok = extract.LookupLine(content, "Light Dues")
	assert.False(t, ok)
}
