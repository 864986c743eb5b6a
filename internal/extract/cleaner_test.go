package extract_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"porttariff/internal/extract"
)

const verboseResponse = "Answering your question about the vessel call.\n" +
	"Some filler before the work starts.\n" +
	"## Calculation\n" +
	"```python\ngt = 51300\nprint(gt * 0.5)\n```\n" +
	"**Execution Result:**\n25650.0\n\n" +
	"### Final Results:\n" +
	"- **Port Dues:** ZAR 199,549.22\n" +
	"- **Light Dues:** ZAR 45,000.00\n" +
	"\n## Notes\nValues are estimates."

func TestClean_CanonicalInputUnchanged(t *testing.T) {
	in := "Here are the detailed calculations... ### Final Results:\n" +
		"• **Port Dues:** ZAR 199,549.22\n• **Light Dues:** ZAR 45,000.00"

	assert.Equal(t, in, extract.Clean(in))
}

func TestClean_IsolatesFinalResults(t *testing.T) {
	got := extract.Clean(verboseResponse)

	assert.Equal(t,
		"### Final Results:\n- **Port Dues:** ZAR 199,549.22\n- **Light Dues:** ZAR 45,000.00",
		got)
}

func TestClean_HashPrefixedLineInsideFinalResults(t *testing.T) {
	in := "### Final Results:\n" +
		"- **Port Dues:** ZAR 1.00\n" +
		"#1 priority: check berth\n" +
		"- **Light Dues:** ZAR 2.00"

	got := extract.Clean(in)
	assert.Equal(t, in, got)

	lines := extract.ParseLines(got)
	assert.Equal(t, []string{"Port Dues", "Light Dues"}, lines.Results.Names())
}

func TestClean_FinalResultsEndsAtNextHeading(t *testing.T) {
	in := "### Final Results:\n" +
		"- **Port Dues:** ZAR 1.00\n" +
		"## Notes\n" +
		"- **Light Dues:** ZAR 2.00"

	assert.Equal(t, "### Final Results:\n- **Port Dues:** ZAR 1.00", extract.Clean(in))
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		verboseResponse,
		"• **Port Dues:** ZAR 1.00\n\n\n\n• **VTS Dues:** ZAR 2.00",
		"The **Port Dues:** amount is ZAR 1,234.56",
	}
	for _, in := range inputs {
		once := extract.Clean(in)
		assert.Equal(t, once, extract.Clean(once), "input: %q", in)
	}
}

func TestClean_SalvagesInlineAmounts(t *testing.T) {
	in := "The **Port Dues:** amount is ZAR 1,234.56 and **Light Dues:** total ZAR 500"

	assert.Equal(t,
		"• **Port Dues:** ZAR 1,234.56\n• **Light Dues:** ZAR 500",
		extract.Clean(in))
}

func TestClean_StripsExecutionResultUntilCapitalisedLine(t *testing.T) {
	in := "**Execution Result:**\n12.5\nmore output\nTotal computed.\n### Final Results:\n- **Towage Dues:** ZAR 9,000.00"

	assert.Equal(t, "### Final Results:\n- **Towage Dues:** ZAR 9,000.00", extract.Clean(in))
}

func TestClean_NarrativeWithoutHeadingIsDropped(t *testing.T) {
	assert.Equal(t, "Intro.", extract.Clean("Intro.\nMy thinking process goes on and on"))
}

func TestClean_CollapsesBlankRuns(t *testing.T) {
	assert.Equal(t, "a\n\nb", extract.Clean("\n\na\n\n\n\n\nb\n\n"))
}

func TestClean_LongAdversarialInputTerminates(t *testing.T) {
	in := strings.Repeat("**Port Dues:** ", 20000) + strings.Repeat("#", 5000) + strings.Repeat("```", 3000)

	done := make(chan struct{})
	go func() {
		defer close(done)
		extract.Clean(in)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Clean did not finish on adversarial input")
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, extract.IsCanonical("• **Port Dues:** ZAR 199,549.22"))
	assert.True(t, extract.IsCanonical("•**VTS Dues:**R 1"))
	assert.False(t, extract.IsCanonical("- **Port Dues:** ZAR 199,549.22"))
	assert.False(t, extract.IsCanonical("• **Port Dues:** unavailable"))
}

func TestFormatLine(t *testing.T) {
	assert.Equal(t, "• **Pilotage Dues:** ZAR 47,189.94", extract.FormatLine("Pilotage Dues", "ZAR 47,189.94"))
}
