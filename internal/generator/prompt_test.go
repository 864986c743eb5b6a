package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"porttariff/internal/generator"
)

func TestBuildExtractRulesPrompt_ListsDues(t *testing.T) {
	prompt := generator.BuildExtractRulesPrompt([]string{"Port Dues", "Light Dues"})

	assert.Contains(t, prompt, "from the attached PDF:\n- Port Dues\n- Light Dues\n")
	assert.Contains(t, prompt, "1511.85 not 511.85")
}

func TestBuildCalculateDuesPrompt(t *testing.T) {
	prompt := generator.BuildCalculateDuesPrompt("# Port Dues\nrate 1.0", "Vessel Name: SUDESTADA", []string{"Port Dues", "VTS Dues"})

	assert.Contains(t, prompt, "<rules>\n# Port Dues\nrate 1.0\n</rules>")
	assert.Contains(t, prompt, "<input>\nVessel Name: SUDESTADA\n</input>")
	assert.Contains(t, prompt, "Calculate ONLY the final cost amounts for: Port Dues, VTS Dues\n")
	assert.True(t, strings.Contains(prompt, "• **Port Dues:** ZAR X,XXX.XX"))
}
