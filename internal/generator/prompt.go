package generator

import "strings"

// BuildExtractRulesPrompt returns the prompt that asks the service to pull the
// rules for dues out of the attached tariff document.
func BuildExtractRulesPrompt(dues []string) string {
	var list strings.Builder
	for i, d := range dues {
		if i > 0 {
			list.WriteByte('\n')
		}
		list.WriteString("- ")
		list.WriteString(d)
	}

	return `Extract all relevant rules and formulas for calculating the following dues from the attached PDF:
` + list.String() + `

For each due type, provide all relevant tables, rates, and conditions. Structure the output clearly with a heading for each due type.

Example Output Format:
# Port Dues
## General Rules and Guidelines:
...
## Data Tables:
...
## Formulas:
...

IMPORTANT:
Ensure you correctly parse monetary values, for example:
"Mooring ropes at the Port of Saldanha…………………………….…………………………………..1 511.85 " - Cost should be taken as 1511.85 not 511.85
`
}

// BuildCalculateDuesPrompt returns the prompt that asks the service to compute
// the final amounts for dues from rules and the vessel description.
func BuildCalculateDuesPrompt(rules, vesselInfo string, dues []string) string {
	return `Based on the following rules and guidelines extracted from the tariff document:
<rules>
` + rules + `
</rules>

And the following vessel and port information:
<input>
` + vesselInfo + `
</input>

Calculate ONLY the final cost amounts for: ` + strings.Join(dues, ", ") + `

CRITICAL REQUIREMENTS:
1. For Port Dues, ALWAYS use "Days Alongside" if explicitly mentioned
2. Use code execution for mathematical calculations to ensure accuracy
3. NO explanations, NO step-by-step calculations, NO thinking process
4. ONLY provide the final monetary amounts

Format your response EXACTLY as:
• **Port Dues:** ZAR X,XXX.XX
• **Light Dues:** ZAR X,XXX.XX
(etc. for each requested due)

Do NOT include any calculations, explanations, formulas, or reasoning. Just the final amounts.
`
}
