package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"porttariff/internal/domain"
	"porttariff/internal/port"
	"porttariff/internal/service"
	"porttariff/mocks"
)

const (
	testRules  = "# Port Dues\n## Formulas:\nGT x rate"
	testVessel = "Vessel Name: SUDESTADA\nGross Tonnage: 51300\nPort: Durban\nDays Alongside: 3.39"
	unableLine = "Unable to calculate at this time. Please try 'calculate all'."
)

func newCalculator(debug bool) (service.CalculatorService, *mocks.MockGenerator, *mocks.MockRulesService) {
	gen := new(mocks.MockGenerator)
	rules := new(mocks.MockRulesService)
	rules.On("Rules", mock.Anything).Return(testRules, nil).Maybe()
	svc := service.NewCalculatorService(gen, rules, service.CalculatorConfig{
		Temperature:     0.1,
		SafetyThreshold: "BLOCK_ONLY_HIGH",
		Debug:           debug,
	})
	return svc, gen, rules
}

// requestFor matches a calculation prompt naming exactly dues.
func requestFor(dues ...string) interface{} {
	return mock.MatchedBy(func(in port.GenerateInput) bool {
		return strings.Contains(in.Prompt, "Calculate ONLY the final cost amounts for: "+strings.Join(dues, ", ")+"\n")
	})
}

func TestCalculatorService_Calculate_Success(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return in.Options.CodeExecution &&
			in.Options.Temperature != nil && *in.Options.Temperature == 0.1 &&
			in.Options.SafetyThreshold == "BLOCK_ONLY_HIGH" &&
			in.Attachment == nil &&
			strings.Contains(in.Prompt, testRules) &&
			strings.Contains(in.Prompt, testVessel)
	})).Return(textResponse("• **Port Dues:** ZAR 199,549.22\n• **Light Dues:** ZAR 45,000.00"), nil)

	results, err := svc.Calculate(context.Background(), &service.CalculateInput{
		VesselInfo:    testVessel,
		RequestedDues: []string{"Port Dues", " Light Dues ", ""},
	})

	require.NoError(t, err)
	want := []domain.ResultLine{
		{Name: "Port Dues", Amount: "ZAR 199,549.22"},
		{Name: "Light Dues", Amount: "ZAR 45,000.00"},
	}
	if diff := cmp.Diff(want, results.Lines()); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculatorService_Calculate_EmptyDuesMeansCatalog(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, requestFor(domain.CatalogNames()...)).
		Return(textResponse("• **Light Dues:** ZAR 1.00"), nil)

	results, err := svc.Calculate(context.Background(), &service.CalculateInput{VesselInfo: testVessel})

	require.NoError(t, err)
	assert.Equal(t, 1, results.Len())
	gen.AssertExpectations(t)
}

func TestCalculatorService_Calculate_CleansVerboseOutput(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, mock.Anything).Return(&port.RawResponse{Candidates: []port.Candidate{{Parts: []port.Part{
		port.TextPart{Text: "Here are the detailed calculations for the vessel."},
		port.CodePart{Language: "PYTHON", Code: "print(51300 * 0.5)"},
		port.ExecutionResultPart{Outcome: "OUTCOME_OK", Output: "25650.0"},
		port.TextPart{Text: "## Final Results\n- **Port Dues:** ZAR 25,650.00\n\n## Notes\nEstimate only."},
	}}}}, nil)

	results, err := svc.Calculate(context.Background(), &service.CalculateInput{
		VesselInfo:    testVessel,
		RequestedDues: []string{"Port Dues"},
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.ResultLine{{Name: "Port Dues", Amount: "ZAR 25,650.00"}}, results.Lines())
}

func TestCalculatorService_Calculate_InvalidVesselInfo(t *testing.T) {
	svc, gen, _ := newCalculator(false)

	_, err := svc.Calculate(context.Background(), &service.CalculateInput{VesselInfo: "  \n"})
	assert.ErrorIs(t, err, domain.ErrInvalidVesselInfo)

	_, err = svc.Calculate(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidVesselInfo)

	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestCalculatorService_Calculate_EmptyResult(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(textResponse("I could not find the tariff for this vessel."), nil)

	_, err := svc.Calculate(context.Background(), &service.CalculateInput{
		VesselInfo:    testVessel,
		RequestedDues: []string{"Port Dues", "Light Dues"},
	})

	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}

func TestCalculatorService_Calculate_GeneratorFailure(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	cause := errors.New("all generators failed: 500")
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := svc.Calculate(context.Background(), &service.CalculateInput{VesselInfo: testVessel})

	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestCalculatorService_Calculate_RulesFailure(t *testing.T) {
	gen := new(mocks.MockGenerator)
	rules := new(mocks.MockRulesService)
	rules.On("Rules", mock.Anything).Return("", domain.ErrRulesUnavailable)
	svc := service.NewCalculatorService(gen, rules, service.CalculatorConfig{})

	_, err := svc.Calculate(context.Background(), &service.CalculateInput{VesselInfo: testVessel})

	assert.ErrorIs(t, err, domain.ErrRulesUnavailable)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestCalculatorService_CalculateText_FallbackFindsSingleDue(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, requestFor("Pilotage Dues")).Return(textResponse("None"), nil).Once()
	gen.On("Generate", mock.Anything, requestFor(domain.CatalogNames()...)).Return(textResponse(
		"• **Light Dues:** ZAR 60,062.04\n"+
			"• **Port Dues:** ZAR 199,549.22\n"+
			"• **Pilotage Dues:** ZAR 47,189.94\n"+
			"• **VTS Dues:** ZAR 33,315.75"), nil).Once()

	text, err := svc.CalculateText(context.Background(), testVessel, []string{"Pilotage Dues"}, false)

	require.NoError(t, err)
	assert.Equal(t, "• **Pilotage Dues:** ZAR 47,189.94", text)
	gen.AssertExpectations(t)
}

func TestCalculatorService_CalculateText_FallbackMissingDueGivesPlaceholder(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, requestFor("Towage Dues")).Return(textResponse("null"), nil).Once()
	gen.On("Generate", mock.Anything, requestFor(domain.CatalogNames()...)).
		Return(textResponse("• **Port Dues:** ZAR 1.00"), nil).Once()

	text, err := svc.CalculateText(context.Background(), testVessel, []string{"Towage Dues"}, false)

	require.NoError(t, err)
	assert.Equal(t, "• **Towage Dues:** "+unableLine, text)
}

func TestCalculatorService_CalculateText_FallbackRetryGivesPlaceholder(t *testing.T) {
	for _, fallbackText := range []string{"None", "null", ""} {
		t.Run(fmt.Sprintf("%q", fallbackText), func(t *testing.T) {
			svc, gen, _ := newCalculator(false)
			gen.On("Generate", mock.Anything, requestFor("Pilotage Dues")).Return(textResponse("None"), nil).Once()
			gen.On("Generate", mock.Anything, requestFor(domain.CatalogNames()...)).
				Return(textResponse(fallbackText), nil).Once()

			text, err := svc.CalculateText(context.Background(), testVessel, []string{"Pilotage Dues"}, false)

			require.NoError(t, err)
			assert.Equal(t, "• **Pilotage Dues:** "+unableLine, text)
			gen.AssertNumberOfCalls(t, "Generate", 2)
		})
	}
}

func TestCalculatorService_CalculateText_FallbackErrorGivesPlaceholder(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, requestFor("VTS Dues")).Return(textResponse(""), nil).Once()
	gen.On("Generate", mock.Anything, requestFor(domain.CatalogNames()...)).Return(nil, errors.New("503")).Once()

	text, err := svc.CalculateText(context.Background(), testVessel, []string{"VTS Dues"}, false)

	require.NoError(t, err)
	assert.Equal(t, "• **VTS Dues:** "+unableLine, text)
}

func TestCalculatorService_CalculateText_FallbackAbortsOnCancel(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	ctx, cancel := context.WithCancel(context.Background())
	gen.On("Generate", mock.Anything, requestFor("VTS Dues")).
		Run(func(mock.Arguments) { cancel() }).
		Return(textResponse("None"), nil).Once()
	gen.On("Generate", mock.Anything, requestFor(domain.CatalogNames()...)).Return(nil, context.Canceled).Once()

	_, err := svc.CalculateText(ctx, testVessel, []string{"VTS Dues"}, false)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculatorService_CalculateText_MultipleDuesSkipFallback(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, mock.Anything).Return(textResponse("None"), nil).Once()

	text, err := svc.CalculateText(context.Background(), testVessel, []string{"Port Dues", "Light Dues"}, false)

	require.NoError(t, err)
	assert.Equal(t,
		"• **Port Dues:** "+unableLine+"\n• **Light Dues:** "+unableLine,
		text)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestCalculatorService_CalculateText_DebugKeepsWorking(t *testing.T) {
	for _, tc := range []struct {
		name      string
		cfgDebug  bool
		callDebug bool
	}{
		{"per call", false, true},
		{"configured", true, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc, gen, _ := newCalculator(tc.cfgDebug)
			gen.On("Generate", mock.Anything, mock.Anything).Return(&port.RawResponse{Candidates: []port.Candidate{{Parts: []port.Part{
				port.TextPart{Text: "Answering your request."},
				port.CodePart{Code: "print(1)"},
				port.ExecutionResultPart{Output: "1"},
				port.TextPart{Text: "• **Port Dues:** ZAR 1.00"},
			}}}}, nil)

			text, err := svc.CalculateText(context.Background(), testVessel, []string{"Port Dues"}, tc.callDebug)

			require.NoError(t, err)
			assert.Equal(t,
				"Answering your request.\n\n```python\nprint(1)\n```\n\n**Execution Result:**\n1\n• **Port Dues:** ZAR 1.00",
				text)
		})
	}
}

func TestCalculatorService_CalculateText_PanicBecomesDiagnostic(t *testing.T) {
	svc, gen, _ := newCalculator(false)
	gen.On("Generate", mock.Anything, mock.Anything).Panic("boom")

	text, err := svc.CalculateText(context.Background(), testVessel, []string{"Port Dues"}, false)

	require.NoError(t, err)
	assert.Equal(t, "❌ Error calculating dues: boom", text)
}

func TestCalculatorService_ResolveRequest(t *testing.T) {
	svc, _, _ := newCalculator(false)

	all := svc.ResolveRequest("calculate all")
	assert.True(t, all.Matched)
	assert.Equal(t, domain.Catalog(), all.Dues)

	some := svc.ResolveRequest("calculate pilotage and towage")
	assert.True(t, some.Matched)
	assert.Equal(t, []domain.DueType{domain.DueTowage, domain.DuePilotage}, some.Dues)

	empty := svc.ResolveRequest("calculate")
	assert.False(t, empty.Matched)
	assert.Equal(t, "❌ Please specify which dues to calculate or use 'calculate all'", empty.Message)

	none := svc.ResolveRequest("calculate zzqqxx")
	assert.False(t, none.Matched)
	assert.Empty(t, none.Dues)
	assert.True(t, strings.HasPrefix(none.Message, "❌ No matching dues found for 'zzqqxx'. 📋 Available dues I can calculate:"))
	assert.Contains(t, none.Message, "• Running of Vessel Lines Dues")
}
