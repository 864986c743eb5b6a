package port

import "context"

// Part is one element of a generator candidate. The concrete types are
// TextPart, CodePart and ExecutionResultPart; no other package implements it.
type Part interface {
	isPart()
}

// TextPart is narrative text produced by the model.
type TextPart struct {
	Text string
}

// CodePart is source code the model wrote for the service's code sandbox.
type CodePart struct {
	Language string
	Code     string
}

// ExecutionResultPart is the output of running a CodePart.
type ExecutionResultPart struct {
	Outcome string
	Output  string
}

func (TextPart) isPart()            {}
func (CodePart) isPart()            {}
func (ExecutionResultPart) isPart() {}

// Candidate is one alternative answer returned by the service.
type Candidate struct {
	Parts        []Part
	FinishReason string
}

// RawResponse is the provider-neutral response of a Generate call.
type RawResponse struct {
	Candidates []Candidate
	Model      string
	// FallbackText is the provider's own plain-text rendering of the whole
	// response, used when no part yields text. May be empty.
	FallbackText string
}

// Attachment is a binary document sent alongside a prompt.
type Attachment struct {
	Data     []byte
	MimeType string
	Name     string
}

// GenerateOptions tunes a single Generate call.
type GenerateOptions struct {
	Temperature     *float64
	CodeExecution   bool
	SafetyThreshold string
}

// GenerateInput carries the data needed for one generator round trip.
type GenerateInput struct {
	Prompt     string
	Attachment *Attachment
	Options    GenerateOptions
}

// Generator abstracts the external generative text service.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*RawResponse, error)
}
