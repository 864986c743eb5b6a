package port

import "context"

// RulesStore persists the rules text extracted from the tariff document.
// Load returns domain.ErrRulesNotFound when nothing has been saved yet.
type RulesStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, text string) error
}

// DocumentSource provides the tariff document attached to rule extraction prompts.
type DocumentSource interface {
	Load(ctx context.Context) (*Attachment, error)
}
