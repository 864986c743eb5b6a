package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"porttariff/internal/domain"
	"porttariff/internal/port"
)

type rulesRepo struct {
	db    *sqlx.DB
	model string
}

// NewRulesRepo creates a PostgreSQL-backed RulesStore. Every Save appends a
// new version; Load returns the latest one. model is recorded with each version.
func NewRulesRepo(db *sqlx.DB, model string) port.RulesStore {
	return &rulesRepo{db: db, model: model}
}

func (r *rulesRepo) Load(ctx context.Context) (string, error) {
	var doc domain.RulesDocument
	err := r.db.GetContext(ctx, &doc,
		`SELECT id, content, model, created_at
		 FROM tariff_rules
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrRulesNotFound
		}
		return "", fmt.Errorf("loading tariff rules: %w", err)
	}
	return doc.Content, nil
}

func (r *rulesRepo) Save(ctx context.Context, text string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tariff_rules (content, model) VALUES ($1, $2)`,
		text, r.model)
	if err != nil {
		return fmt.Errorf("saving tariff rules: %w", err)
	}
	return nil
}
