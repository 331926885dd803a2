package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsgate/pkg/domain"
)

// SourceRepository handles source-related database operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID       int64  `db:"id"`
	SourceID string `db:"source_id"`
	Name     string `db:"name"`
	Provider string `db:"provider"`
	Active   bool   `db:"active"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// Upsert stores a source keyed on (source_id, provider), updating name and
// active flag on conflict
func (r *SourceRepository) Upsert(ctx context.Context, source *domain.Source) error {
	query := `
		INSERT INTO sources (source_id, name, provider, active)
		VALUES (:source_id, :name, :provider, :active)
		ON CONFLICT(source_id, provider) DO UPDATE SET
			name = excluded.name,
			active = excluded.active
	`
	row := &sourceSQL{
		SourceID: source.SourceID,
		Name:     source.Name,
		Provider: source.Provider,
		Active:   source.Active,
	}
	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("upsert source: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil && source.ID == 0 {
		source.ID = id
	}
	return nil
}

// FindByName resolves a display name to a source among active sources for a
// provider, case-insensitive; ErrNotFound on a miss
func (r *SourceRepository) FindByName(ctx context.Context, provider, name string) (*domain.Source, error) {
	var row sourceSQL
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM sources WHERE provider = ? AND name = ? COLLATE NOCASE AND active = 1",
		provider, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find source by name: %w", err)
	}

	return &domain.Source{
		ID:       row.ID,
		SourceID: row.SourceID,
		Name:     row.Name,
		Provider: row.Provider,
		Active:   row.Active,
	}, nil
}

// List returns all sources for a provider, active first
func (r *SourceRepository) List(ctx context.Context, provider string) ([]domain.Source, error) {
	var rows []sourceSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM sources WHERE provider = ? ORDER BY active DESC, name", provider)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	out := make([]domain.Source, len(rows))
	for i, row := range rows {
		out[i] = domain.Source{
			ID:       row.ID,
			SourceID: row.SourceID,
			Name:     row.Name,
			Provider: row.Provider,
			Active:   row.Active,
		}
	}
	return out, nil
}
