package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsgate/pkg/domain"
)

// PreferenceRepository handles the single global preference record. The row
// id is pinned to 1; Save creates it on first call and updates it in place
// afterwards, the record is never multiplied.
type PreferenceRepository struct {
	db *sqlx.DB
}

// preferenceSQL represents the preference row for SQL operations
type preferenceSQL struct {
	ID        int64     `db:"id"`
	Source    string    `db:"source"`
	Category  string    `db:"category"`
	Author    string    `db:"author"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the global preference, a zero-value record when none was
// saved yet
func (r *PreferenceRepository) Get(ctx context.Context) (*domain.Preference, error) {
	var row preferenceSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM preferences WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Preference{ID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}

	return &domain.Preference{
		ID:        row.ID,
		Source:    row.Source,
		Category:  row.Category,
		Author:    row.Author,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Save upserts the global preference record in place
func (r *PreferenceRepository) Save(ctx context.Context, pref *domain.Preference) error {
	query := `
		INSERT INTO preferences (id, source, category, author, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			source = excluded.source,
			category = excluded.category,
			author = excluded.author,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, pref.Source, pref.Category, pref.Author); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}
