package repository

import (
	"context"
	"crypto/sha1" //nolint:gosec // identity hash, not a security boundary
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsgate/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	URL         string    `db:"url"`
	Identity    string    `db:"identity"`
	ImageURL    string    `db:"image_url"`
	Author      string    `db:"author"`
	SourceID    *int64    `db:"source_id"`
	Provider    string    `db:"provider"`
	PublishedAt time.Time `db:"published_at"`
	Category    string    `db:"category"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// Identity computes the content identity of a url, the dedup key for
// articles
func Identity(url string) string {
	sum := sha1.Sum([]byte(url)) //nolint:gosec // dedup key only
	return hex.EncodeToString(sum[:])
}

// UpsertBatch persists a batch of normalized articles. The same url
// reported by any number of providers or refresh passes collapses to one
// row: articles are keyed on sha1(url), conflicts update all mutable fields
// but preserve the row id. Origin links are upserted on (provider,
// external_id) and attached to the resolved article id; links whose article
// cannot be resolved are dropped rather than inserted dangling. The whole
// batch runs in one transaction, a partial failure leaves no state behind.
func (r *ArticleRepository) UpsertBatch(ctx context.Context, articles []domain.NormalizedArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	// resolve source display names outside the transaction, misses are fine
	// and leave the reference null
	sourceIDs := r.resolveSources(ctx, articles)

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	count := 0
	err := retrier.Do(ctx, func() error {
		var err error
		count, err = r.upsertBatchTx(ctx, articles, sourceIDs)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: err}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upsert batch: %w", err)
	}
	return count, nil
}

func (r *ArticleRepository) upsertBatchTx(ctx context.Context, articles []domain.NormalizedArticle, sourceIDs map[string]int64) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	upsert := `
		INSERT INTO articles (
			title, description, url, identity, image_url, author,
			source_id, provider, published_at, category, updated_at
		) VALUES (
			:title, :description, :url, :identity, :image_url, :author,
			:source_id, :provider, :published_at, :category, CURRENT_TIMESTAMP
		)
		ON CONFLICT(identity) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			image_url = excluded.image_url,
			author = excluded.author,
			source_id = excluded.source_id,
			provider = excluded.provider,
			published_at = excluded.published_at,
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP
	`

	identities := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.URL == "" {
			continue
		}

		row := &articleSQL{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Identity:    Identity(a.URL),
			ImageURL:    a.ImageURL,
			Author:      a.Author,
			Provider:    a.Provider,
			PublishedAt: a.PublishedAt.UTC(),
			Category:    a.Category,
		}
		if id, ok := sourceIDs[sourceKey(a.Provider, a.SourceName)]; ok {
			row.SourceID = &id
		}

		if _, err := tx.NamedExecContext(ctx, upsert, row); err != nil {
			return 0, fmt.Errorf("upsert article %s: %w", a.URL, err)
		}
		identities = append(identities, row.Identity)
	}

	// re-fetch assigned ids by identity for origin linking
	idByIdentity, err := articleIDs(ctx, tx, identities)
	if err != nil {
		return 0, err
	}

	linkUpsert := `
		INSERT INTO article_sources (article_id, provider, external_id, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(provider, external_id) DO UPDATE SET
			article_id = excluded.article_id,
			metadata = excluded.metadata
	`
	for _, a := range articles {
		if a.URL == "" || a.ExternalID == "" {
			continue
		}
		articleID, ok := idByIdentity[Identity(a.URL)]
		if !ok {
			continue // unresolved article, drop the link rather than dangle
		}
		metadata := a.RawPayload
		if len(metadata) == 0 {
			metadata = []byte("{}")
		}
		if _, err := tx.ExecContext(ctx, linkUpsert, articleID, a.Provider, a.ExternalID, string(metadata)); err != nil {
			return 0, fmt.Errorf("upsert article source %s/%s: %w", a.Provider, a.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(idByIdentity), nil
}

// articleIDs fetches id by identity for a batch
func articleIDs(ctx context.Context, tx *sqlx.Tx, identities []string) (map[string]int64, error) {
	if len(identities) == 0 {
		return map[string]int64{}, nil
	}

	query, args, err := sqlx.In("SELECT id, identity FROM articles WHERE identity IN (?)", identities)
	if err != nil {
		return nil, fmt.Errorf("build id query: %w", err)
	}

	var rows []struct {
		ID       int64  `db:"id"`
		Identity string `db:"identity"`
	}
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("fetch article ids: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Identity] = row.ID
	}
	return out, nil
}

// resolveSources maps (provider, source display name) to source ids among
// active sources; unresolved names are simply absent from the result
func (r *ArticleRepository) resolveSources(ctx context.Context, articles []domain.NormalizedArticle) map[string]int64 {
	out := map[string]int64{}
	for _, a := range articles {
		if a.SourceName == "" {
			continue
		}
		key := sourceKey(a.Provider, a.SourceName)
		if _, done := out[key]; done {
			continue
		}
		var id int64
		err := r.db.GetContext(ctx, &id,
			"SELECT id FROM sources WHERE provider = ? AND name = ? COLLATE NOCASE AND active = 1",
			a.Provider, a.SourceName)
		if err != nil {
			continue // unresolved, reference stays null
		}
		out[key] = id
	}
	return out
}

func sourceKey(provider, name string) string {
	return provider + "\x00" + strings.ToLower(name)
}

// Find returns one page of articles matching the filter, newest first,
// along with the total match count
func (r *ArticleRepository) Find(ctx context.Context, filter domain.ArticleFilter, page, pageSize int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	where, args := buildFilter(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM articles"+where, args...); err != nil {
		return domain.Page{}, fmt.Errorf("count articles: %w", err)
	}

	query := "SELECT * FROM articles" + where + " ORDER BY published_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, (page-1)*pageSize)

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return domain.Page{}, fmt.Errorf("select articles: %w", err)
	}

	result := domain.Page{Total: total, Page: page, PageSize: pageSize, Articles: make([]domain.Article, len(rows))}
	for i, row := range rows {
		result.Articles[i] = toDomainArticle(&row)
	}
	return result, nil
}

// buildFilter translates an ArticleFilter into a WHERE clause
func buildFilter(filter domain.ArticleFilter) (where string, args []any) {
	var conds []string

	if filter.Keyword != "" {
		conds = append(conds, "(title LIKE ? OR description LIKE ?)")
		kw := "%" + filter.Keyword + "%"
		args = append(args, kw, kw)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Provider != "" {
		conds = append(conds, "provider = ?")
		args = append(args, filter.Provider)
	}
	if filter.Author != "" {
		conds = append(conds, "author LIKE ?")
		args = append(args, "%"+filter.Author+"%")
	}
	if filter.Source != "" {
		conds = append(conds, "source_id IN (SELECT id FROM sources WHERE (source_id = ? OR name = ? COLLATE NOCASE) AND active = 1)")
		args = append(args, filter.Source, filter.Source)
	}
	if !filter.From.IsZero() {
		conds = append(conds, "published_at >= ?")
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		conds = append(conds, "published_at <= ?")
		args = append(args, filter.To.UTC())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Get retrieves an article by id, ErrNotFound on a miss
func (r *ArticleRepository) Get(ctx context.Context, id int64) (*domain.Article, error) {
	var row articleSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM articles WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	article := toDomainArticle(&row)
	return &article, nil
}

// Delete removes an article by id, ErrNotFound when no row matched. Origin
// links cascade.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrigins returns the per-provider origin links for an article
func (r *ArticleRepository) GetOrigins(ctx context.Context, articleID int64) ([]domain.ArticleSource, error) {
	var rows []struct {
		ID         int64  `db:"id"`
		ArticleID  int64  `db:"article_id"`
		Provider   string `db:"provider"`
		ExternalID string `db:"external_id"`
		Metadata   string `db:"metadata"`
	}
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM article_sources WHERE article_id = ? ORDER BY id", articleID)
	if err != nil {
		return nil, fmt.Errorf("get origins: %w", err)
	}

	out := make([]domain.ArticleSource, len(rows))
	for i, row := range rows {
		out[i] = domain.ArticleSource{
			ID:         row.ID,
			ArticleID:  row.ArticleID,
			Provider:   row.Provider,
			ExternalID: row.ExternalID,
			Metadata:   []byte(row.Metadata),
		}
	}
	return out, nil
}

// toDomainArticle converts articleSQL to domain.Article
func toDomainArticle(row *articleSQL) domain.Article {
	return domain.Article{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		URL:         row.URL,
		Identity:    row.Identity,
		ImageURL:    row.ImageURL,
		Author:      row.Author,
		SourceID:    row.SourceID,
		Provider:    row.Provider,
		PublishedAt: row.PublishedAt,
		Category:    row.Category,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
