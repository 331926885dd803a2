package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/domain"
	"github.com/umputun/newsgate/pkg/repository"
)

func TestSourceRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("upsert and find by name", func(t *testing.T) {
		src := &domain.Source{SourceID: "bbc-news", Name: "BBC News", Provider: "newsapi", Active: true}
		require.NoError(t, repos.Source.Upsert(ctx, src))

		found, err := repos.Source.FindByName(ctx, "newsapi", "BBC News")
		require.NoError(t, err)
		assert.Equal(t, "bbc-news", found.SourceID)
		assert.True(t, found.Active)
	})

	t.Run("find is case-insensitive", func(t *testing.T) {
		found, err := repos.Source.FindByName(ctx, "newsapi", "bbc news")
		require.NoError(t, err)
		assert.Equal(t, "bbc-news", found.SourceID)
	})

	t.Run("find scoped to provider", func(t *testing.T) {
		_, err := repos.Source.FindByName(ctx, "guardian", "BBC News")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("upsert updates on conflict", func(t *testing.T) {
		require.NoError(t, repos.Source.Upsert(ctx, &domain.Source{
			SourceID: "bbc-news", Name: "BBC World News", Provider: "newsapi", Active: true,
		}))

		found, err := repos.Source.FindByName(ctx, "newsapi", "BBC World News")
		require.NoError(t, err)
		assert.Equal(t, "bbc-news", found.SourceID)

		sources, err := repos.Source.List(ctx, "newsapi")
		require.NoError(t, err)
		assert.Len(t, sources, 1, "conflict updated instead of duplicating")
	})

	t.Run("inactive source excluded from lookup", func(t *testing.T) {
		require.NoError(t, repos.Source.Upsert(ctx, &domain.Source{
			SourceID: "old-paper", Name: "Old Paper", Provider: "newsapi", Active: false,
		}))

		_, err := repos.Source.FindByName(ctx, "newsapi", "Old Paper")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		sources, err := repos.Source.List(ctx, "newsapi")
		require.NoError(t, err)
		assert.Len(t, sources, 2, "list still includes inactive")
	})
}
