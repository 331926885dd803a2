package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/domain"
)

func TestPreferenceRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	t.Run("get before save returns zero record", func(t *testing.T) {
		pref, err := repos.Preference.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pref.ID)
		assert.Empty(t, pref.Source)
		assert.Empty(t, pref.Category)
		assert.Empty(t, pref.Author)
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, repos.Preference.Save(ctx, &domain.Preference{
			Source: "bbc-news", Category: "technology", Author: "Jane Doe",
		}))

		pref, err := repos.Preference.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bbc-news", pref.Source)
		assert.Equal(t, "technology", pref.Category)
		assert.Equal(t, "Jane Doe", pref.Author)
	})

	t.Run("save updates in place, record never multiplied", func(t *testing.T) {
		require.NoError(t, repos.Preference.Save(ctx, &domain.Preference{Category: "sports"}))

		pref, err := repos.Preference.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pref.ID)
		assert.Equal(t, "sports", pref.Category)
		assert.Empty(t, pref.Source)

		var count int
		require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM preferences"))
		assert.Equal(t, 1, count)
	})
}
