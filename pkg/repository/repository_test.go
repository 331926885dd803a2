package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umputun/newsgate/pkg/repository"
)

// setupTestDB creates repositories backed by a throwaway sqlite file
func setupTestDB(t *testing.T) *repository.Repositories {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?cache=shared&mode=rwc&_txlock=immediate"
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: dsn})
	require.NoError(t, err)

	t.Cleanup(func() { repos.Close() })
	return repos
}

func TestNewRepositories(t *testing.T) {
	repos := setupTestDB(t)
	require.NotNil(t, repos.Article)
	require.NotNil(t, repos.Source)
	require.NotNil(t, repos.Preference)
	require.NoError(t, repos.Ping(context.Background()))
}
