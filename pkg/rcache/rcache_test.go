package rcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid url", func(t *testing.T) {
		c, err := New("redis://localhost:6379/0")
		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.NoError(t, c.Close())
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := New("not-a-redis-url")
		assert.Error(t, err)
	})
}
