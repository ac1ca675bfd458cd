package redisfactory_test

import (
	"testing"

	"bitbucket.org/crgw/rates-inquiry/internal/tools/redisfactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("should leave the journal client off without an uri", func(t *testing.T) {
		factory, err := redisfactory.New("")

		require.NoError(t, err)
		assert.Nil(t, factory.JournalClient())
		assert.NoError(t, factory.Close())
	})

	t.Run("should build the journal client from an uri", func(t *testing.T) {
		factory, err := redisfactory.New("redis://localhost:6379/3")

		require.NoError(t, err)
		require.NotNil(t, factory.JournalClient())
		assert.Equal(t, 3, factory.JournalClient().Options().DB)
		assert.NoError(t, factory.Close())
	})

	t.Run("should fail on malformed uris", func(t *testing.T) {
		_, err := redisfactory.New("mysql://localhost")

		assert.Error(t, err)
	})
}
