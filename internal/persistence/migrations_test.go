package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedMigrationsAreIdempotent(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "schema migrations must ship inside the binary")

	for _, entry := range entries {
		sql, err := migrationFS.ReadFile("migrations/" + entry.Name())
		require.NoError(t, err)
		assert.Contains(t, string(sql), "IF NOT EXISTS",
			"%s must survive being reapplied on every startup", entry.Name())
	}
}

func TestRunMigrationsSkipsWithoutPool(t *testing.T) {
	err := RunMigrations(context.Background(), nil, zap.NewNop())

	assert.NoError(t, err)
}

func TestMigrationFilenamesApplyInOrder(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)

	var prev string
	for _, entry := range entries {
		name := entry.Name()
		require.True(t, strings.HasSuffix(name, ".sql"))
		if prev != "" {
			assert.Less(t, prev, name, "migration filenames must sort in apply order")
		}
		prev = name
	}
}
