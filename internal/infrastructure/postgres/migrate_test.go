package postgres

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/jackc/tern/v2/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SecuenciaParaTern(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)

	paths, err := migrate.FindMigrations(files)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	name := regexp.MustCompile(`^\d{3}_[a-z0-9_]+\.sql$`)
	for _, p := range paths {
		assert.Regexp(t, name, p)
		body, err := fs.ReadFile(files, p)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "{{", "tern procesa los scripts como text/template")
	}
	assert.Equal(t, "001_inventory_ledger.sql", paths[0])
}
