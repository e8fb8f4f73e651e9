package migrate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkmondal/shopline-backend/pkg/migrate"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	err := migrate.ValidateDir("migrations")
	assert.NoError(t, err)
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "create_stuff.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644)
	require.NoError(t, err)

	err = migrate.ValidateDir(dir)
	assert.ErrorContains(t, err, "invalid migration filename")
}

func TestValidateDirRejectsMissingDownSection(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "20250101000000_create_stuff.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644)
	require.NoError(t, err)

	err = migrate.ValidateDir(dir)
	assert.ErrorContains(t, err, "-- +goose Down")
}

func TestCreateSQLMigrationProducesValidFile(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Loyalty Points")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "_add_loyalty_points.sql")

	assert.NoError(t, migrate.ValidateDir(dir))
}
