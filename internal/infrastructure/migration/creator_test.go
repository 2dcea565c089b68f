package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Create Websites Table")
	require.NoError(t, err)

	assert.Contains(t, mf.UpPath, "create_websites_table.up.sql")
	assert.Contains(t, mf.DownPath, "create_websites_table.down.sql")
	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)

	content, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Create Websites Table")
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_websites.up.sql"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_websites.down.sql"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_products.up.sql"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_products.down.sql"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0644))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_websites", "002_products"}, migrations)
}

func TestListMigrationsMissingDir(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_order_webhook_url", sanitizeName("Add Order Webhook URL"))
	assert.Equal(t, "drop_legacy_columns", sanitizeName("drop--legacy__columns "))
}
