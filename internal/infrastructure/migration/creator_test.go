package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sepur/finance/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add invoice files", "add_invoice_files"},
		{"Add-Invoice-Files", "add_invoice_files"},
		{"ADD_INVOICE_FILES", "add_invoice_files"},
		{"add__invoice__files", "add_invoice_files"},
		{"Report Functions 2", "report_functions_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add invoice files", "Store uploaded invoice PDFs")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_invoice_files.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_invoice_files.down.sql"), first.DownPath)

	upContent, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add invoice files")
	assert.Contains(t, string(upContent), "Store uploaded invoice PDFs")

	downContent, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")

	second, err := CreateMigration(dir, "index payments", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
}

func TestCreateMigration_Errors(t *testing.T) {
	t.Run("unusable name", func(t *testing.T) {
		_, err := CreateMigration(t.TempDir(), "!!!", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no usable characters")
	})

	t.Run("creates nested directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "nested", "migrations")
		_, err := CreateMigration(nested, "init", "")
		require.NoError(t, err)

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestNextVersion(t *testing.T) {
	assert.Equal(t, 1, nextVersion(nil))
	assert.Equal(t, 8, nextVersion([]string{"000002_a", "000007_b", "notes"}))
}

func TestListMigrations(t *testing.T) {
	source := fstest.MapFS{
		"000002_add_payments.up.sql":   {Data: []byte("--")},
		"000002_add_payments.down.sql": {Data: []byte("--")},
		"000001_init.up.sql":           {Data: []byte("--")},
		"000001_init.down.sql":         {Data: []byte("--")},
		"README.md":                    {Data: []byte("docs")},
		"subdir.up.sql/keep":           {Data: []byte("")},
	}

	list, err := ListMigrations(source)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_add_payments"}, list)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	list, err := ListMigrations(os.DirFS("/nonexistent/path/to/migrations"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	list, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	for _, base := range list {
		_, err := migrations.FS.Open(base + ".down.sql")
		assert.NoError(t, err, "missing rollback for %s", base)
		assert.True(t, strings.HasPrefix(base, "00000"), base)
	}
}
