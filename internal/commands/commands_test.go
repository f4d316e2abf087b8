package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSpendtrack(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestImport_CSVPrintsTableAndSummary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.csv")
	csv := "Date,Amount,Description\n" +
		"01/15/2025,$45.00,Whole Foods Market\n" +
		"01/16/2025,$6.50,Starbucks\n" +
		"01/20/2025,-$12.50,REI RETURN\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := runSpendtrack(t, "import", path, "--summary")
	require.NoError(t, err)

	assert.Contains(t, out, "imported 3 transactions")
	assert.Contains(t, out, "Whole Foods Market")
	assert.Contains(t, out, "[CREDIT] Rei Return")
	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "Net spending: 39.00")
}

func TestImport_DateRangeFiltersTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.csv")
	csv := "Date,Amount,Description\n" +
		"01/15/2025,$45.00,Whole Foods Market\n" +
		"02/10/2025,$6.50,Starbucks\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := runSpendtrack(t, "import", path, "--from", "2025-02-01", "--to", "2025-02-28")
	require.NoError(t, err)

	assert.Contains(t, out, "Starbucks")
	assert.NotContains(t, out, "2025-01-15")
}

func TestImport_AllFilesFailingIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	_, err := runSpendtrack(t, "import", path)
	require.Error(t, err)
}

func TestImport_BadDateFlagIsError(t *testing.T) {
	_, err := runSpendtrack(t, "import", "whatever.csv", "--from", "last tuesday")
	require.Error(t, err)
}

func TestVersion_IncludesBuildMetadata(t *testing.T) {
	out, err := runSpendtrack(t, "--version")
	require.NoError(t, err)

	assert.Contains(t, out, "dev")
	assert.Contains(t, out, "commit: none")
	assert.Contains(t, out, "go1")
}

func TestCategories_ListsRosterWithFallback(t *testing.T) {
	out, err := runSpendtrack(t, "categories")
	require.NoError(t, err)

	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "Other")
}
