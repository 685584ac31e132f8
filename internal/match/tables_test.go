package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesValid(t *testing.T) {
	require.NoError(t, DefaultTables().Validate())
}

func TestLoadTablesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")

	yaml := `
industry_affinity:
  energy:
    utilities: 0.9
    energy: 0.7
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	// Overridden section replaces the built-in table.
	assert.InDelta(t, 0.9, tables.IndustryAffinity["energy"]["utilities"], 0.001)
	_, hasTech := tables.IndustryAffinity["technology"]
	assert.False(t, hasTech)

	// Untouched section keeps defaults.
	assert.Len(t, tables.SeniorityTiers, 4)
	assert.Equal(t, 5, tables.SeniorityTiers[0].Level)
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables("/nonexistent/tables.yaml")
	assert.Error(t, err)
}

func TestLoadTablesInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("industry_affinity: [not a map"), 0644))

	_, err := LoadTables(path)
	assert.Error(t, err)
}

func TestTablesValidate(t *testing.T) {
	t.Run("affinity out of range", func(t *testing.T) {
		tables := DefaultTables()
		tables.IndustryAffinity["technology"]["finance"] = 1.5
		err := tables.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("tiers out of order", func(t *testing.T) {
		tables := DefaultTables()
		tables.SeniorityTiers[0], tables.SeniorityTiers[1] = tables.SeniorityTiers[1], tables.SeniorityTiers[0]
		err := tables.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "descending level")
	})

	t.Run("tier without keywords", func(t *testing.T) {
		tables := DefaultTables()
		tables.SeniorityTiers[2].Keywords = nil
		err := tables.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no keywords")
	})
}
