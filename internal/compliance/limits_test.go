package compliance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJurisdictions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jurisdictions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJurisdictions_BuiltIn(t *testing.T) {
	table, err := LoadJurisdictions("")
	require.NoError(t, err)
	assert.Equal(t, map[string]Limits{"CO": Colombia}, table)
}

func TestLoadJurisdictions_File(t *testing.T) {
	path := writeJurisdictions(t, `
jurisdictions:
  PE:
    ceiling_years: 5
    approaching_years: 4.5
    minimum_term_renewal: 3
    minimum_term_days: 180
`)

	table, err := LoadJurisdictions(path)
	require.NoError(t, err)

	assert.Equal(t, Colombia, table["CO"])
	assert.Equal(t, Limits{CeilingYears: 5, ApproachingYears: 4.5, MinimumTermRenewal: 3, MinimumTermDays: 180}, table["PE"])
}

func TestLoadJurisdictions_RejectsInconsistentLimits(t *testing.T) {
	path := writeJurisdictions(t, `
jurisdictions:
  XX:
    ceiling_years: 2
    approaching_years: 3
    minimum_term_renewal: 3
    minimum_term_days: 180
`)

	_, err := LoadJurisdictions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XX")
}

func TestLoadJurisdictions_InvalidYAML(t *testing.T) {
	path := writeJurisdictions(t, "jurisdictions: [unclosed")

	_, err := LoadJurisdictions(path)
	assert.Error(t, err)
}

func TestLimitsFor(t *testing.T) {
	limits, err := LimitsFor("", "")
	require.NoError(t, err)
	assert.Equal(t, Colombia, limits)

	_, err = LimitsFor("ZZ", "")
	assert.Error(t, err)

	_, err = LimitsFor("CO", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
