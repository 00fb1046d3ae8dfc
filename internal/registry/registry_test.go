package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resorts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

const validRegistry = `
resorts:
  - slug: palisades
    name: Palisades Tahoe
    kind: palisades
    source_url: https://www.palisadestahoe.com/mountain-information
    lat: 39.1969
    lon: -120.2356
    enabled: true
  - slug: homewood
    name: Homewood
    kind: homewood
    source_url: https://www.skihomewood.com/mountain/snow-report
    lat: 39.0857
    lon: -120.1692
    enabled: false
`

func TestLoad_ValidRegistry(t *testing.T) {
	path := writeRegistry(t, validRegistry)

	resorts, err := Load(path)
	require.NoError(t, err)
	require.Len(t, resorts, 2)
	assert.Equal(t, "palisades", resorts[0].Slug)
	assert.Equal(t, "Palisades Tahoe", resorts[0].Name)
	assert.Equal(t, 39.1969, resorts[0].Lat)
	assert.True(t, resorts[0].Enabled)
	assert.False(t, resorts[1].Enabled)
}

func TestLoadEnabled_FiltersDisabled(t *testing.T) {
	path := writeRegistry(t, validRegistry)

	resorts, err := LoadEnabled(path)
	require.NoError(t, err)
	require.Len(t, resorts, 1)
	assert.Equal(t, "palisades", resorts[0].Slug)
}

func TestLoad_InvalidEntrySkipped(t *testing.T) {
	path := writeRegistry(t, `
resorts:
  - slug: good
    name: Good Resort
    kind: generic
    source_url: https://example.com/conditions
    lat: 39.0
    lon: -120.0
    enabled: true
  - slug: bad
    name: Bad Resort
    kind: generic
    source_url: not a url
    lat: 39.0
    lon: -120.0
    enabled: true
  - slug: worse
    kind: generic
    source_url: https://example.com
    lat: 200.0
    lon: -120.0
`)

	resorts, err := Load(path)
	require.NoError(t, err)
	require.Len(t, resorts, 1, "invalid entries should be skipped, not fail the load")
	assert.Equal(t, "good", resorts[0].Slug)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoad_UnparseableYAML(t *testing.T) {
	path := writeRegistry(t, "resorts: [\n  broken")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
