package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/pkg/docgen"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeysCount(t *testing.T) {
	out, err := execute(t, "keys", "--count")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(len(docgen.ProtectedSchema().Keys())), strings.TrimSpace(out))
}

func TestKeysListsToggleKeys(t *testing.T) {
	out, err := execute(t, "keys")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "vermin-toggle-1")
	assert.Contains(t, lines, "mold-severity-1")
}

func TestMapReport(t *testing.T) {
	out, err := execute(t, "map", "--taxonomy", "testdata/taxonomy.yaml", "--intake", "testdata/intake.json")
	require.NoError(t, err)

	var rep struct {
		SchemaVersion string                 `json:"schema_version"`
		Output        map[string]interface{} `json:"output"`
		Resolutions   []docgen.Resolution    `json:"resolutions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	assert.Equal(t, "compat", rep.SchemaVersion)
	assert.Equal(t, true, rep.Output["vermin-toggle-1"])
	assert.Equal(t, true, rep.Output["vermin-RatsMice-1"])
	assert.Equal(t, true, rep.Output["vermin-Pigeons-1"])
	assert.Equal(t, false, rep.Output["vermin-Bats-1"])
	assert.Equal(t, "severe", rep.Output["vermin-severity-1"])
	assert.Equal(t, true, rep.Output["government-toggle-1"])
	assert.Equal(t, "Filed complaint with the city", rep.Output["government-details-1"])
	assert.Len(t, rep.Output, len(docgen.ProtectedSchema().Keys()))

	var vermin docgen.Resolution
	for _, res := range rep.Resolutions {
		assert.NotEqual(t, "pets", res.Category, "inactive categories are not resolved")
		if res.Category == "vermin" {
			vermin = res
		}
	}
	assert.Equal(t, []string{"Squirrels"}, vermin.Unmatched)
}

func TestMapSchemaVersionFlagOverridesFile(t *testing.T) {
	out, err := execute(t, "map", "--taxonomy", "testdata/taxonomy.yaml", "--intake", "testdata/intake.json",
		"--schema-version", "v2", "--output-only")
	require.NoError(t, err)

	var output map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Equal(t, false, output["government-toggle-1"], "v2 does not probe legacy aliases")
	assert.Equal(t, true, output["vermin-toggle-1"])
}

func TestMapRejectsUnknownSchemaVersion(t *testing.T) {
	_, err := execute(t, "map", "--intake", "testdata/intake.json", "--schema-version", "v9")
	require.Error(t, err)
}

func TestDiffDetectsDrift(t *testing.T) {
	out, err := execute(t, "map", "--taxonomy", "testdata/taxonomy.yaml", "--intake", "testdata/intake.json", "--output-only")
	require.NoError(t, err)

	golden := filepath.Join(t.TempDir(), "golden.json")
	require.NoError(t, os.WriteFile(golden, []byte(out), 0o600))

	out, err = execute(t, "diff", "--taxonomy", "testdata/taxonomy.yaml", "--intake", "testdata/intake.json", "--golden", golden)
	require.NoError(t, err)
	assert.Contains(t, out, "keys match")

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(readFile(t, golden))), &stored))
	stored["vermin-Bats-1"] = true
	delete(stored, "trash-toggle-1")
	stored["vermin-legacy-1"] = false
	changed, err := json.Marshal(stored)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(golden, changed, 0o600))

	out, err = execute(t, "diff", "--taxonomy", "testdata/taxonomy.yaml", "--intake", "testdata/intake.json", "--golden", golden)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 keys drifted")
	assert.Contains(t, out, "~ vermin-Bats-1: true -> false")
	assert.Contains(t, out, "+ trash-toggle-1: false (new)")
	assert.Contains(t, out, "- vermin-legacy-1: false (missing)")
}

func TestLoadTaxonomy(t *testing.T) {
	taxonomy, err := loadTaxonomy("testdata/taxonomy.yaml")
	require.NoError(t, err)
	assert.Len(t, taxonomy, 3)
	assert.NotContains(t, taxonomy, "pets")
	assert.Empty(t, taxonomy["mold"])
	assert.Equal(t, docgen.Option{Code: "RatsMice", Name: "Rats/Mice"}, taxonomy["vermin"][0])

	fallback, err := loadTaxonomy("")
	require.NoError(t, err)
	assert.Len(t, fallback, len(docgen.ProtectedSchema()))
}

func TestLoadTaxonomyRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - code: mold\n  - code: mold\n"), 0o600))
	_, err := loadTaxonomy(path)
	require.Error(t, err)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}
