package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Dataset {
	return Dataset{
		Title:   "Case activity",
		Headers: []string{"performed_at", "type", "description"},
		Widths:  []float64{1, 1, 3},
		Rows: [][]string{
			{"2026-01-02T10:00:00Z", "created", "Case created"},
			{"2026-01-02T11:00:00Z", "noteAdded", "Tenant says \"rats, again\""},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sample())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "performed_at,type,description", lines[0])
	assert.Equal(t, `2026-01-02T11:00:00Z,noteAdded,"Tenant says ""rats, again"""`, lines[2])
}

func TestExportersRejectRaggedRows(t *testing.T) {
	data := sample()
	data.Rows = append(data.Rows, []string{"only one"})
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(data)
	assert.Error(t, err)
	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := sample()
	for i := 0; i < 120; i++ {
		data.Rows = append(data.Rows, []string{"2026-01-03T00:00:00Z", "statusChanged", strings.Repeat("long text ", 40)})
	}
	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())
	assert.Equal(t, ".pdf", f.Extension())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
