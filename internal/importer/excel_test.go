package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRowsParseRowsRoundTrip(t *testing.T) {
	headers := []string{"name", "province", "phone"}
	data := [][]any{
		{"Central Ladprao", "Bangkok", "02-555-1234"},
		{"Silom Complex", "Bangkok", ""},
	}

	f, err := WriteRows(headers, data)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ParseRows(bytes.NewReader(buf.Bytes()), "branches.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Central Ladprao", rows[0]["name"])
	assert.Equal(t, "Bangkok", rows[0]["province"])
	assert.Equal(t, "Silom Complex", rows[1]["name"])
	_, hasPhone := rows[1]["phone"]
	assert.False(t, hasPhone, "empty cells are omitted from the row map")
}

func TestParseRowsSkipsBlankRows(t *testing.T) {
	f, err := WriteRows([]string{"name"}, [][]any{
		{"A"},
		{""},
		{"B"},
	})
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ParseRows(bytes.NewReader(buf.Bytes()), "x.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0]["name"])
	assert.Equal(t, "B", rows[1]["name"])
}

func TestTemplateHeaders(t *testing.T) {
	headers, err := TemplateHeaders(KindParts)
	require.NoError(t, err)
	assert.Contains(t, headers, "unitPrice")
	assert.Contains(t, headers, "qty")

	_, err = TemplateHeaders("widgets")
	assert.Error(t, err)
}
