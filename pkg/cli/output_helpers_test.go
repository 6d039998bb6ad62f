package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []string{"ID", "NOMBRE"}, [][]string{
		{"1", "Grupo 5A"},
		{"12", "Grupo 11B"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Grupo 5A")
	assert.Contains(t, out, "Grupo 11B")
}

func TestPrintJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	err := printJSON(&buf, map[string]string{"status": "ok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, buf.String())
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("xml"))
}

func TestBoolSiNo(t *testing.T) {
	assert.Equal(t, "sí", boolSiNo(true))
	assert.Equal(t, "no", boolSiNo(false))
}
