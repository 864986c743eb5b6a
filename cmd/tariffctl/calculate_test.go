package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porttariff/internal/domain"
)

func TestReadVesselInfo(t *testing.T) {
	got, err := readVesselInfo(strings.NewReader("\n  Vessel Name: SUDESTADA\n"), "-")
	require.NoError(t, err)
	assert.Equal(t, "Vessel Name: SUDESTADA", got)

	path := filepath.Join(t.TempDir(), "vessel.txt")
	require.NoError(t, os.WriteFile(path, []byte("GT 51300"), 0o600))
	got, err = readVesselInfo(strings.NewReader("ignored"), path)
	require.NoError(t, err)
	assert.Equal(t, "GT 51300", got)

	_, err = readVesselInfo(strings.NewReader("   "), "-")
	assert.EqualError(t, err, "no vessel info provided")
}

func TestPrintResults(t *testing.T) {
	results := domain.NewResultSet()
	results.Set("Port Dues", "ZAR 199,549.22")
	results.Set("Light Dues", "ZAR 45,000.00")

	var text bytes.Buffer
	require.NoError(t, printResults(&text, results, false))
	assert.Equal(t, "• Port Dues: ZAR 199,549.22\n• Light Dues: ZAR 45,000.00\n", text.String())

	var js bytes.Buffer
	require.NoError(t, printResults(&js, results, true))
	assert.JSONEq(t, `{"results":{"Port Dues":"ZAR 199,549.22","Light Dues":"ZAR 45,000.00"}}`, js.String())
}
