package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestGenerateDefaultFormat(t *testing.T) {
	out, err := run(t, "", "generate", "--cells", "00010", "--rule", "90", "--length", "3")
	require.NoError(t, err)
	assert.Equal(t, "8 20 2\n", out)
}

func TestGenerateCSV(t *testing.T) {
	out, err := run(t, "", "generate", "--cells", "0,0,1,0,0", "-n", "2", "-f", "csv")
	require.NoError(t, err)
	assert.Equal(t, "step,integer,cells\n0,4,00100\n1,10,01010\n", out)
}

func TestGenerateIntegersOnly(t *testing.T) {
	full, err := run(t, "", "generate", "--width", "31", "--init", "random", "--seed", "3", "-r", "30", "-n", "50")
	require.NoError(t, err)
	lean, err := run(t, "", "generate", "--width", "31", "--init", "random", "--seed", "3", "-r", "30", "-n", "50", "--integers-only")
	require.NoError(t, err)
	assert.Equal(t, full, lean)

	_, err = run(t, "", "generate", "--integers-only", "-f", "grid")
	assert.Error(t, err)
}

func TestGenerateZeroLength(t *testing.T) {
	out, err := run(t, "", "generate", "-n", "0", "-f", "lines")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGenerateWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.png")
	_, err := run(t, "", "generate", "-w", "8", "-n", "4", "--png", path, "--png-scale", "2")
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestGenerateErrors(t *testing.T) {
	_, err := run(t, "", "generate", "-f", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "", "generate", "-w", "65")
	assert.ErrorContains(t, err, "width exceeds")

	_, err = run(t, "", "generate", "-n", "-1")
	assert.Error(t, err)

	_, err = run(t, "", "generate", "--init", "spiral")
	assert.ErrorContains(t, err, "unknown seed pattern")
}

func TestStep(t *testing.T) {
	out, err := run(t, "", "step", "--cells", "00100", "-r", "90")
	require.NoError(t, err)
	assert.Equal(t, "01010 10\n", out)
}

func TestEncodeDecode(t *testing.T) {
	out, err := run(t, "", "encode", "10100")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(t, "", "decode", "5", "--width", "5")
	require.NoError(t, err)
	assert.Equal(t, "10100\n", out)

	_, err = run(t, "", "decode", "five")
	assert.Error(t, err)
}

func TestEncodeDecodeWide(t *testing.T) {
	cells := strings.Repeat("0", 70) + "1"
	out, err := run(t, "", "encode", cells)
	require.NoError(t, err)
	assert.Equal(t, "1180591620717411303424\n", out) // 1<<70

	out, err = run(t, "", "decode", "1180591620717411303424", "--width", "71")
	require.NoError(t, err)
	assert.Equal(t, cells+"\n", out)
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cells: \"00010\"\nrule: 30\nlength: 3\nformat: lines\n"), 0o644))

	out, err := run(t, "", "generate", "--config", path, "--rule", "90")
	require.NoError(t, err)
	assert.Equal(t, "8\n20\n2\n", out)
}

func TestServe(t *testing.T) {
	in := `{"type":"step","id":"a","currentCells":[0,0,1,0,0],"width":5,"ruleset":90}` + "\n"
	out, err := run(t, in, "serve", "--workers", "1")
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "stepped", resp["type"])
	assert.Equal(t, "a", resp["id"])
	assert.EqualValues(t, 10, resp["nextInteger"])
}
