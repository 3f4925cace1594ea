package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRenderExample(t *testing.T) {
	dir := t.TempDir()
	opts := renderOptions{
		Template:   filepath.Join("examples", "shipping.label"),
		Data:       filepath.Join("examples", "orders.yaml"),
		Out:        filepath.Join(dir, "out", "orders.zpl"),
		Preview:    filepath.Join(dir, "proof.svg"),
		Debug:      filepath.Join(dir, "layout.json"),
		FitDetails: true,
		Strategy:   "binary",
	}
	require.NoError(t, runRender(opts, nil, nil))

	zplBytes, err := os.ReadFile(opts.Out)
	require.NoError(t, err)
	out := string(zplBytes)
	assert.True(t, strings.HasPrefix(out, "^XA\r\n^PW800\r\n^LL400\r\n"), out)
	assert.True(t, strings.HasSuffix(out, "^XZ"))
	assert.Equal(t, 1, strings.Count(out, "^XA"))
	assert.Contains(t, out, "^FDORDER 12345\\&^FS")
	assert.Contains(t, out, "^FWB")

	debug, err := os.ReadFile(opts.Debug)
	require.NoError(t, err)
	assert.Contains(t, string(debug), `"desiredFontSize"`)

	preview, err := os.ReadFile(opts.Preview)
	require.NoError(t, err)
	assert.Contains(t, string(preview), "<svg")
}

func TestRunRenderStdinStdout(t *testing.T) {
	var stdout bytes.Buffer
	opts := renderOptions{
		Template: filepath.Join("examples", "shipping.label"),
		Data:     "-",
	}
	stdin := strings.NewReader(`[{"name": "Solo", "address": ["1 Main St"]}]`)
	require.NoError(t, runRender(opts, stdin, &stdout))
	assert.Contains(t, stdout.String(), "^FDSolo^FS")
	assert.NotContains(t, stdout.String(), "^FWB", "缺少 order 键时不输出横向区域")
}

func TestRunRenderErrors(t *testing.T) {
	err := runRender(renderOptions{Template: "missing.label", Data: "-"}, strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)

	err = runRender(renderOptions{Template: filepath.Join("examples", "shipping.label"), Data: "-", Strategy: "fast"},
		strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTestLabelCommand(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"test-label", "--template", filepath.Join("examples", "shipping.label")})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "^GB800,400,5^FS")
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "labelkit dev")
}
