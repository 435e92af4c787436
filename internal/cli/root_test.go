package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const workspaceJSON = `{
  "blocks": {"blocks": [{
    "type": "main_block",
    "inputs": {"STACK": {"block": {
      "type": "variables_declare",
      "fields": {"TYPE": "int", "VAR": {"id": "v1"}},
      "inputs": {"VALUE": {"shadow": {"type": "math_number", "fields": {"NUM": 42}}}},
      "next": {"block": {
        "type": "library_stdio_printf",
        "extraState": {"argCount": 2},
        "inputs": {
          "VAR0": {"block": {"type": "variables_get", "fields": {"VAR": {"id": "v1"}}}},
          "VAR1": {"block": {"type": "text_newline"}}
        }
      }}
    }}}
  }]},
  "variables": [{"id": "v1", "name": "x", "type": "int"}]
}`

const wantProgram = "#include <stdio.h>\n\nint main(void) {\n  int x = 42;\n  printf(\"%d\\n\", x);\n  return 0;\n}\n"

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hello.json")
	require.NoError(t, os.WriteFile(path, []byte(workspaceJSON), 0o644))
	return path
}

func TestGenerateFromFile(t *testing.T) {
	out, _, err := run(t, "", writeWorkspace(t), "--no-banner")
	require.NoError(t, err)
	require.Equal(t, wantProgram, out)
}

func TestBannerNamesSource(t *testing.T) {
	out, _, err := run(t, "", writeWorkspace(t))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "/*\n"))
	require.Contains(t, out, " * Source: hello.json\n")
	require.True(t, strings.HasSuffix(out, wantProgram))
}

func TestGenerateFromStdin(t *testing.T) {
	out, _, err := run(t, workspaceJSON, "--no-banner")
	require.NoError(t, err)
	require.Equal(t, wantProgram, out)

	out, _, err = run(t, workspaceJSON, "-", "--no-banner", "--indent", "4")
	require.NoError(t, err)
	require.Contains(t, out, "\n    int x = 42;\n")
}

func TestOutputFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "hello.c")
	out, _, err := run(t, "", writeWorkspace(t), "--no-banner", "-o", dst)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, wantProgram, string(data))
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := run(t, "", writeWorkspace(t), "--no-banner", "--verbose")
	require.NoError(t, err)
	require.Equal(t, wantProgram, out)
	require.Contains(t, errOut, "generation finished")
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, `{"blocks": {"blocks": [{"type": "turtle_move"}]}}`)
	require.Error(t, err)

	_, _, err = run(t, workspaceJSON, "--indent", "0")
	require.Error(t, err)

	_, _, err = run(t, "", "a.json", "b.json")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "--version")
	require.NoError(t, err)
	require.Equal(t, "cake 0.1.0\n", out)
}

func TestBlocksCommand(t *testing.T) {
	out, _, err := run(t, "", "blocks")
	require.NoError(t, err)

	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.NotEmpty(t, defs)
	require.Equal(t, "main_block", defs[0]["type"])
}
