package cli_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the tool via go run with the given stdin and args
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmdArgs := append([]string{"run", "../../main.go"}, args...)
	cmd := exec.Command("go", cmdArgs...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCLI_StdinReformat pipes a document through with no query
func TestCLI_StdinReformat(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{ "b" : 2 , "a" : 1 }`+"\n")
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Equal(t, `{"b":2,"a":1}`+"\n", stdout, "key order must be preserved")
}

// TestCLI_StdinQuery resolves a nested path
func TestCLI_StdinQuery(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a":{"a":"2","b":123}}`+"\n", "-q", "a.b")
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Equal(t, "123\n", stdout)
}

// TestCLI_ExpandedOutput checks the pretty form
func TestCLI_ExpandedOutput(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a":1}`+"\n", "--mode", "expanded")
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", stdout)
}

// TestCLI_MissingPath exits non-zero with a diagnostic
func TestCLI_MissingPath(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a":{"a":"2"}}`+"\n", "-q", "a.z")
	assert.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "path not found")
}

// TestCLI_MissingPathNullPolicy succeeds with jq-style leniency
func TestCLI_MissingPathNullPolicy(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a":{"a":"2"}}`+"\n", "-q", "a.z", "--missing", "null")
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Equal(t, "null\n", stdout)
}

// TestCLI_MultipleLines processes each line independently
func TestCLI_MultipleLines(t *testing.T) {
	input := `{"n":1}
not json at all
{"n":3}
`
	stdout, stderr, err := runCLI(t, input, "-q", "n")
	assert.Error(t, err, "a failed line must surface in the exit status")
	assert.Equal(t, "1\n3\n", stdout)
	assert.Contains(t, stderr, "JSON parsing error")
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `{
		"name": "John Doe",
		"address": {
			"street": "123 Main St",
			"city": "Anytown"
		},
		"active": true
	}`
	jsonFile := filepath.Join(tempDir, "test.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonContent), 0644))

	outputFile := filepath.Join(tempDir, "output.json")

	_, stderr, err := runCLI(t, "", "-i", jsonFile, "-o", outputFile, "-q", "address.city")
	require.NoError(t, err, "CLI failed: %s", stderr)

	result, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "\"Anytown\"\n", string(result))
}

// TestCLI_ConfigFile picks settings up from a config file
func TestCLI_ConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".jsonpick.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("output:\n  mode: expanded\n"), 0644))

	stdout, stderr, err := runCLI(t, `{"a":1}`+"\n", "-c", configFile)
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", stdout)
}

// TestCLI_EmptyQueryFlagOverridesConfig forces identity navigation
// even when the config file names a path
func TestCLI_EmptyQueryFlagOverridesConfig(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, ".jsonpick.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("query: \"a.b\"\n"), 0644))

	stdout, stderr, err := runCLI(t, `{"a":{"b":1},"c":2}`+"\n", "-c", configFile, "--query", "")
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Equal(t, `{"a":{"b":1},"c":2}`+"\n", stdout, "whole document expected, not the configured path")
}

// TestCLI_Version prints the version string
func TestCLI_Version(t *testing.T) {
	stdout, stderr, err := runCLI(t, "", "--version")
	require.NoError(t, err, "CLI failed: %s", stderr)
	assert.Contains(t, stdout, "jsonpick version")
}
