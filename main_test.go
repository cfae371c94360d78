package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mcncl/jsonconst/internal/config"
	"github.com/mcncl/jsonconst/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv keeps JSONCONST_* variables from the caller's shell out of a test,
// along with any config or .env file around the working directory. The test
// runs in an empty directory with an empty config file.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CONFIG", "OUTPUT", "NAMING_STRATEGY", "PREFIX", "POSTFIX", "IDENTIFIER_STYLE", "DEBUG"} {
		key := config.EnvPrefix + name
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, old) })
			require.NoError(t, os.Unsetenv(key))
		}
	}

	dir := t.TempDir()
	empty := filepath.Join(dir, ".jsonconst.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	t.Setenv(config.EnvPrefix+"CONFIG", empty)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeJSON(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_SingleInputToFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "a.json", `{"x":1}`)
	output := filepath.Join(dir, "out.ts")

	code, stdout, stderr := runCLI(t, input, "-o", output)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "export const A = {\"x\":1} as const;\n", string(content))
}

func TestRun_ContentNaming(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "whatever.json", `{"name":"my-thing","v":2}`)
	output := filepath.Join(dir, "out.ts")

	code, _, stderr := runCLI(t, input, "--output", output, "--naming-strategy", "from_file_content")
	require.Equal(t, 0, code, stderr)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "export const MyThing = {\"name\":\"my-thing\",\"v\":2} as const;")
}

func TestRun_PrefixAndPostfix(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "db.json", `{}`)

	code, stdout, stderr := runCLI(t, input, "--prefix", "I", "--postfix", "Config")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "export const IDbConfig = {} as const;\n", stdout)
}

func TestRun_PrefixNamesFileWithoutIdentifierCharacters(t *testing.T) {
	isolateEnv(t)
	input := writeJSON(t, t.TempDir(), "---.json", `{"x":1}`)

	code, stdout, stderr := runCLI(t, input, "--prefix", "Data")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "export const Data = {\"x\":1} as const;\n", stdout)

	code, stdout, stderr = runCLI(t, input)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Naming error")
}

func TestRun_StdoutDash(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "list.json", `[1, 2.0, "three"]`)

	code, stdout, stderr := runCLI(t, input, "--output=-")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "export const List = [1,2,\"three\"] as const;\n", stdout)
	_, err := os.Stat(filepath.Join(dir, "-"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_InputsInOrder(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	second := writeJSON(t, dir, "second.json", `2`)
	first := writeJSON(t, dir, "first.json", `1`)

	code, stdout, stderr := runCLI(t, second, first)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "export const Second = 2 as const;\nexport const First = 1 as const;\n", stdout)
}

func TestRun_FailureKeepsEarlierDeclarations(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	first := writeJSON(t, dir, "first.json", `{"ok":true}`)
	missing := filepath.Join(dir, "missing.json")
	third := writeJSON(t, dir, "third.json", `{}`)
	output := filepath.Join(dir, "out.ts")

	code, _, stderr := runCLI(t, first, missing, third, "-o", output)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing.json")
	assert.Contains(t, stderr, "not found")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "export const First = {\"ok\":true} as const;\n", string(content))
}

func TestRun_ArrayWithContentNamingFails(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "list.json", `[{"name":"x"}]`)

	code, stdout, stderr := runCLI(t, input, "--naming-strategy", "from_file_content")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Naming error")
}

func TestRun_InvalidJSONFails(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "bad.json", `{"a": json}`)

	code, _, stderr := runCLI(t, input)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "JSON parsing error")
}

func TestRun_RerunTruncatesOutput(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	alpha := writeJSON(t, dir, "alpha.json", `"a"`)
	beta := writeJSON(t, dir, "beta.json", `"b"`)
	output := filepath.Join(dir, "out.ts")

	code, _, stderr := runCLI(t, alpha, beta, "-o", output)
	require.Equal(t, 0, code, stderr)

	code, _, stderr = runCLI(t, beta, "-o", output)
	require.Equal(t, 0, code, stderr)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "export const Beta = \"b\" as const;\n", string(content))
}

func TestRun_UnwritableOutputProcessesNothing(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "a.json", `{}`)
	output := filepath.Join(dir, "no-such-dir", "out.ts")

	code, stdout, stderr := runCLI(t, input, "-o", output)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Output error")
	assert.Contains(t, stderr, output)
}

func TestRun_ArgumentErrors(t *testing.T) {
	isolateEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no inputs", []string{}},
		{"unknown flag", []string{"a.json", "--package", "x"}},
		{"bad naming strategy", []string{"a.json", "--naming-strategy", "from_env"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "jsonconst: error:")
		})
	}
}

func TestRun_EnvironmentConfiguresRun(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "user_profile.json", `{"name":"ignored"}`)

	t.Setenv(config.EnvPrefix+"IDENTIFIER_STYLE", "strcase")
	t.Setenv(config.EnvPrefix+"POSTFIX", "FromEnv")

	code, stdout, stderr := runCLI(t, input, "--postfix", "Data")
	require.Equal(t, 0, code, stderr)
	// the explicit flag wins over the environment
	assert.Equal(t, "export const UserProfileData = {\"name\":\"ignored\"} as const;\n", stdout)
}

func TestRun_DebugLogging(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := writeJSON(t, dir, "a.json", `{}`)

	t.Setenv(config.EnvPrefix+"DEBUG", "true")

	code, _, stderr := runCLI(t, input)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "converted input")
	assert.Contains(t, stderr, "name=A")
}

func TestIsolateEnv_StartsFromDefaults(t *testing.T) {
	t.Setenv(config.EnvPrefix+"PREFIX", "FromShell")
	isolateEnv(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	entries, err := os.ReadDir(wd)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".jsonconst.yml", entries[0].Name())

	cfg, err := config.Load(wd)
	require.NoError(t, err)
	defaults := config.NewConfig()
	assert.Equal(t, defaults.Prefix, cfg.Prefix)
	assert.Equal(t, defaults.Postfix, cfg.Postfix)
	assert.Equal(t, defaults.NamingStrategy, cfg.NamingStrategy)
	assert.Equal(t, defaults.IdentifierStyle, cfg.IdentifierStyle)
	assert.True(t, cfg.WritesToStdout())
}

func TestReport_NoColorOutsideTerminal(t *testing.T) {
	// as if stdout were a terminal while stderr is redirected
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	appErr := errors.NewNotFoundError("missing.json", errors.ErrFileNotFound)

	var buf bytes.Buffer
	report(&buf, appErr)
	assert.Equal(t, "jsonconst: Input error: file 'missing.json' not found\n", buf.String())

	logFile, err := os.Create(filepath.Join(t.TempDir(), "err.log"))
	require.NoError(t, err)
	report(logFile, appErr)
	require.NoError(t, logFile.Close())

	content, err := os.ReadFile(logFile.Name())
	require.NoError(t, err)
	assert.NotContains(t, string(content), "\x1b[")
	assert.Equal(t, buf.String(), string(content))
}

func TestRun_GoldenSamples(t *testing.T) {
	samples, err := filepath.Abs(filepath.Join("testdata", "samples"))
	require.NoError(t, err)
	isolateEnv(t)
	output := filepath.Join(t.TempDir(), "samples.ts")

	code, _, stderr := runCLI(t,
		filepath.Join(samples, "app-config.json"),
		filepath.Join(samples, "http_status.json"),
		"-o", output,
		"--prefix", "Sample")
	require.Equal(t, 0, code, stderr)

	expected, err := os.ReadFile(filepath.Join(samples, "expected.ts"))
	require.NoError(t, err)
	actual, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(actual))
}
