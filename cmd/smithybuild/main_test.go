package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--env-file", ""}, args...), strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Generate(t *testing.T) {
	models := testutil.ModelsDir(t, map[string]string{
		"mq.v1.json": testutil.ServiceModel("com.example#MQ"),
	})
	output := filepath.Join(t.TempDir(), "smithy-build.json")

	code, stdout, stderr := runCLI(t, "generate",
		"--models", models,
		"--output", output,
		"--module-prefix", "github.com/example/service/")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "wrote 1 projection(s) to "+output+"\n", stdout)
	assert.Contains(t, stderr, "INFO manifest written")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"module": "github.com/example/service/mq"`)
}

func TestRun_GenerateWithConfigFile(t *testing.T) {
	models := testutil.ModelsDir(t, map[string]string{
		"mq.v1.json": testutil.ServiceModel("com.example#MQ"),
	})
	output := filepath.Join(t.TempDir(), "smithy-build.json")
	t.Setenv("SMITHYBUILD_TEST_MODELS", models)
	cfgPath := testutil.WriteFile(t, t.TempDir(), "smithybuild.yaml",
		"modelsDir: {{ .env.SMITHYBUILD_TEST_MODELS }}\noutput: "+output+"\nindent: 2\nlogLevel: warn\n")

	code, _, stderr := runCLI(t, "--config", cfgPath, "generate")
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"version\""))
}

func TestRun_GenerateFailure(t *testing.T) {
	models := testutil.ModelsDir(t, map[string]string{
		"mq.v1.json": testutil.ServiceModel(),
	})
	output := filepath.Join(t.TempDir(), "smithy-build.json")

	code, _, stderr := runCLI(t, "generate", "--models", models, "--output", output)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "smithybuild: mq.v1.json: there must be exactly one service in each model file, but found 0")
	testutil.AssertNoFile(t, output)
}

func TestRun_JSONErrors(t *testing.T) {
	models := testutil.ModelsDir(t, map[string]string{
		"foo-bar.v1.json": testutil.ServiceModel("com.example#A"),
		"FooBar.V1.json":  testutil.ServiceModel("com.example#B"),
	})

	code, _, stderr := runCLI(t, "--json-errors", "generate", "--models", models,
		"--output", filepath.Join(t.TempDir(), "out.json"))
	assert.Equal(t, exitError, code)

	var detail entities.ErrorDetail
	require.NoError(t, json.Unmarshal([]byte(stderr[strings.Index(stderr, "{"):]), &detail))
	assert.Equal(t, "validation", detail.Type)
	assert.Equal(t, "duplicate_key", detail.Code)
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "usage: smithybuild"},
		{"unknown command", []string{"build"}, `unknown command "build"`},
		{"unknown flag", []string{"generate", "--nope"}, "nope"},
		{"extra arguments", []string{"schema", "extra"}, "unexpected arguments"},
		{"bad log level", []string{"--log-level", "trace", "generate", "--models", "."}, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestRun_MissingModels(t *testing.T) {
	code, _, stderr := runCLI(t, "generate")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "modelsDir")
}

func TestRun_Schema(t *testing.T) {
	code, stdout, _ := runCLI(t, "schema")
	require.Equal(t, exitOK, code)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "smithy-build.json", decoded["title"])

	path := filepath.Join(t.TempDir(), "schema.json")
	code, stdout, _ = runCLI(t, "schema", "--output", path)
	require.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestRun_NormalizeDryRun(t *testing.T) {
	models := t.TempDir()
	path := testutil.WriteFile(t, models, "mq.v1.json", `{"smithy.api#default":0}`)

	code, stdout, stderr := runCLI(t, "normalize", "--models", models, "--dry-run")
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "would normalize "+path+"\n1 changed, 0 unchanged\n", stdout)
	testutil.AssertFileContent(t, path, `{"smithy.api#default":0}`)
}

func TestRun_NormalizeRequiresConfirmation(t *testing.T) {
	models := t.TempDir()
	path := testutil.WriteFile(t, models, "mq.v1.json", `{"smithy.api#default":0}`)

	code, _, stderr := runCLI(t, "normalize", "--models", models)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "--yes")
	testutil.AssertFileContent(t, path, `{"smithy.api#default":0}`)

	code, _, stderr = runCLI(t, "normalize", "--models", models, "--yes", "--indent", "0")
	require.Equal(t, exitOK, code, stderr)
	testutil.AssertFileContent(t, path, "{}\n")
}

type stubPrompter struct {
	answer bool
	asked  string
}

func (p *stubPrompter) IsInteractive() bool { return true }

func (p *stubPrompter) Confirm(question string) (bool, error) {
	p.asked = question
	return p.answer, nil
}

func TestRun_NormalizeConfirm(t *testing.T) {
	for _, answer := range []bool{false, true} {
		models := t.TempDir()
		path := testutil.WriteFile(t, models, "mq.v1.json", `{"smithy.api#default":0}`)

		var stdout, stderr bytes.Buffer
		p := &stubPrompter{answer: answer}
		a := &app{stdout: &stdout, stderr: &stderr, prompter: p}

		code := a.run(context.Background(), []string{"--env-file", "", "normalize", "--models", models, "--indent", "0"})
		require.Equal(t, exitOK, code, stderr.String())
		assert.Contains(t, p.asked, models)

		if answer {
			testutil.AssertFileContent(t, path, "{}\n")
		} else {
			assert.Equal(t, "aborted\n", stdout.String())
			testutil.AssertFileContent(t, path, `{"smithy.api#default":0}`)
		}
	}
}

func TestRun_EnvFile(t *testing.T) {
	models := testutil.ModelsDir(t, map[string]string{
		"mq.v1.json": testutil.ServiceModel("com.example#MQ"),
	})
	output := filepath.Join(t.TempDir(), "smithy-build.json")
	dir := t.TempDir()
	envFile := testutil.WriteFile(t, dir, ".env", "SMITHYBUILD_TEST_ENV_MODELS="+models+"\n")
	cfgPath := testutil.WriteFile(t, dir, "smithybuild.yaml", "modelsDir: {{ .env.SMITHYBUILD_TEST_ENV_MODELS }}\n")
	t.Cleanup(func() { os.Unsetenv("SMITHYBUILD_TEST_ENV_MODELS") })

	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"--env-file", envFile, "--config", cfgPath, "generate", "--output", output},
		strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	_, err := os.Stat(output)
	require.NoError(t, err)
}
