package smithybuild_test

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdkgen-dev/smithybuild"
	"github.com/sdkgen-dev/smithybuild/application/pipeline"
	domainerrors "github.com/sdkgen-dev/smithybuild/domain/errors"
	"github.com/sdkgen-dev/smithybuild/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleConfig(t *testing.T, files map[string]string) smithybuild.Config {
	t.Helper()
	cfg := smithybuild.DefaultConfig()
	cfg.ModelsDir = testutil.ModelsDir(t, files)
	cfg.Output = filepath.Join(t.TempDir(), "smithy-build.json")
	return cfg
}

func TestGenerate(t *testing.T) {
	cfg := exampleConfig(t, map[string]string{
		"mq.2017-11-27.json":      testutil.ServiceModel("com.amazonaws.mq#mq"),
		"sqs.2012-11-05.json":     testutil.ServiceModel("com.amazonaws.sqs#AmazonSQS"),
		"notes.txt":               "ignored",
		"s3.2006-03-01.SMITHY.js": "ignored",
	})

	m, err := smithybuild.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"mq.2017-11-27", "sqs.2012-11-05"}, m.Projections.Keys())

	entry, ok := m.Projections.Get("mq.2017-11-27")
	require.True(t, ok)
	assert.Equal(t, "github.com/aws/aws-sdk-go-v2/service/mq", entry.Plugins["go-codegen"].Module)
}

func TestGenerate_Extensions(t *testing.T) {
	cfg := exampleConfig(t, map[string]string{
		"mq.v1.smithy": testutil.ServiceModel("com.example#MQ"),
		"sqs.v1.json":  testutil.ServiceModel("com.example#SQS"),
	})
	cfg.Extensions = []string{".smithy"}

	m, err := smithybuild.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"mq.v1"}, m.Projections.Keys())
}

func TestGenerate_InvalidConfig(t *testing.T) {
	cfg := smithybuild.DefaultConfig()

	_, err := smithybuild.Generate(context.Background(), cfg)
	cfgErr := testutil.RequireErrorAs[*domainerrors.ConfigError](t, err)
	assert.Equal(t, "modelsDir", cfgErr.Field)
}

func TestGenerate_MissingModelsDir(t *testing.T) {
	cfg := smithybuild.DefaultConfig()
	cfg.ModelsDir = filepath.Join(t.TempDir(), "absent")

	_, err := smithybuild.Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	detail := smithybuild.ToErrorDetail(err)
	assert.Equal(t, "io", detail.Type)
	assert.True(t, detail.IsNotFound)
}

func TestNormalize(t *testing.T) {
	cfg := exampleConfig(t, map[string]string{
		"mq.v1.json": testutil.ServiceModel("com.example#MQ"),
	})

	report, err := smithybuild.Normalize(context.Background(), cfg, pipeline.WithDryRun(true))
	require.NoError(t, err)
	assert.Len(t, report.Changed, 1)

	report, err = smithybuild.Normalize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, report.Changed, 1)

	report, err = smithybuild.Normalize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, report.Changed)
	assert.Len(t, report.Unchanged, 1)
}

func TestNormalize_SkipsManifestInModelsDir(t *testing.T) {
	cfg := exampleConfig(t, map[string]string{
		"mq.v1.json": testutil.ServiceModel("com.example#MQ"),
	})
	cfg.Output = filepath.Join(cfg.ModelsDir, "smithy-build.json")

	_, err := smithybuild.Generate(context.Background(), cfg)
	require.NoError(t, err)
	written, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	report, err := smithybuild.Normalize(context.Background(), cfg, pipeline.WithIndent(2))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(cfg.ModelsDir, "mq.v1.json")}, report.Changed)
	testutil.AssertFileContent(t, cfg.Output, string(written))

	m, err := smithybuild.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"mq.v1"}, m.Projections.Keys())
	testutil.AssertFileContent(t, cfg.Output, string(written))
}

func TestSchema(t *testing.T) {
	raw, err := smithybuild.Schema()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "object", decoded["type"])
}

func TestToErrorDetail(t *testing.T) {
	assert.Nil(t, smithybuild.ToErrorDetail(nil))

	detail := smithybuild.ToErrorDetail(&domainerrors.DuplicateKeyError{Key: "a.b", First: "/m/a.b.json", Second: "/m/A.B.json"})
	assert.Equal(t, "validation", detail.Type)
	assert.Equal(t, "duplicate_key", detail.Code)
}
