package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ServiceModel returns a Smithy JSON AST document declaring one service per
// id, plus an operation and a structure with a defaulted member.
func ServiceModel(ids ...string) string {
	shapes := []string{
		`"com.example#DoThing": {"type": "operation"}`,
		`"com.example#Settings": {"type": "structure", "members": {` +
			`"Retries": {"target": "smithy.api#Integer", "traits": {"smithy.api#default": 0}}, ` +
			`"Region": {"target": "smithy.api#String", "traits": {"smithy.api#default": ""}}}}`,
	}
	for _, id := range ids {
		shapes = append(shapes, fmt.Sprintf(`"%s": {"type": "service", "version": "2017-11-27"}`, id))
	}
	return fmt.Sprintf(`{"smithy": "2.0", "shapes": {%s}}`, strings.Join(shapes, ", "))
}

// WriteFile writes content to name under dir, creating parent directories,
// and returns the absolute path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ModelsDir creates a temporary directory holding the given files.
func ModelsDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}
