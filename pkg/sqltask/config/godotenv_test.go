package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	lines []string
}

func (l *testLogger) Debugf(format string, _ ...any) { l.lines = append(l.lines, format) }
func (l *testLogger) Infof(format string, _ ...any)  { l.lines = append(l.lines, format) }
func (l *testLogger) Warnf(format string, _ ...any)  { l.lines = append(l.lines, format) }
func (l *testLogger) Errorf(format string, _ ...any) { l.lines = append(l.lines, format) }

func writeEnv(t *testing.T, dir, name, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestEnvLoader_DefaultAndOverride(t *testing.T) {
	dir := t.TempDir()

	writeEnv(t, dir, ".env", "SQLTASK_TEST_DIALECT=mysql\nSQLTASK_TEST_NAME=base\n")
	writeEnv(t, dir, ".staging.env", "SQLTASK_TEST_DIALECT=sqlite\n")

	t.Setenv("APP_ENV", "staging")
	t.Setenv("SQLTASK_TEST_DIALECT", "")
	t.Setenv("SQLTASK_TEST_NAME", "")

	require.NoError(t, os.Unsetenv("SQLTASK_TEST_DIALECT"))
	require.NoError(t, os.Unsetenv("SQLTASK_TEST_NAME"))

	cfg := NewEnvFile(dir, &testLogger{})

	assert.Equal(t, "sqlite", cfg.Get("SQLTASK_TEST_DIALECT"))
	assert.Equal(t, "base", cfg.Get("SQLTASK_TEST_NAME"))
}

func TestEnvLoader_EnvironmentTakesPrecedence(t *testing.T) {
	dir := t.TempDir()

	writeEnv(t, dir, ".env", "SQLTASK_TEST_HOST=from-file\n")
	t.Setenv("SQLTASK_TEST_HOST", "from-env")

	cfg := NewEnvFile(dir, &testLogger{})

	assert.Equal(t, "from-env", cfg.Get("SQLTASK_TEST_HOST"))
}

func TestEnvLoader_MissingFolder(t *testing.T) {
	l := &testLogger{}
	cfg := NewEnvFile(filepath.Join(t.TempDir(), "missing"), l)

	assert.Equal(t, "fallback", cfg.GetOrDefault("SQLTASK_TEST_UNSET_KEY", "fallback"))
	assert.NotEmpty(t, l.lines)
}

func TestMockConfig(t *testing.T) {
	cfg := NewMockConfig(map[string]string{"DB_DIALECT": "sqlite", "EMPTY": ""})

	assert.Equal(t, "sqlite", cfg.Get("DB_DIALECT"))
	assert.Equal(t, "x", cfg.GetOrDefault("EMPTY", "x"))
	assert.Equal(t, "y", cfg.GetOrDefault("MISSING", "y"))
}
