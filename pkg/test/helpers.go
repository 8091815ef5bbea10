package test

import (
	"os"
	"path/filepath"
	"testing"

	"azcli/pkg/system"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// SetupMockFilesystem swaps system.AppFs for an in-memory filesystem and restores
// the previous one when the test ends.
func SetupMockFilesystem(t *testing.T) afero.Fs {
	t.Helper()
	prev := system.AppFs
	fs := afero.NewMemMapFs()
	system.AppFs = fs
	t.Cleanup(func() {
		system.AppFs = prev
	})
	return fs
}

// CreateTestFile creates a file with content in the test filesystem.
func CreateTestFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	err := fs.MkdirAll(filepath.Dir(path), 0755)
	require.NoError(t, err)
	err = afero.WriteFile(fs, path, []byte(content), 0644)
	require.NoError(t, err)
}

// AssertLogContains checks that the logger captured a message containing the substring.
func AssertLogContains(t *testing.T, logger *MockLogger, substring string) {
	t.Helper()
	require.True(t, logger.HasMessage(substring), "Log should contain: %s", substring)
}

// ClearAzcliEnv unsets every AZCLI_* variable for the duration of the test.
func ClearAzcliEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"AZCLI_AZ_PATH",
		"AZCLI_SUBSCRIPTION",
		"AZCLI_OUTPUT",
		"AZCLI_QUERY",
		"AZCLI_DEBUG",
		"AZCLI_VERBOSE",
	} {
		// Setenv registers the restore; Unsetenv makes the variable absent.
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}
