// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// SeedProject copies the sample fixture set into a fresh temporary
// project directory: the Poetry manifest under its in-place name, the
// widgets member project, and the exported requirements listing.
func SeedProject(t *testing.T) string {
	t.Helper()
	root := RepoRoot(t)
	dir := t.TempDir()

	copyFile(t,
		filepath.Join(root, "fixtures", "pyproject-sample.toml"),
		filepath.Join(dir, "pyproject.toml"))
	copyFile(t,
		filepath.Join(root, "fixtures", "requirements-sample.txt"),
		filepath.Join(dir, "requirements-sample.txt"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "widgets"), 0o755))
	copyFile(t,
		filepath.Join(root, "fixtures", "widgets", "pyproject.toml"),
		filepath.Join(dir, "widgets", "pyproject.toml"))
	return dir
}

func copyFile(t *testing.T, from string, to string) {
	t.Helper()
	data, err := os.ReadFile(from)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(to, data, 0o644))
}
