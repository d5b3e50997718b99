package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poetry2uv/internal/adapters"
	"poetry2uv/internal/core"
	"poetry2uv/internal/types"
	"poetry2uv/tests/testutil"
)

// TestGoldenConvert converts the sample fixture project and compares
// both written documents against committed golden files. If the golden
// files do not exist yet (first run), they are written so they can be
// committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenConvert(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	fixtureDir := filepath.Join(root, "fixtures")

	manifests := adapters.NewManifestFileAdapter()
	manifest, err := manifests.LoadManifest(filepath.Join(fixtureDir, "pyproject-sample.toml"))
	require.NoError(t, err)

	converter := core.NewConverter(manifests, adapters.NewFirstChoiceChooser(), fixtureDir)
	doc, members, err := converter.Convert(t.Context(), manifest, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"widgets/"}, members)

	pins, err := adapters.NewRequirementsFileAdapter().
		ReadPinned(filepath.Join(fixtureDir, "requirements-sample.txt"))
	require.NoError(t, err)

	outDir := t.TempDir()
	documents := adapters.NewDocumentFileAdapter()
	require.NoError(t, documents.WriteDocument(filepath.Join(outDir, "pyproject.toml"), doc))
	require.NoError(t, documents.WriteDocument(
		filepath.Join(outDir, "pyproject_pinned.toml"), core.PinnedVariant(doc, pins)))

	// Compare each output against golden file
	goldenFiles := map[string]string{
		"pyproject.toml":        filepath.Join(outDir, "pyproject.toml"),
		"pyproject_pinned.toml": filepath.Join(outDir, "pyproject_pinned.toml"),
	}

	for name, actualPath := range goldenFiles {
		t.Run(name, func(t *testing.T) {
			actual, err := os.ReadFile(actualPath)
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				// Golden file doesn't exist yet -- write it.
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
		})
	}
}

// TestGoldenConvertStructure verifies the structural properties of the
// conversion independent of exact serialization -- entry order, source
// registration, group contents.
func TestGoldenConvertStructure(t *testing.T) {
	root := testutil.RepoRoot(t)
	fixtureDir := filepath.Join(root, "fixtures")

	manifests := adapters.NewManifestFileAdapter()
	manifest, err := manifests.LoadManifest(filepath.Join(fixtureDir, "pyproject-sample.toml"))
	require.NoError(t, err)

	converter := core.NewConverter(manifests, adapters.NewFirstChoiceChooser(), fixtureDir)
	doc, _, err := converter.Convert(t.Context(), manifest, false)
	require.NoError(t, err)

	t.Run("dependencies keep document order", func(t *testing.T) {
		assert.Equal(t, []string{
			"requests>=2.31.0,<3",
			"click>=8.1,<8.2",
			"pyyaml==5.4.*",
			"orjson[numpy]>=3.10,<3.11",
			"widgets-lib",
			"httpx",
		}, doc.Project.Dependencies)
	})

	t.Run("python requirement becomes requires-python", func(t *testing.T) {
		assert.Equal(t, ">=3.11,<4", doc.Project.RequiresPython)
	})

	t.Run("alternate sources registered", func(t *testing.T) {
		uv, ok := doc.Tool["uv"].(map[string]any)
		require.True(t, ok)
		sources, ok := uv["sources"].(map[string]types.SourceRecord)
		require.True(t, ok)
		assert.Equal(t, "https://github.com/encode/httpx.git", sources["httpx"].Git)
		assert.Equal(t, "0.27.0", sources["httpx"].Tag)
		assert.Equal(t, "widgets/", sources["widgets-lib"].Path)
	})

	t.Run("groups carry translated entries", func(t *testing.T) {
		assert.Equal(t, map[string][]string{
			"dev":  {"pytest>=7.0,<8"},
			"docs": {"sphinx>=7.2,<8"},
		}, doc.Groups)
	})

	t.Run("optional dependency left to extras", func(t *testing.T) {
		for _, entry := range doc.Project.Dependencies {
			assert.NotContains(t, entry, "fast-json")
		}
		assert.Equal(t, map[string][]string{"speed": {"fast-json"}}, doc.Project.OptionalDependencies)
	})

	t.Run("poetry settings replaced, other tools kept", func(t *testing.T) {
		assert.NotContains(t, doc.Tool, "poetry")
		assert.Contains(t, doc.Tool, "ruff")
		assert.Contains(t, doc.Tool, "mypy")
	})
}

// TestGoldenPinnedVariant verifies that the secondary document swaps the
// dependency list for the exported pins and clears the groups.
func TestGoldenPinnedVariant(t *testing.T) {
	root := testutil.RepoRoot(t)
	fixtureDir := filepath.Join(root, "fixtures")

	manifests := adapters.NewManifestFileAdapter()
	manifest, err := manifests.LoadManifest(filepath.Join(fixtureDir, "pyproject-sample.toml"))
	require.NoError(t, err)

	converter := core.NewConverter(manifests, adapters.NewFirstChoiceChooser(), fixtureDir)
	doc, _, err := converter.Convert(t.Context(), manifest, false)
	require.NoError(t, err)

	pins, err := adapters.NewRequirementsFileAdapter().
		ReadPinned(filepath.Join(fixtureDir, "requirements-sample.txt"))
	require.NoError(t, err)

	pinned := core.PinnedVariant(doc, pins)
	assert.Equal(t, "acme-pipeline", pinned.Project.Name)
	assert.Equal(t, []string{
		"certifi==2024.7.4",
		"charset-normalizer==3.3.2",
		"click==8.1.7",
		"idna==3.7",
		"requests==2.31.0",
		"urllib3==2.2.2",
	}, pinned.Project.Dependencies)
	assert.Empty(t, pinned.Groups)

	// The main document is untouched by the pinned copy.
	assert.Contains(t, doc.Project.Dependencies, "requests>=2.31.0,<3")
	assert.Len(t, doc.Groups, 2)
}
