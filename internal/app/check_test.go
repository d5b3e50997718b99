package app

import (
	"os"
	"path/filepath"
	"testing"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckApp(t *testing.T) {
	dir := writeProject(t)

	service := NewService()
	_, err := service.Convert(t.Context(), ConvertRequest{
		InputPath:  "pyproject.toml",
		OutputPath: "pyproject_out.toml",
		ProjectDir: dir,
	})
	require.NoError(t, err)

	result, err := service.Check(t.Context(), CheckRequest{
		InputPath:  "pyproject_out.toml",
		ProjectDir: dir,
	})
	require.NoError(t, err)

	if diff := cmp.Diff("demo-service", result.ProjectName); diff != "" {
		t.Fatalf("unexpected project name (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, result.Dependencies)
	assert.Equal(t, 1, result.Optional)
	assert.Equal(t, 2, result.Groups)
	// requires-python, requests, orjson, pytest, sphinx.
	assert.Equal(t, 5, result.Specifiers)
}

func TestCheckAppBadSpecifier(t *testing.T) {
	dir := t.TempDir()
	document := `[project]
name = "broken"
version = "1.0.0"
dependencies = ["requests>=not.a.version###"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(document), 0644))

	service := NewService()
	_, err := service.Check(t.Context(), CheckRequest{InputPath: "pyproject.toml", ProjectDir: dir})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	var builder *errbuilder.ErrBuilder
	require.ErrorAs(t, err, &builder)
	assert.Contains(t, builder.Msg, "project.dependencies")
}

func TestCheckAppMissingInput(t *testing.T) {
	service := NewService()
	_, err := service.Check(t.Context(), CheckRequest{InputPath: "pyproject.toml", ProjectDir: t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestCheckAppRequiredPath(t *testing.T) {
	service := NewService()
	_, err := service.Check(t.Context(), CheckRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
