package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"poetry2uv/internal/core"
)

// pinnedFileName is the fixed name of the secondary document whose
// dependencies are exact pins from an exported requirements listing.
const pinnedFileName = "pyproject_pinned.toml"

func (s Service) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	inputPath := strings.TrimSpace(req.InputPath)
	if inputPath == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input pyproject path is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output pyproject path is required")
	}
	projectDir := strings.TrimSpace(req.ProjectDir)
	if projectDir == "" {
		projectDir = "."
	}

	manifest, err := s.Manifests.LoadManifest(resolveUnder(projectDir, inputPath))
	if err != nil {
		return ConvertResult{}, err
	}

	chooser := s.Chooser
	if req.Interactive && s.PromptChooser != nil {
		chooser = s.PromptChooser
	}
	converter := core.NewConverter(s.Names, chooser, projectDir)
	doc, members, err := converter.Convert(ctx, manifest, req.KeepPoetry)
	if err != nil {
		return ConvertResult{}, err
	}
	core.ApplyRemovals(ctx, &doc, req.Remove)

	// Read the pins before writing anything so a missing requirements
	// listing does not leave a half-finished document pair behind.
	var pins []string
	requirements := strings.TrimSpace(req.Requirements)
	if requirements != "" {
		pins, err = s.Requirements.ReadPinned(resolveUnder(projectDir, requirements))
		if err != nil {
			return ConvertResult{}, err
		}
	}

	if err := s.Documents.WriteDocument(resolveUnder(projectDir, outputPath), doc); err != nil {
		return ConvertResult{}, err
	}
	result := ConvertResult{
		ProjectName:  doc.Project.Name,
		OutputPath:   resolveUnder(projectDir, outputPath),
		Dependencies: len(doc.Project.Dependencies),
		Groups:       len(doc.Groups),
		Members:      members,
	}
	if requirements != "" {
		pinnedPath := filepath.Join(projectDir, pinnedFileName)
		if err := s.Documents.WriteDocument(pinnedPath, core.PinnedVariant(doc, pins)); err != nil {
			return ConvertResult{}, err
		}
		result.PinnedPath = pinnedPath
	}
	return result, nil
}

// resolveUnder joins path under dir unless path is already absolute.
func resolveUnder(dir string, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
