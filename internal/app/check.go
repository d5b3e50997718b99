package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"poetry2uv/internal/core"
)

func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	inputPath := strings.TrimSpace(req.InputPath)
	if inputPath == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input pyproject path is required")
	}
	projectDir := strings.TrimSpace(req.ProjectDir)
	if projectDir == "" {
		projectDir = "."
	}

	doc, err := s.Documents.ReadDocument(resolveUnder(projectDir, inputPath))
	if err != nil {
		return CheckResult{}, err
	}
	checker := core.NewDocumentChecker()
	report, err := checker.CheckDocument(ctx, doc)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{
		ProjectName:  report.ProjectName,
		Dependencies: report.Dependencies,
		Optional:     report.Optional,
		Groups:       report.Groups,
		Specifiers:   report.Specifiers,
	}, nil
}
