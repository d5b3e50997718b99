package app

import (
	"context"

	"poetry2uv/internal/core"
)

func (s Service) Translate(ctx context.Context, req TranslateRequest) (TranslateResult, error) {
	translated, err := core.TranslateConstraint(req.Expression)
	if err != nil {
		return TranslateResult{}, err
	}
	return TranslateResult{Expression: req.Expression, Translated: translated}, nil
}
