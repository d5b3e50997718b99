package adapters

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"poetry2uv/internal/ports"
)

// FirstChoiceChooser picks the first alternative without prompting,
// keeping non-interactive conversions deterministic.
type FirstChoiceChooser struct{}

func NewFirstChoiceChooser() FirstChoiceChooser {
	return FirstChoiceChooser{}
}

func (c FirstChoiceChooser) Choose(ctx context.Context, pkg string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no alternatives to choose from")
	}
	log.Ctx(ctx).Debug().
		Str("package", pkg).
		Str("choice", options[0]).
		Int("alternatives", len(options)).
		Msg("defaulting to first alternative constraint")
	return 0, nil
}

var _ ports.ChooserPort = FirstChoiceChooser{}
