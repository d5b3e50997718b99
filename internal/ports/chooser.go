package ports

import "context"

// ChooserPort selects one candidate when a dependency declares several
// alternative constraints. Implementations return the chosen index into
// options. The non-interactive default picks the first candidate so
// conversions stay deterministic.
type ChooserPort interface {
	Choose(ctx context.Context, pkg string, options []string) (int, error)
}
