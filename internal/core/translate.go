package core

import (
	"fmt"
	"strings"

	"poetry2uv/internal/types"
)

// TranslateConstraint rewrites a Poetry version constraint expression
// into its PEP 440 equivalent. Comma-separated sub-constraints are
// translated independently and rejoined in order. The function is pure:
// identical input always yields identical output.
//
//	^1.2.3  ->  >=1.2.3,<2
//	~1.2    ->  >=1.2,<1.3
//	1.2.*   ->  ==1.2.*
//	*       ->  (empty, no constraint)
//	>=1.0   ->  >=1.0
func TranslateConstraint(expression string) (string, error) {
	parts := strings.Split(strings.TrimSpace(expression), ",")
	translated := make([]string, 0, len(parts))
	for _, part := range parts {
		atom, err := translateAtom(part)
		if err != nil {
			return "", err
		}
		translated = append(translated, atom)
	}
	return strings.Join(translated, ","), nil
}

func translateAtom(raw string) (string, error) {
	parsed, err := ParseAtomicConstraint(raw)
	if err != nil {
		return "", err
	}
	switch parsed.Form {
	case types.ConstraintFormWildcard:
		return "", nil
	case types.ConstraintFormPassThrough:
		return parsed.Body, nil
	case types.ConstraintFormEquality:
		return "==" + parsed.Body, nil
	case types.ConstraintFormCaret:
		return caretRange(parsed), nil
	case types.ConstraintFormTilde:
		return tildeRange(parsed), nil
	default:
		return "", invalidConstraint(parsed.Raw)
	}
}

// caretRange allows updates that keep the first non-zero component
// fixed. The upper bound increments at that component and is truncated
// to it, so ^1.2.3 yields <2 rather than <2.0.0.
func caretRange(parsed types.ParsedConstraint) string {
	version := VersionComponents{Numbers: parsed.Numbers, Suffix: parsed.Suffix}
	index := version.FirstNonZero()
	if index < 0 {
		index = len(version.Numbers) - 1
	}
	upper := version.Bumped(index).Truncated(index)
	return fmt.Sprintf(">=%s,<%s", parsed.Body, upper)
}

// tildeRange allows patch-level updates when three or more components
// are given with a non-zero major or minor, and last-component updates
// otherwise. The upper bound keeps the component count of the input, so
// ~1.2.3 yields <1.3.0 while ~1.2 yields <1.3.
func tildeRange(parsed types.ParsedConstraint) string {
	version := VersionComponents{Numbers: parsed.Numbers, Suffix: parsed.Suffix}
	index := len(version.Numbers) - 1
	if len(version.Numbers) >= 3 {
		if first := version.FirstNonZero(); first == 0 || first == 1 {
			index = 1
		}
	}
	upper := version.Bumped(index)
	return fmt.Sprintf(">=%s,<%s", parsed.Body, upper)
}
