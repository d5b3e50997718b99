package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"poetry2uv/internal/types"
)

// constraintPattern captures one atomic Poetry constraint: an optional
// leading symbol, dot-separated integers, an optional trailing .*
// wildcard segment and an optional pre-release or build suffix.
var constraintPattern = regexp.MustCompile(`^([=^~]?)(\d+(?:\.\d+)*)(\.\*)?([-+].*)?$`)

// passThroughOps is the ordered list of standard PEP 440 operators that
// bypass translation. Longer tokens must precede shorter ones to avoid
// false matches (e.g. ">=" before ">").
var passThroughOps = []string{"==", "!=", "<=", ">=", "<", ">"}

// ParseAtomicConstraint decomposes one comma-free constraint
// sub-expression into its tagged form. Standard comparison operators
// and bare non-numeric text pass through untouched; malformed caret and
// tilde expressions are rejected.
func ParseAtomicConstraint(raw string) (types.ParsedConstraint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "*" {
		return types.ParsedConstraint{
			Form: types.ConstraintFormWildcard,
			Raw:  trimmed,
			Body: trimmed,
		}, nil
	}
	for _, op := range passThroughOps {
		if strings.HasPrefix(trimmed, op) {
			return passThrough(trimmed), nil
		}
	}

	match := constraintPattern.FindStringSubmatch(trimmed)
	if match == nil {
		if strings.HasPrefix(trimmed, "^") || strings.HasPrefix(trimmed, "~") {
			return types.ParsedConstraint{}, invalidConstraint(trimmed)
		}
		if first, _ := utf8.DecodeRuneInString(trimmed); first != utf8.RuneError &&
			!unicode.IsLetter(first) && !unicode.IsDigit(first) {
			return types.ParsedConstraint{}, invalidConstraint(trimmed)
		}
		return passThrough(trimmed), nil
	}

	symbol := match[1]
	numbers, ok := ParseVersionNumbers(match[2])
	if !ok {
		return types.ParsedConstraint{}, invalidConstraint(trimmed)
	}
	parsed := types.ParsedConstraint{
		Numbers:  numbers,
		Suffix:   match[4],
		Wildcard: match[3] != "",
		Raw:      trimmed,
		Body:     trimmed[len(symbol):],
	}
	switch symbol {
	case "", "=":
		parsed.Form = types.ConstraintFormEquality
	case "^":
		parsed.Form = types.ConstraintFormCaret
	case "~":
		parsed.Form = types.ConstraintFormTilde
	}
	// A wildcard segment only makes sense as a literal equality; a
	// range boundary cannot be computed from it.
	if parsed.Wildcard && parsed.Form != types.ConstraintFormEquality {
		return types.ParsedConstraint{}, invalidConstraint(trimmed)
	}
	return parsed, nil
}

func passThrough(trimmed string) types.ParsedConstraint {
	return types.ParsedConstraint{
		Form: types.ConstraintFormPassThrough,
		Raw:  trimmed,
		Body: trimmed,
	}
}

func invalidConstraint(expression string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid version constraint: %s", expression))
}
