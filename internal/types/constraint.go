package types

// ParsedConstraint is the decomposed form of one atomic constraint
// expression. Raw keeps the sub-expression exactly as given; Body is
// Raw without the leading symbol, so equality and range rewrites can
// re-emit the version text untouched.
type ParsedConstraint struct {
	Form     ConstraintForm
	Numbers  []int
	Suffix   string
	Wildcard bool
	Raw      string
	Body     string
}
