package types

// ConstraintForm tags the parsed shape of one atomic version constraint.
type ConstraintForm string

const (
	ConstraintFormEquality    ConstraintForm = "equality"
	ConstraintFormCaret       ConstraintForm = "caret"
	ConstraintFormTilde       ConstraintForm = "tilde"
	ConstraintFormWildcard    ConstraintForm = "wildcard"
	ConstraintFormPassThrough ConstraintForm = "pass-through"
)

type SourceKind string

const (
	SourceKindGit  SourceKind = "git"
	SourceKindURL  SourceKind = "url"
	SourceKindPath SourceKind = "path"
)
