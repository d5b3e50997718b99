package types

// PoetryManifest is the decoded view of a Poetry-style pyproject document.
// Dependency tables keep their document order; tables the conversion does
// not own are carried opaquely so they survive into the output.
type PoetryManifest struct {
	Name        string
	Version     string
	Description string
	Authors     []string

	Dependencies    []DependencyEntry
	DevDependencies []DependencyEntry
	Groups          []DependencyGroup
	Extras          []ExtraGroup

	// Poetry holds the raw tool.poetry table for keep-poetry passthrough.
	Poetry map[string]any
	// BuildSystem holds the raw build-system table, dropped from the
	// output unless keep-poetry is set.
	BuildSystem map[string]any
	// KeptTool lists tool.* tables other than poetry, in document order.
	KeptTool []NamedTable
	// KeptTopLevel lists top-level tables other than tool, build-system
	// and the tables the conversion owns, in document order.
	KeptTopLevel []NamedTable
}

type DependencyEntry struct {
	Name  string
	Value DependencyValue
}

type DependencyGroup struct {
	Name         string
	Dependencies []DependencyEntry
}

type ExtraGroup struct {
	Name     string
	Packages []string
}

// NamedTable pairs a table key with its raw decoded value, preserving
// the position the table held in the source document.
type NamedTable struct {
	Key   string
	Value any
}

// DependencyValue is one of three shapes: a plain constraint string, a
// structured record, or a list of alternative candidates. Exactly one
// of Record and Choices is set for the non-string shapes.
type DependencyValue struct {
	Constraint string
	Record     *DependencyRecord
	Choices    []DependencyValue
}

func (v DependencyValue) IsRecord() bool { return v.Record != nil }

func (v DependencyValue) IsChoices() bool { return len(v.Choices) > 0 }

// DependencyRecord is the structured form of a dependency entry.
type DependencyRecord struct {
	Version  string
	Extras   []string
	Git      string
	Rev      string
	Tag      string
	Branch   string
	URL      string
	Path     string
	Optional bool
	Develop  *bool

	// Unknown lists record keys the conversion does not understand,
	// sorted. A non-empty list aborts the conversion.
	Unknown []string
}

func (r DependencyRecord) Kind() (SourceKind, bool) {
	switch {
	case r.Git != "":
		return SourceKindGit, true
	case r.URL != "":
		return SourceKindURL, true
	case r.Path != "":
		return SourceKindPath, true
	default:
		return "", false
	}
}
