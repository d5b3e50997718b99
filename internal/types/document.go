package types

import (
	"fmt"
	"strings"
)

// Document is the assembled PEP 621 output before serialization.
// Section order in the written file is fixed: project, kept top-level
// tables in source order, tool, dependency-groups.
type Document struct {
	Project      ProjectTable
	KeptTopLevel []NamedTable
	Tool         map[string]any
	Groups       map[string][]string
}

// ProjectTable is the [project] table. Field order is emission order.
type ProjectTable struct {
	Name                 string              `toml:"name"`
	Version              string              `toml:"version"`
	RequiresPython       string              `toml:"requires-python,omitempty"`
	Description          string              `toml:"description,omitempty"`
	Authors              []Author            `toml:"authors,omitempty"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies,omitempty"`
}

// Author is one PEP 621 author record. It marshals as an inline table
// so author lists stay on a single line in the output.
type Author struct {
	Name  string
	Email string
}

func (a Author) MarshalTOML() ([]byte, error) {
	var b strings.Builder
	b.WriteString("{ name = ")
	b.WriteString(tomlString(a.Name))
	if a.Email != "" {
		b.WriteString(", email = ")
		b.WriteString(tomlString(a.Email))
	}
	b.WriteString(" }")
	return []byte(b.String()), nil
}

// SourceRecord is one tool.uv.sources entry. Marshals as an inline
// table with the populated keys in a fixed order.
type SourceRecord struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	URL    string
	Path   string
}

func (s SourceRecord) Kind() SourceKind {
	switch {
	case s.Git != "":
		return SourceKindGit
	case s.URL != "":
		return SourceKindURL
	default:
		return SourceKindPath
	}
}

// Origin returns the location the source points at, whichever of the
// three kinds is populated.
func (s SourceRecord) Origin() string {
	switch {
	case s.Git != "":
		return s.Git
	case s.URL != "":
		return s.URL
	default:
		return s.Path
	}
}

func (s SourceRecord) MarshalTOML() ([]byte, error) {
	pairs := []struct {
		key   string
		value string
	}{
		{"git", s.Git},
		{"rev", s.Rev},
		{"tag", s.Tag},
		{"branch", s.Branch},
		{"url", s.URL},
		{"path", s.Path},
	}
	var b strings.Builder
	b.WriteByte('{')
	written := 0
	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}
		if written > 0 {
			b.WriteByte(',')
		}
		b.WriteString(" ")
		b.WriteString(pair.key)
		b.WriteString(" = ")
		b.WriteString(tomlString(pair.value))
		written++
	}
	b.WriteString(" }")
	return []byte(b.String()), nil
}

// tomlString renders a TOML basic string with the standard escapes.
func tomlString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
