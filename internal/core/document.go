package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"poetry2uv/internal/types"
)

// ApplyRemovals deletes the given dotted key paths from the assembled
// document. Unknown or unsupported paths are logged and skipped so a
// typo does not abort an otherwise finished conversion.
func ApplyRemovals(ctx context.Context, doc *types.Document, removals []string) {
	for _, dotted := range removals {
		removePath(ctx, doc, strings.TrimSpace(dotted))
	}
}

func removePath(ctx context.Context, doc *types.Document, dotted string) {
	if dotted == "" {
		return
	}
	parts := strings.Split(dotted, ".")
	switch parts[0] {
	case "project":
		removeProjectField(ctx, &doc.Project, parts[1:], dotted)
	case "tool":
		if len(parts) == 1 {
			doc.Tool = nil
			return
		}
		removeFromMap(ctx, doc.Tool, parts[1:], dotted)
	case "dependency-groups":
		switch len(parts) {
		case 1:
			doc.Groups = nil
		case 2:
			if _, ok := doc.Groups[parts[1]]; !ok {
				warnRemoval(ctx, dotted, "not found")
				return
			}
			delete(doc.Groups, parts[1])
		default:
			warnRemoval(ctx, dotted, "not supported")
		}
	default:
		removeKeptTable(ctx, doc, parts, dotted)
	}
}

func removeProjectField(ctx context.Context, project *types.ProjectTable, parts []string, dotted string) {
	if len(parts) != 1 {
		warnRemoval(ctx, dotted, "not supported")
		return
	}
	switch parts[0] {
	case "requires-python":
		project.RequiresPython = ""
	case "description":
		project.Description = ""
	case "authors":
		project.Authors = nil
	case "optional-dependencies":
		project.OptionalDependencies = nil
	default:
		warnRemoval(ctx, dotted, "not supported")
	}
}

func removeKeptTable(ctx context.Context, doc *types.Document, parts []string, dotted string) {
	for i, table := range doc.KeptTopLevel {
		if table.Key != parts[0] {
			continue
		}
		if len(parts) == 1 {
			doc.KeptTopLevel = append(doc.KeptTopLevel[:i], doc.KeptTopLevel[i+1:]...)
			return
		}
		nested, ok := table.Value.(map[string]any)
		if !ok {
			warnRemoval(ctx, dotted, "not a table")
			return
		}
		removeFromMap(ctx, nested, parts[1:], dotted)
		return
	}
	warnRemoval(ctx, dotted, "not found")
}

func removeFromMap(ctx context.Context, table map[string]any, parts []string, dotted string) {
	current := table
	for i := 0; i < len(parts)-1; i++ {
		switch next := current[parts[i]].(type) {
		case map[string]any:
			current = next
		case map[string]types.SourceRecord:
			// Source tables hold typed records; only their direct
			// entries can be removed.
			if i != len(parts)-2 {
				warnRemoval(ctx, dotted, "not supported")
				return
			}
			leaf := parts[len(parts)-1]
			if _, ok := next[leaf]; !ok {
				warnRemoval(ctx, dotted, "not found")
				return
			}
			delete(next, leaf)
			return
		default:
			warnRemoval(ctx, dotted, "not found")
			return
		}
	}
	leaf := parts[len(parts)-1]
	if _, ok := current[leaf]; !ok {
		warnRemoval(ctx, dotted, "not found")
		return
	}
	delete(current, leaf)
}

func warnRemoval(ctx context.Context, dotted string, reason string) {
	log.Ctx(ctx).Warn().
		Str("path", dotted).
		Str("reason", reason).
		Msg("removal path skipped")
}

// PinnedVariant returns a copy of the document whose dependency list is
// replaced by exact pins and whose dependency groups are cleared.
func PinnedVariant(doc types.Document, pins []string) types.Document {
	pinned := doc
	pinned.Project.Dependencies = append(make([]string, 0, len(pins)), pins...)
	pinned.Groups = map[string][]string{}
	return pinned
}
