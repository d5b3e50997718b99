package adapters

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"poetry2uv/internal/ports"
	"poetry2uv/internal/types"
)

// DocumentFileAdapter writes and reads converted pyproject documents.
// Each top-level section is encoded on its own so the file keeps a
// fixed order: project, carried top-level tables, tool,
// dependency-groups.
type DocumentFileAdapter struct{}

func NewDocumentFileAdapter() DocumentFileAdapter {
	return DocumentFileAdapter{}
}

func (a DocumentFileAdapter) WriteDocument(path string, doc types.Document) error {
	var buf bytes.Buffer
	if err := encodeSection(&buf, map[string]any{"project": doc.Project}); err != nil {
		return err
	}
	for _, table := range doc.KeptTopLevel {
		if err := encodeSection(&buf, map[string]any{table.Key: table.Value}); err != nil {
			return err
		}
	}
	if len(doc.Tool) > 0 {
		if err := encodeSection(&buf, map[string]any{"tool": doc.Tool}); err != nil {
			return err
		}
	}
	if doc.Groups != nil {
		if err := encodeSection(&buf, map[string]any{"dependency-groups": doc.Groups}); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write pyproject").
			WithCause(err)
	}
	return nil
}

// ReadDocument decodes the sections the checks consume. Top-level
// tables outside project, tool and dependency-groups are not retained.
func (a DocumentFileAdapter) ReadDocument(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("pyproject file not found").
			WithCause(err)
	}
	var decoded struct {
		Project types.ProjectTable  `toml:"project"`
		Tool    map[string]any      `toml:"tool"`
		Groups  map[string][]string `toml:"dependency-groups"`
	}
	if err := toml.Unmarshal(data, &decoded); err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse pyproject toml").
			WithCause(err)
	}
	return types.Document{
		Project: decoded.Project,
		Tool:    decoded.Tool,
		Groups:  decoded.Groups,
	}, nil
}

func encodeSection(buf *bytes.Buffer, section any) error {
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	encoder := toml.NewEncoder(buf)
	encoder.Indent = ""
	if err := encoder.Encode(section); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode pyproject section").
			WithCause(err)
	}
	return nil
}

var _ ports.DocumentPort = DocumentFileAdapter{}
