package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"poetry2uv/internal/ports"
	"poetry2uv/internal/types"
)

// ManifestFileAdapter reads Poetry pyproject documents from disk. Keys
// inside the dependency tables keep their document order, recovered
// from the decoder metadata.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) LoadManifest(path string) (types.PoetryManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PoetryManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("pyproject file not found").
			WithCause(err)
	}
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return types.PoetryManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse pyproject toml").
			WithCause(err)
	}

	tool, _ := raw["tool"].(map[string]any)
	poetry, _ := tool["poetry"].(map[string]any)
	if poetry == nil {
		return types.PoetryManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pyproject has no tool.poetry table")
	}

	manifest := types.PoetryManifest{Poetry: poetry}
	manifest.Name, _ = poetry["name"].(string)
	manifest.Version, _ = poetry["version"].(string)
	manifest.Description, _ = poetry["description"].(string)
	manifest.Authors = stringList(poetry["authors"])
	manifest.BuildSystem, _ = raw["build-system"].(map[string]any)

	manifest.Dependencies, err = decodeDependencyTable(
		poetry["dependencies"],
		orderedChildKeys(meta, "tool", "poetry", "dependencies"))
	if err != nil {
		return types.PoetryManifest{}, err
	}
	manifest.DevDependencies, err = decodeDependencyTable(
		poetry["dev-dependencies"],
		orderedChildKeys(meta, "tool", "poetry", "dev-dependencies"))
	if err != nil {
		return types.PoetryManifest{}, err
	}

	for _, name := range orderedChildKeys(meta, "tool", "poetry", "group") {
		group := tableIn(poetry, "group", name)
		dependencies, err := decodeDependencyTable(
			group["dependencies"],
			orderedChildKeys(meta, "tool", "poetry", "group", name, "dependencies"))
		if err != nil {
			return types.PoetryManifest{}, err
		}
		manifest.Groups = append(manifest.Groups, types.DependencyGroup{
			Name:         name,
			Dependencies: dependencies,
		})
	}

	extras, _ := poetry["extras"].(map[string]any)
	for _, name := range orderedChildKeys(meta, "tool", "poetry", "extras") {
		manifest.Extras = append(manifest.Extras, types.ExtraGroup{
			Name:     name,
			Packages: stringList(extras[name]),
		})
	}

	for _, key := range orderedChildKeys(meta, "tool") {
		if key == "poetry" {
			continue
		}
		manifest.KeptTool = append(manifest.KeptTool, types.NamedTable{Key: key, Value: tool[key]})
	}
	for _, key := range orderedChildKeys(meta) {
		// The conversion owns project, tool and build-system.
		if key == "project" || key == "tool" || key == "build-system" {
			continue
		}
		manifest.KeptTopLevel = append(manifest.KeptTopLevel, types.NamedTable{Key: key, Value: raw[key]})
	}
	return manifest, nil
}

// LookupProjectName reports the declared name of the project in dir,
// preferring tool.poetry.name over project.name. A missing pyproject
// is not an error; the caller falls back to path-derived naming.
func (a ManifestFileAdapter) LookupProjectName(dir string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read member pyproject").
			WithCause(err)
	}
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Name string `toml:"name"`
			} `toml:"poetry"`
		} `toml:"tool"`
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse member pyproject").
			WithCause(err)
	}
	if pyproject.Tool.Poetry.Name != "" {
		return pyproject.Tool.Poetry.Name, true, nil
	}
	if pyproject.Project.Name != "" {
		return pyproject.Project.Name, true, nil
	}
	return "", false, nil
}

func decodeDependencyTable(value any, order []string) ([]types.DependencyEntry, error) {
	table, _ := value.(map[string]any)
	if len(table) == 0 {
		return nil, nil
	}
	entries := make([]types.DependencyEntry, 0, len(table))
	for _, name := range order {
		item, ok := table[name]
		if !ok {
			continue
		}
		decoded, err := decodeDependencyValue(name, item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, types.DependencyEntry{Name: name, Value: decoded})
	}
	return entries, nil
}

func decodeDependencyValue(name string, value any) (types.DependencyValue, error) {
	switch v := value.(type) {
	case string:
		return types.DependencyValue{Constraint: v}, nil
	case map[string]any:
		record, err := decodeDependencyRecord(v)
		if err != nil {
			return types.DependencyValue{}, err
		}
		return types.DependencyValue{Record: &record}, nil
	case []any:
		choices := make([]types.DependencyValue, 0, len(v))
		for _, item := range v {
			choice, err := decodeDependencyValue(name, item)
			if err != nil {
				return types.DependencyValue{}, err
			}
			choices = append(choices, choice)
		}
		return types.DependencyValue{Choices: choices}, nil
	case []map[string]any:
		// Array-of-tables syntax decodes to typed maps.
		choices := make([]types.DependencyValue, 0, len(v))
		for _, item := range v {
			choice, err := decodeDependencyValue(name, item)
			if err != nil {
				return types.DependencyValue{}, err
			}
			choices = append(choices, choice)
		}
		return types.DependencyValue{Choices: choices}, nil
	default:
		return types.DependencyValue{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported value for dependency %s", name))
	}
}

func decodeDependencyRecord(table map[string]any) (types.DependencyRecord, error) {
	record := types.DependencyRecord{}
	var err error
	for key, value := range table {
		switch key {
		case "version":
			record.Version, err = recordString(key, value)
		case "extras":
			record.Extras = stringList(value)
		case "git":
			record.Git, err = recordString(key, value)
		case "rev":
			record.Rev, err = recordString(key, value)
		case "tag":
			record.Tag, err = recordString(key, value)
		case "branch":
			record.Branch, err = recordString(key, value)
		case "url":
			record.URL, err = recordString(key, value)
		case "path":
			record.Path, err = recordString(key, value)
		case "optional":
			record.Optional, err = recordBool(key, value)
		case "develop":
			var develop bool
			develop, err = recordBool(key, value)
			record.Develop = &develop
		default:
			record.Unknown = append(record.Unknown, key)
		}
		if err != nil {
			return types.DependencyRecord{}, err
		}
	}
	sort.Strings(record.Unknown)
	return record, nil
}

func recordString(key string, value any) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependency key %s must be a string", key))
	}
	return text, nil
}

func recordBool(key string, value any) (bool, error) {
	enabled, ok := value.(bool)
	if !ok {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependency key %s must be a boolean", key))
	}
	return enabled, nil
}

// stringList converts a decoded TOML array to its string elements.
func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := item.(string); ok {
			list = append(list, text)
		}
	}
	return list
}

func tableIn(table map[string]any, keys ...string) map[string]any {
	current := table
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// orderedChildKeys lists the direct child keys of the table at prefix
// in document order. Nested keys register their top segment once, so
// implicit tables keep the position of their first mention.
func orderedChildKeys(meta toml.MetaData, prefix ...string) []string {
	seen := map[string]struct{}{}
	var ordered []string
	for _, key := range meta.Keys() {
		if len(key) <= len(prefix) {
			continue
		}
		matched := true
		for i, part := range prefix {
			if key[i] != part {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		child := key[len(prefix)]
		if _, ok := seen[child]; ok {
			continue
		}
		seen[child] = struct{}{}
		ordered = append(ordered, child)
	}
	return ordered
}

var _ ports.ManifestPort = ManifestFileAdapter{}
var _ ports.ProjectNamePort = ManifestFileAdapter{}
