package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"poetry2uv/internal/ports"
	"poetry2uv/internal/shared"
	"poetry2uv/internal/types"
)

const (
	pythonDependency = "python"
	devGroupName     = "dev"
)

// authorPattern splits "Jane Doe <jane@example.com>" into name and
// email. Strings without an address become name-only records.
var authorPattern = regexp.MustCompile(`^(.*?)\s+<([^>]+)>$`)

// Converter assembles a PEP 621 document from a Poetry manifest. Path
// dependency names are resolved through the ProjectNamePort; entries
// with several alternative constraints are settled by the ChooserPort.
type Converter struct {
	Names      ports.ProjectNamePort
	Chooser    ports.ChooserPort
	ProjectDir string
}

func NewConverter(names ports.ProjectNamePort, chooser ports.ChooserPort, projectDir string) Converter {
	return Converter{Names: names, Chooser: chooser, ProjectDir: projectDir}
}

// Convert walks the manifest and produces the output document plus the
// list of workspace member paths gathered from path dependencies.
func (c Converter) Convert(ctx context.Context, manifest types.PoetryManifest, keepPoetry bool) (types.Document, []string, error) {
	assert.NotEmpty(ctx, c.ProjectDir, "converter project dir must be set")
	if manifest.Name == "" {
		return types.Document{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest missing project name")
	}
	if manifest.Version == "" {
		return types.Document{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest missing project version")
	}

	sources := map[string]types.SourceRecord{}
	deps, members, err := c.convertDependencies(ctx, manifest.Dependencies, sources)
	if err != nil {
		return types.Document{}, nil, err
	}
	devDeps, devMembers, err := c.convertDependencies(ctx, manifest.DevDependencies, sources)
	if err != nil {
		return types.Document{}, nil, err
	}
	members = append(members, devMembers...)

	groups := make(map[string][]string, len(manifest.Groups)+1)
	for _, group := range manifest.Groups {
		converted, _, err := c.convertDependencies(ctx, group.Dependencies, sources)
		if err != nil {
			return types.Document{}, nil, err
		}
		groups[group.Name] = converted
	}
	// Legacy dev-dependencies and an explicit dev group merge, legacy
	// entries first. The dev group is always emitted.
	groups[devGroupName] = append(devDeps, groups[devGroupName]...)

	requiresPython, err := c.requiresPython(ctx, manifest.Dependencies)
	if err != nil {
		return types.Document{}, nil, err
	}

	authors := make([]types.Author, 0, len(manifest.Authors))
	for _, full := range manifest.Authors {
		authors = append(authors, SplitAuthor(full))
	}

	tool := map[string]any{"uv": map[string]any{"sources": sources}}
	for _, table := range manifest.KeptTool {
		tool[table.Key] = table.Value
	}
	if keepPoetry && manifest.Poetry != nil {
		tool["poetry"] = manifest.Poetry
	}

	project := types.ProjectTable{
		Name:           manifest.Name,
		Version:        manifest.Version,
		RequiresPython: requiresPython,
		Description:    manifest.Description,
		Authors:        authors,
		Dependencies:   deps,
	}
	if len(manifest.Extras) > 0 {
		optional := make(map[string][]string, len(manifest.Extras))
		for _, extra := range manifest.Extras {
			optional[extra.Name] = extra.Packages
		}
		project.OptionalDependencies = optional
	}

	doc := types.Document{
		Project:      project,
		KeptTopLevel: manifest.KeptTopLevel,
		Tool:         tool,
		Groups:       groups,
	}
	if keepPoetry && manifest.BuildSystem != nil {
		doc.KeptTopLevel = append(
			[]types.NamedTable{{Key: "build-system", Value: manifest.BuildSystem}},
			manifest.KeptTopLevel...,
		)
	}
	log.Ctx(ctx).Debug().
		Str("project", manifest.Name).
		Int("dependencies", len(deps)).
		Int("sources", len(sources)).
		Int("groups", len(groups)).
		Msg("manifest converted")
	return doc, members, nil
}

// SplitAuthor converts a free-text author string to a PEP 621 record.
func SplitAuthor(full string) types.Author {
	if match := authorPattern.FindStringSubmatch(full); match != nil {
		return types.Author{Name: match[1], Email: match[2]}
	}
	return types.Author{Name: full}
}

func (c Converter) convertDependencies(ctx context.Context, entries []types.DependencyEntry, sources map[string]types.SourceRecord) ([]string, []string, error) {
	deps := make([]string, 0, len(entries))
	var members []string
	for _, entry := range entries {
		if entry.Name == pythonDependency {
			continue
		}
		value := entry.Value
		if value.IsChoices() {
			chosen, err := c.chooseValue(ctx, entry.Name, value.Choices)
			if err != nil {
				return nil, nil, err
			}
			value = chosen
		}
		if value.IsRecord() {
			emitted, member, err := c.convertRecord(ctx, entry.Name, *value.Record, sources)
			if err != nil {
				return nil, nil, err
			}
			if member != "" {
				members = append(members, member)
			}
			deps = append(deps, emitted...)
			continue
		}
		if value.Constraint == "" {
			log.Ctx(ctx).Debug().Str("dependency", entry.Name).Msg("dependency with empty value skipped")
			continue
		}
		translated, err := TranslateConstraint(value.Constraint)
		if err != nil {
			return nil, nil, err
		}
		deps = append(deps, entry.Name+translated)
	}
	return deps, members, nil
}

// convertRecord dispatches one structured dependency record. It returns
// the dependency strings to emit and, for path records, the workspace
// member path.
func (c Converter) convertRecord(ctx context.Context, name string, record types.DependencyRecord, sources map[string]types.SourceRecord) ([]string, string, error) {
	kind, _ := record.Kind()
	if keys := offendingKeys(record, kind); len(keys) > 0 {
		return nil, "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unsupported keys in dependency %s: %s", name, strings.Join(keys, ", ")))
	}
	extras := extrasSuffix(record.Extras)

	switch kind {
	case types.SourceKindGit:
		pkg := gitPackageName(record.Git)
		source := types.SourceRecord{Git: record.Git, Rev: record.Rev, Tag: record.Tag, Branch: record.Branch}
		if err := registerGitSource(pkg, source, sources); err != nil {
			return nil, "", err
		}
		if record.Optional {
			return nil, "", nil
		}
		return []string{pkg + extras}, "", nil

	case types.SourceKindURL:
		sources[name] = types.SourceRecord{URL: record.URL}
		if record.Optional {
			return nil, "", nil
		}
		return []string{name + extras}, "", nil

	case types.SourceKindPath:
		memberName, err := c.resolveMemberName(ctx, record.Path)
		if err != nil {
			return nil, "", err
		}
		sources[memberName] = types.SourceRecord{Path: record.Path}
		if record.Develop != nil {
			log.Ctx(ctx).Warn().
				Str("dependency", name).
				Str("path", record.Path).
				Bool("develop", *record.Develop).
				Msg("develop flag ignored; workspace members are always editable")
		}
		var emitted []string
		if !record.Optional {
			emitted = append(emitted, memberName)
		}
		tail, err := versionTail(extras, record.Version)
		if err != nil {
			return nil, "", err
		}
		if tail != "" && !record.Optional {
			emitted = append(emitted, name+tail)
		}
		return emitted, record.Path, nil

	default:
		tail, err := versionTail(extras, record.Version)
		if err != nil {
			return nil, "", err
		}
		if record.Optional {
			log.Ctx(ctx).Debug().Str("dependency", name).Msg("optional dependency left to extras")
			return nil, "", nil
		}
		if tail == "" {
			return nil, "", nil
		}
		return []string{name + tail}, "", nil
	}
}

func (c Converter) chooseValue(ctx context.Context, name string, choices []types.DependencyValue) (types.DependencyValue, error) {
	index := 0
	if len(choices) > 1 {
		options := make([]string, len(choices))
		for i, choice := range choices {
			options[i] = describeChoice(choice)
		}
		chosen, err := c.Chooser.Choose(ctx, name, options)
		if err != nil {
			return types.DependencyValue{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("no selection among alternative constraints for %s", name)).
				WithCause(err)
		}
		if chosen < 0 || chosen >= len(choices) {
			return types.DependencyValue{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("chooser returned index %d for %d options", chosen, len(choices)))
		}
		index = chosen
		log.Ctx(ctx).Debug().
			Str("dependency", name).
			Str("choice", options[index]).
			Msg("alternative constraint selected")
	}
	value := choices[index]
	if value.IsChoices() {
		return types.DependencyValue{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("nested alternative constraints for %s", name))
	}
	return value, nil
}

func (c Converter) resolveMemberName(ctx context.Context, member string) (string, error) {
	dir := member
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.ProjectDir, member)
	}
	name, found, err := c.Names.LookupProjectName(dir)
	if err != nil {
		return "", err
	}
	if found {
		return name, nil
	}
	fallback := path.Base(strings.TrimRight(member, "/"))
	log.Ctx(ctx).Debug().
		Str("path", member).
		Str("name", fallback).
		Msg("path dependency without manifest name; using final path segment")
	return fallback, nil
}

func (c Converter) requiresPython(ctx context.Context, entries []types.DependencyEntry) (string, error) {
	for _, entry := range entries {
		if entry.Name != pythonDependency {
			continue
		}
		constraint := entry.Value.Constraint
		if entry.Value.IsRecord() {
			constraint = entry.Value.Record.Version
		}
		if constraint == "" {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("unsupported python requirement shape")
		}
		return TranslateConstraint(constraint)
	}
	log.Ctx(ctx).Debug().Msg("no python dependency; requires-python omitted")
	return "", nil
}

// registerGitSource records a git source under the derived package
// name. Names are compared after PEP 503 normalization, so Foo_Bar and
// foo-bar clash like the installers would treat them.
func registerGitSource(pkg string, source types.SourceRecord, sources map[string]types.SourceRecord) error {
	normalized := shared.NormalizePipName(pkg)
	for existing, record := range sources {
		if shared.NormalizePipName(existing) != normalized {
			continue
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("duplicate git source %s: %s and %s", pkg, record.Origin(), source.Git))
	}
	sources[pkg] = source
	return nil
}

// offendingKeys lists record keys that are set but have no meaning for
// the record's source kind, plus any keys the decoder did not
// recognize at all.
func offendingKeys(record types.DependencyRecord, kind types.SourceKind) []string {
	keys := append([]string(nil), record.Unknown...)
	add := func(key string, present bool) {
		if present {
			keys = append(keys, key)
		}
	}
	switch kind {
	case types.SourceKindGit:
		add("version", record.Version != "")
		add("url", record.URL != "")
		add("path", record.Path != "")
		add("develop", record.Develop != nil)
	case types.SourceKindURL:
		add("version", record.Version != "")
		add("rev", record.Rev != "")
		add("tag", record.Tag != "")
		add("branch", record.Branch != "")
		add("path", record.Path != "")
		add("develop", record.Develop != nil)
	case types.SourceKindPath:
		add("rev", record.Rev != "")
		add("tag", record.Tag != "")
		add("branch", record.Branch != "")
	default:
		add("rev", record.Rev != "")
		add("tag", record.Tag != "")
		add("branch", record.Branch != "")
		add("develop", record.Develop != nil)
	}
	sort.Strings(keys)
	return keys
}

func describeChoice(value types.DependencyValue) string {
	switch {
	case value.IsRecord():
		record := value.Record
		pairs := []struct {
			key   string
			value string
		}{
			{"version", record.Version},
			{"git", record.Git},
			{"rev", record.Rev},
			{"tag", record.Tag},
			{"branch", record.Branch},
			{"url", record.URL},
			{"path", record.Path},
		}
		parts := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			if pair.value != "" {
				parts = append(parts, pair.key+"="+pair.value)
			}
		}
		return strings.Join(parts, ", ")
	case value.IsChoices():
		return fmt.Sprintf("%d nested alternatives", len(value.Choices))
	default:
		return value.Constraint
	}
}

func extrasSuffix(extras []string) string {
	if len(extras) == 0 {
		return ""
	}
	return "[" + strings.Join(extras, ", ") + "]"
}

func versionTail(extras string, version string) (string, error) {
	if version == "" {
		return extras, nil
	}
	translated, err := TranslateConstraint(version)
	if err != nil {
		return "", err
	}
	return extras + translated, nil
}

func gitPackageName(gitURL string) string {
	base := path.Base(gitURL)
	return strings.TrimSuffix(base, path.Ext(base))
}
