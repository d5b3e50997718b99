package core

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"poetry2uv/internal/shared"
	"poetry2uv/internal/types"
)

// requirementNamePattern is the PEP 508 project name grammar. Extras
// brackets and the specifier tail are split off before matching.
var requirementNamePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// CheckReport counts what a document check inspected. Specifiers is the
// number of non-empty version specifiers that parsed as PEP 440.
type CheckReport struct {
	ProjectName  string
	Dependencies int
	Optional     int
	Groups       int
	Specifiers   int
}

// DocumentChecker validates that every requirement string in a
// converted document is well formed: a PEP 508 name, optionally an
// extras bracket, optionally a PEP 440 specifier set. Parsed specifier
// sets are memoized since pins repeat across groups.
type DocumentChecker struct {
	specs map[string]pep440.Specifiers
}

func NewDocumentChecker() DocumentChecker {
	return DocumentChecker{specs: map[string]pep440.Specifiers{}}
}

// CheckDocument walks project dependencies, optional dependency lists
// and dependency groups in a stable order and fails on the first
// offending entry, naming the list it was found in.
func (c DocumentChecker) CheckDocument(ctx context.Context, doc types.Document) (CheckReport, error) {
	if doc.Project.Name == "" {
		return CheckReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document missing project name")
	}
	report := CheckReport{ProjectName: doc.Project.Name}

	if python := doc.Project.RequiresPython; python != "" {
		if _, err := c.specifiers(python); err != nil {
			return CheckReport{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requires-python %q", python)).
				WithCause(err)
		}
		report.Specifiers++
	}

	count, err := c.checkList("project.dependencies", doc.Project.Dependencies, &report)
	if err != nil {
		return CheckReport{}, err
	}
	report.Dependencies = count

	for _, name := range sortedKeys(doc.Project.OptionalDependencies) {
		count, err := c.checkList("project.optional-dependencies."+name, doc.Project.OptionalDependencies[name], &report)
		if err != nil {
			return CheckReport{}, err
		}
		report.Optional += count
	}
	for _, name := range sortedKeys(doc.Groups) {
		count, err := c.checkList("dependency-groups."+name, doc.Groups[name], &report)
		if err != nil {
			return CheckReport{}, err
		}
		report.Groups += count
	}

	warnDuplicateNames(ctx, doc.Project.Dependencies)
	log.Ctx(ctx).Debug().
		Str("project", report.ProjectName).
		Int("dependencies", report.Dependencies).
		Int("specifiers", report.Specifiers).
		Msg("document checked")
	return report, nil
}

func (c DocumentChecker) checkList(list string, entries []string, report *CheckReport) (int, error) {
	for _, entry := range entries {
		if err := c.checkRequirement(entry); err != nil {
			return 0, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid entry %q in %s", entry, list)).
				WithCause(err)
		}
		if _, specifier := splitRequirement(entry); specifier != "" {
			report.Specifiers++
		}
	}
	return len(entries), nil
}

func (c DocumentChecker) checkRequirement(entry string) error {
	name, specifier := splitRequirement(entry)
	if !requirementNamePattern.MatchString(name) {
		return fmt.Errorf("malformed package name %q", name)
	}
	if specifier == "" {
		return nil
	}
	_, err := c.specifiers(specifier)
	return err
}

// specifiers parses a PEP 440 specifier set, caching the result.
func (c DocumentChecker) specifiers(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.specs[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.specs[value] = parsed
	return parsed, nil
}

// splitRequirement separates a requirement string into its package name
// and version specifier. An extras bracket belongs to neither; an
// environment marker after ";" is ignored.
func splitRequirement(entry string) (string, string) {
	rest := strings.TrimSpace(entry)
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		rest = strings.TrimSpace(rest[:i])
	}
	if i := strings.IndexByte(rest, '['); i >= 0 {
		if j := strings.IndexByte(rest, ']'); j > i {
			return rest[:i], strings.TrimSpace(rest[j+1:])
		}
	}
	if i := strings.IndexAny(rest, "<>=!~"); i >= 0 {
		return rest[:i], rest[i:]
	}
	return rest, ""
}

// warnDuplicateNames flags dependency entries that collapse to the same
// normalized package name, which usually means one package was listed
// under two spellings.
func warnDuplicateNames(ctx context.Context, entries []string) {
	seen := map[string]string{}
	for _, entry := range entries {
		name, _ := splitRequirement(entry)
		normalized := shared.NormalizePipName(name)
		if first, ok := seen[normalized]; ok {
			log.Ctx(ctx).Warn().
				Str("name", normalized).
				Str("first", first).
				Str("second", entry).
				Msg("dependency listed more than once")
			continue
		}
		seen[normalized] = entry
	}
}

func sortedKeys(table map[string][]string) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
