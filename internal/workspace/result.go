package workspace

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kannan/lingora/internal/config"
)

// Role is how a document relates to the configured base locales.
type Role string

const (
	RoleCanonical Role = "canonical"
	RolePrimary   Role = "primary"
	RoleVariant   Role = "variant"
	RoleOrphan    Role = "orphan"
)

func (r Role) rank() int {
	switch r {
	case RoleCanonical:
		return 0
	case RolePrimary:
		return 1
	case RoleVariant:
		return 2
	default:
		return 3
	}
}

// IssueKind classifies a finding.
type IssueKind string

const (
	// IssueMissingBase: a canonical or primary locale has no translation files.
	IssueMissingBase IssueKind = "missing_base"
	// IssueUndefinedBase: locales whose language root has no canonical or
	// primary locale to fall back to.
	IssueUndefinedBase IssueKind = "undefined_base"
	// IssueUnknownLocale: a translation file whose path names no locale.
	IssueUnknownLocale IssueKind = "unknown_locale"
)

// Document is every translation file found for one locale.
type Document struct {
	Locale config.Locale `json:"locale" yaml:"locale"`
	Role   Role          `json:"role" yaml:"role"`
	Files  []string      `json:"files" yaml:"files"`
}

// Issue is a single finding.
type Issue struct {
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Subject string    `json:"subject" yaml:"subject"`
	Message string    `json:"message" yaml:"message"`
}

// Result is the outcome of a workspace scan.
type Result struct {
	Canonical config.Locale   `json:"canonical" yaml:"canonical"`
	Primaries []config.Locale `json:"primaries" yaml:"primaries"`
	Documents []Document      `json:"documents" yaml:"documents"`
	RustFiles []string        `json:"rust_files" yaml:"rust_files"`
	Issues    []Issue         `json:"issues" yaml:"issues"`
}

// OK reports whether the scan produced no findings.
func (r *Result) OK() bool {
	return len(r.Issues) == 0
}

// DocumentsWithRole returns the documents of the given role.
func (r *Result) DocumentsWithRole(role Role) []Document {
	var docs []Document
	for _, d := range r.Documents {
		if d.Role == role {
			docs = append(docs, d)
		}
	}
	return docs
}

// FileCount is the number of translation files across all documents.
func (r *Result) FileCount() int {
	n := 0
	for _, d := range r.Documents {
		n += len(d.Files)
	}
	return n
}

// fluentFile is a translation file with the path it was found under.
type fluentFile struct {
	path string
	rel  string
}

// classify groups translation files by locale and sorts them into roles
// relative to the configured base locales.
func classify(cfg *config.Config, files []fluentFile, rustFiles []string) *Result {
	res := &Result{
		Canonical: cfg.Canonical(),
		Primaries: append([]config.Locale{}, cfg.Primaries()...),
		Documents: []Document{},
		RustFiles: displayPaths(cfg.WorkDir(), rustFiles),
		Issues:    []Issue{},
	}

	byLocale := make(map[config.Locale][]string)
	for _, f := range files {
		locale, err := config.LocaleFromPath(f.rel)
		if err != nil {
			res.Issues = append(res.Issues, Issue{
				Kind:    IssueUnknownLocale,
				Subject: displayPath(cfg.WorkDir(), f.path),
				Message: "no locale found in the file name or its folders",
			})
			continue
		}
		byLocale[locale] = append(byLocale[locale], f.path)
	}

	roles := make(map[config.Locale]Role)
	baseRoots := make(map[string]bool)
	roles[cfg.Canonical()] = RoleCanonical
	baseRoots[cfg.Canonical().Root()] = true
	for _, p := range cfg.Primaries() {
		roles[p] = RolePrimary
		baseRoots[p.Root()] = true
	}

	for _, base := range cfg.BaseLocales() {
		if _, ok := byLocale[base]; !ok {
			res.Issues = append(res.Issues, Issue{
				Kind:    IssueMissingBase,
				Subject: base.String(),
				Message: fmt.Sprintf("no translation files for base locale %s", base),
			})
		}
	}

	orphans := make(map[string][]config.Locale)
	for locale, paths := range byLocale {
		role, ok := roles[locale]
		if !ok {
			if baseRoots[locale.Root()] {
				role = RoleVariant
			} else {
				role = RoleOrphan
				orphans[locale.Root()] = append(orphans[locale.Root()], locale)
			}
		}
		res.Documents = append(res.Documents, Document{
			Locale: locale,
			Role:   role,
			Files:  displayPaths(cfg.WorkDir(), paths),
		})
	}

	sort.Slice(res.Documents, func(i, j int) bool {
		a, b := res.Documents[i], res.Documents[j]
		if a.Role.rank() != b.Role.rank() {
			return a.Role.rank() < b.Role.rank()
		}
		return a.Locale < b.Locale
	})

	roots := make([]string, 0, len(orphans))
	for root := range orphans {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	for _, root := range roots {
		locales := config.SortedLocales(orphans[root])
		names := make([]string, 0, len(locales))
		for _, l := range locales {
			names = append(names, l.String())
		}
		res.Issues = append(res.Issues, Issue{
			Kind:    IssueUndefinedBase,
			Subject: root,
			Message: fmt.Sprintf("%s have no canonical or primary locale to fall back to", strings.Join(names, ", ")),
		})
	}

	return res
}

// displayPaths makes paths relative to dir when they are inside it and
// switches to forward slashes so output is stable across platforms.
func displayPaths(dir string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, displayPath(dir, p))
	}
	sort.Strings(out)
	return out
}

func displayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
