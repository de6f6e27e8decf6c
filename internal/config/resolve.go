package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Field names used in violations. They match the flag names of the front ends.
const (
	FieldConfig        = "config"
	FieldFluentSources = "fluent-sources"
	FieldCanonical     = "canonical"
	FieldPrimaries     = "primaries"
	FieldRustSources   = "rust-sources"
	FieldJobs          = "jobs"
)

// Resolve validates args against the config file and defaults and returns
// the resulting Config. On failure the error is a *ValidationError listing
// every violation. Relative paths in args are resolved against workDir, which
// is also where the default config files are looked up.
func Resolve(workDir string, args Args) (*Config, error) {
	verr := &ValidationError{}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		verr.Addf([]string{FieldConfig}, "invalid working directory: %v", err)
		return nil, verr
	}

	// Config file
	settings := &fileSettings{}
	configFile := ""
	if args.ConfigFile != "" {
		configFile = absPath(workDir, args.ConfigFile)
	} else {
		configFile = findConfigFile(workDir)
	}
	if configFile != "" {
		loaded, err := loadFile(configFile)
		if err != nil {
			verr.Add(err.Error(), FieldConfig)
		} else {
			settings = loaded
		}
	}

	// Merge: lists append, scalars override.
	fluentSources := append(settings.Lingora.FluentSources, absPaths(workDir, args.FluentSources)...)
	if configFile == "" && len(fluentSources) == 0 {
		fluentSources = []string{filepath.Join(workDir, DefaultFluentSource)}
	}
	rustSources := append(settings.DioxusI18n.RustSources, absPaths(workDir, args.RustSources)...)

	canonicalRaw := settings.Lingora.Canonical
	if args.Canonical != "" {
		canonicalRaw = args.Canonical
	}

	primariesRaw := append(settings.Lingora.Primaries, args.Primaries...)

	jobs := DefaultJobs
	if settings.Lingora.Jobs != nil {
		jobs = *settings.Lingora.Jobs
	}
	if args.Jobs != nil {
		jobs = *args.Jobs
	}

	cfg := &Config{
		workDir:       workDir,
		file:          configFile,
		fluentSources: dedupe(fluentSources),
		rustSources:   dedupe(rustSources),
		jobs:          jobs,
	}

	// Locales
	if strings.TrimSpace(canonicalRaw) == "" {
		verr.Add("a canonical locale is required", FieldCanonical)
	} else if l, err := ParseLocale(canonicalRaw); err != nil {
		verr.Add(err.Error(), FieldCanonical)
	} else {
		cfg.canonical = l
	}

	var primaries []Locale
	for _, raw := range primariesRaw {
		l, err := ParseLocale(raw)
		if err != nil {
			verr.Add(err.Error(), FieldPrimaries)
			continue
		}
		primaries = append(primaries, l)
	}
	for _, l := range dedupe(primaries) {
		if l == cfg.canonical {
			verr.Addf([]string{FieldCanonical, FieldPrimaries},
				"locale %s cannot be both canonical and primary", l)
			continue
		}
		cfg.primaries = append(cfg.primaries, l)
	}

	checkLanguageRoots(verr, cfg.canonical, cfg.primaries)

	// Paths
	if len(cfg.fluentSources) == 0 {
		verr.Add("at least one translation source is required", FieldFluentSources)
	}
	checkPathsExist(verr, FieldFluentSources, cfg.fluentSources)
	checkPathsExist(verr, FieldRustSources, cfg.rustSources)

	// Ranges
	if jobs < MinJobs || jobs > MaxJobs {
		verr.Addf([]string{FieldJobs}, "jobs must be between %d and %d, got %d", MinJobs, MaxJobs, jobs)
	}

	if verr.HasViolations() {
		return nil, verr
	}

	if len(cfg.primaries) == 0 {
		cfg.warnings = append(cfg.warnings, "no primary locales configured; only the canonical locale is checked")
	}

	return cfg, nil
}

// checkLanguageRoots rejects base locales that share a language root, since
// fallback between them would be ambiguous.
func checkLanguageRoots(verr *ValidationError, canonical Locale, primaries []Locale) {
	byRoot := make(map[string][]Locale)
	var roots []string
	add := func(l Locale) {
		root := l.Root()
		if _, ok := byRoot[root]; !ok {
			roots = append(roots, root)
		}
		byRoot[root] = append(byRoot[root], l)
	}

	if canonical != "" {
		add(canonical)
	}
	for _, p := range primaries {
		add(p)
	}

	for _, root := range roots {
		locales := byRoot[root]
		if len(locales) < 2 {
			continue
		}
		fields := []string{FieldPrimaries}
		if locales[0] == canonical {
			fields = []string{FieldCanonical, FieldPrimaries}
		}
		verr.Addf(fields, "locales %s share the language root %s; fallback between them is ambiguous",
			joinLocales(locales), root)
	}
}

func checkPathsExist(verr *ValidationError, field string, paths []string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				verr.Addf([]string{field}, "path does not exist: %s", p)
			} else {
				verr.Addf([]string{field}, "cannot access %s: %v", p, err)
			}
		}
	}
}

func dedupe[T comparable](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// SortedLocales returns a sorted copy of locales.
func SortedLocales(locales []Locale) []Locale {
	out := append([]Locale(nil), locales...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

