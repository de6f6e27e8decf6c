// Package config provides the canonical configuration shared by the lingora
// front ends: raw arguments, config file loading, and the single validation
// entry point Resolve.
package config

import (
	"io"
	"slices"
	"strconv"
)

const (
	// DefaultFluentSource is used when neither a config file nor
	// --fluent-sources names any translation source.
	DefaultFluentSource = "i18n"

	// DefaultJobs is the number of concurrent source scans.
	DefaultJobs = 4
	MinJobs     = 1
	MaxJobs     = 64
)

// Config is a validated, immutable configuration. It is only built by
// Resolve; accessors return copies so a Config can be shared freely.
type Config struct {
	workDir       string
	file          string
	fluentSources []string
	canonical     Locale
	primaries     []Locale
	rustSources   []string
	jobs          int
	warnings      []string
}

// WorkDir is the directory relative paths were resolved against.
func (c *Config) WorkDir() string { return c.workDir }

// File is the config file that was loaded, or "" if none was.
func (c *Config) File() string { return c.file }

// FluentSources are the absolute translation file or folder paths.
func (c *Config) FluentSources() []string { return slices.Clone(c.fluentSources) }

// Canonical is the reference locale every primary translation is checked against.
func (c *Config) Canonical() Locale { return c.canonical }

// Primaries are the supported base locales besides the canonical one.
func (c *Config) Primaries() []Locale { return slices.Clone(c.primaries) }

// BaseLocales is the canonical locale followed by the primaries.
func (c *Config) BaseLocales() []Locale {
	return append([]Locale{c.canonical}, c.primaries...)
}

// RustSources are the absolute rust source file or folder paths.
func (c *Config) RustSources() []string { return slices.Clone(c.rustSources) }

// Jobs is the number of sources scanned concurrently.
func (c *Config) Jobs() int { return c.jobs }

// Warnings are non-fatal observations made during validation.
func (c *Config) Warnings() []string { return slices.Clone(c.warnings) }

// Args returns raw arguments that resolve back to an identical Config.
func (c *Config) Args() Args {
	primaries := make([]string, 0, len(c.primaries))
	for _, p := range c.primaries {
		primaries = append(primaries, p.String())
	}
	jobs := c.jobs

	return Args{
		ConfigFile:    c.file,
		FluentSources: slices.Clone(c.fluentSources),
		Canonical:     c.canonical.String(),
		Primaries:     primaries,
		RustSources:   slices.Clone(c.rustSources),
		Jobs:          &jobs,
	}
}

// Write renders the effective configuration in the config file schema.
func (c *Config) Write(w io.Writer, format Format) error {
	jobs := c.jobs
	fs := &fileSettings{
		Lingora: engineSettings{
			FluentSources: c.FluentSources(),
			Canonical:     c.canonical.String(),
			Primaries:     c.Args().Primaries,
			Jobs:          &jobs,
		},
		DioxusI18n: dioxusSettings{
			RustSources: c.RustSources(),
		},
	}
	return encodeFile(w, fs, format)
}

// Summary returns the configuration as ordered key/value pairs for display.
func (c *Config) Summary() [][2]string {
	file := c.file
	if file == "" {
		file = "(none)"
	}
	primaries := "(none)"
	if len(c.primaries) > 0 {
		primaries = joinLocales(c.primaries)
	}
	return [][2]string{
		{"Config file", file},
		{"Canonical", c.canonical.String()},
		{"Primaries", primaries},
		{"Fluent sources", strconv.Itoa(len(c.fluentSources))},
		{"Rust sources", strconv.Itoa(len(c.rustSources))},
		{"Jobs", strconv.Itoa(c.jobs)},
	}
}

func joinLocales(locales []Locale) string {
	s := ""
	for i, l := range locales {
		if i > 0 {
			s += ", "
		}
		s += l.String()
	}
	return s
}
