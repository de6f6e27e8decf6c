package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Args holds the raw command-line arguments shared by every front end.
// Empty values and a nil Jobs mean "not given"; Resolve fills them from the
// config file or the defaults.
type Args struct {
	ConfigFile    string
	FluentSources []string
	Canonical     string
	Primaries     []string
	RustSources   []string
	Jobs          *int
}

// Clone returns a deep copy of a.
func (a Args) Clone() Args {
	a.FluentSources = slices.Clone(a.FluentSources)
	a.Primaries = slices.Clone(a.Primaries)
	a.RustSources = slices.Clone(a.RustSources)
	if a.Jobs != nil {
		jobs := *a.Jobs
		a.Jobs = &jobs
	}
	return a
}

// BindFlags registers the shared flags on fs, writing into a. The current
// contents of a become the flag defaults, so binding a populated Args and
// parsing a partial flag list edits it in place.
func BindFlags(fs *pflag.FlagSet, a *Args) {
	fs.StringVarP(&a.ConfigFile, "config", "c", a.ConfigFile,
		"config file (default is ./Lingora.toml when present)")
	fs.StringSliceVar(&a.FluentSources, "fluent-sources", a.FluentSources,
		"translation files or folders, added to those in the config file")
	fs.StringVar(&a.Canonical, "canonical", a.Canonical,
		"canonical locale, overrides the config file")
	fs.StringSliceVar(&a.Primaries, "primaries", a.Primaries,
		"primary locales, added to those in the config file")
	fs.StringSliceVar(&a.RustSources, "rust-sources", a.RustSources,
		"rust source files or folders to include in the scan")
	fs.Var(jobsValue{&a.Jobs}, "jobs",
		fmt.Sprintf("concurrent source scans, %d-%d (default %d)", MinJobs, MaxJobs, DefaultJobs))
}

// jobsValue sets an optional job count, so an explicit --jobs 0 is kept and
// rejected by Resolve instead of reading as "not given".
type jobsValue struct{ p **int }

func (v jobsValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return strconv.Itoa(**v.p)
}

func (v jobsValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*v.p = &n
	return nil
}

func (v jobsValue) Type() string { return "int" }
