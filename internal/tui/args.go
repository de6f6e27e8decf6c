package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/kannan/lingora/internal/app"
	"github.com/kannan/lingora/internal/config"
)

const (
	// FieldRefresh is the violation field of --refresh.
	FieldRefresh = "refresh"

	MinRefresh = time.Second
	MaxRefresh = time.Hour
)

// Screen is one of the TUI views. It implements pflag.Value.
type Screen string

const (
	ScreenSummary Screen = "summary"
	ScreenLocales Screen = "locales"
	ScreenIssues  Screen = "issues"
)

// Screens lists the views in tab order.
var Screens = []Screen{ScreenSummary, ScreenLocales, ScreenIssues}

func (s *Screen) String() string { return string(*s) }

// Set parses v into s.
func (s *Screen) Set(v string) error {
	for _, known := range Screens {
		if strings.EqualFold(v, string(known)) {
			*s = known
			return nil
		}
	}
	return fmt.Errorf("must be one of summary, locales or issues")
}

// Type is the name shown in flag usage.
func (s *Screen) Type() string { return "screen" }

// next returns the screen after s in tab order.
func (s Screen) next() Screen {
	for i, known := range Screens {
		if known == s {
			return Screens[(i+1)%len(Screens)]
		}
	}
	return ScreenSummary
}

// ColorMode selects how colors are rendered. It implements pflag.Value.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (c *ColorMode) String() string { return string(*c) }

// Set parses v into c.
func (c *ColorMode) Set(v string) error {
	switch ColorMode(strings.ToLower(v)) {
	case ColorAuto:
		*c = ColorAuto
	case ColorAlways:
		*c = ColorAlways
	case ColorNever:
		*c = ColorNever
	default:
		return fmt.Errorf("must be one of auto, always or never")
	}
	return nil
}

// Type is the name shown in flag usage.
func (c *ColorMode) Type() string { return "mode" }

// Apply sets the lipgloss color profile for the mode.
func (c ColorMode) Apply() {
	switch c {
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Args holds the raw arguments of a TUI session.
type Args struct {
	Core    config.Args
	Screen  Screen
	Refresh time.Duration
	Color   ColorMode
	LogFile string
	Verbose bool
}

// DefaultArgs returns the arguments used when no flags are given.
func DefaultArgs() Args {
	return Args{
		Screen: ScreenSummary,
		Color:  ColorAuto,
	}
}

// Clone returns a deep copy of a.
func (a Args) Clone() Args {
	a.Core = a.Core.Clone()
	return a
}

// bindSessionFlags registers the flags that can also be changed from the
// edit prompt: the core flags plus --screen and --refresh.
func bindSessionFlags(fs *pflag.FlagSet, a *Args) {
	config.BindFlags(fs, &a.Core)
	fs.Var(&a.Screen, "screen", "initial screen: summary, locales or issues")
	fs.DurationVar(&a.Refresh, "refresh", a.Refresh,
		fmt.Sprintf("re-run on this interval, 0 to disable (%s to %s)", MinRefresh, MaxRefresh))
}

// bindFlags registers every TUI flag on fs.
func bindFlags(fs *pflag.FlagSet, a *Args) {
	bindSessionFlags(fs, a)
	fs.Var(&a.Color, "color", "color output: auto, always or never")
	fs.StringVar(&a.LogFile, "log-file", a.LogFile, "write logs to this file")
	fs.BoolVarP(&a.Verbose, "verbose", "v", a.Verbose, "log at debug level")
}

// resolveArgs validates a, adding the TUI rules to those of config.Resolve so
// every violation is reported together.
func resolveArgs(workDir string, a Args) (*config.Config, error) {
	cfg, err := config.Resolve(workDir, a.Core)

	verr := &config.ValidationError{}
	if err != nil && !errors.As(err, &verr) {
		return nil, err
	}

	if a.Refresh != 0 && (a.Refresh < MinRefresh || a.Refresh > MaxRefresh) {
		verr.Addf([]string{FieldRefresh}, "refresh must be 0 or between %s and %s, got %s",
			MinRefresh, MaxRefresh, a.Refresh)
	}

	if verr.HasViolations() {
		return nil, verr
	}
	return cfg, nil
}

// parseEdit applies a line of flag syntax from the edit prompt on top of base.
// List flags given in the line replace the current list; anything not named
// keeps its value.
func parseEdit(base Args, line string) (Args, error) {
	a := base.Clone()

	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bindSessionFlags(fs, &a)

	if err := fs.Parse(strings.Fields(line)); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			err = errors.New("flags accepted here")
		}
		return base, &app.UsageError{Err: err, Usage: fs.FlagUsages()}
	}
	if fs.NArg() > 0 {
		return base, &app.UsageError{
			Err:   fmt.Errorf("unexpected argument %q", fs.Arg(0)),
			Usage: fs.FlagUsages(),
		}
	}
	if fs.NFlag() == 0 {
		return base, &app.UsageError{
			Err:   errors.New("no flags given"),
			Usage: fs.FlagUsages(),
		}
	}

	return a, nil
}
