// Package report renders workspace results in the stable output formats of
// the lingora CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/kannan/lingora/internal/workspace"
)

// Format is an output format. It implements pflag.Value.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSilent Format = "silent"
)

// Formats lists the accepted formats in help order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatSilent}

func (f *Format) String() string {
	return string(*f)
}

// Set parses s into f.
func (f *Format) Set(s string) error {
	for _, known := range Formats {
		if strings.EqualFold(s, string(known)) {
			*f = known
			return nil
		}
	}
	names := make([]string, 0, len(Formats))
	for _, known := range Formats {
		names = append(names, string(known))
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

// Type is the name shown in flag usage.
func (f *Format) Type() string {
	return "format"
}

// Render writes res to w in the given format.
func Render(w io.Writer, res *workspace.Result, format Format) error {
	switch format {
	case FormatSilent:
		return nil
	case FormatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		return renderText(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, res *workspace.Result) error {
	primaries := "(none)"
	if len(res.Primaries) > 0 {
		names := make([]string, 0, len(res.Primaries))
		for _, p := range res.Primaries {
			names = append(names, p.String())
		}
		primaries = strings.Join(names, ", ")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Canonical:\t%s\n", res.Canonical)
	fmt.Fprintf(tw, "Primaries:\t%s\n", primaries)
	fmt.Fprintf(tw, "Translation files:\t%d\n", res.FileCount())
	fmt.Fprintf(tw, "Rust files:\t%d\n", len(res.RustFiles))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if len(res.Documents) == 0 {
		fmt.Fprintln(w, "No translation files found.")
	} else {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "LOCALE\tROLE\tFILES")
		for _, d := range res.Documents {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Locale, d.Role, strings.Join(d.Files, ", "))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	if res.OK() {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}

	fmt.Fprintf(w, "%d issue(s):\n", len(res.Issues))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, is := range res.Issues {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", is.Kind, is.Subject, is.Message)
	}
	return tw.Flush()
}
