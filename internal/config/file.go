package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFiles are looked up in the working directory, in order, when
// no config file is given explicitly.
var DefaultConfigFiles = []string{
	"Lingora.toml",
	"lingora.toml",
	"lingora.yaml",
	"lingora.yml",
	"lingora.jsonc",
	"lingora.json",
}

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want toml, yaml or json)", s)
}

// FormatFromPath picks the format from a file extension. Anything unknown is
// read as TOML.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return FormatTOML
}

// fileSettings is the on-disk schema shared by every format.
type fileSettings struct {
	Lingora    engineSettings `toml:"lingora" yaml:"lingora" json:"lingora"`
	DioxusI18n dioxusSettings `toml:"dioxus_i18n" yaml:"dioxus_i18n" json:"dioxus_i18n"`
}

type engineSettings struct {
	FluentSources []string `toml:"fluent_sources" yaml:"fluent_sources" json:"fluent_sources"`
	Canonical     string   `toml:"canonical,omitempty" yaml:"canonical,omitempty" json:"canonical,omitempty"`
	Primaries     []string `toml:"primaries" yaml:"primaries" json:"primaries"`
	Jobs          *int     `toml:"jobs,omitempty" yaml:"jobs,omitempty" json:"jobs,omitempty"`
}

type dioxusSettings struct {
	RustSources []string `toml:"rust_sources" yaml:"rust_sources" json:"rust_sources"`
}

// findConfigFile returns the first default config file present in dir, or ""
// if there is none.
func findConfigFile(dir string) string {
	for _, name := range DefaultConfigFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// loadFile reads and decodes a config file. Relative paths inside it are
// resolved against the file's own directory.
func loadFile(path string) (*fileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	fs, err := decodeFile(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fs.resolvePaths(filepath.Dir(path))
	return fs, nil
}

func decodeFile(data []byte, format Format) (*fileSettings, error) {
	fs := &fileSettings{}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(fs); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(fs); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

	default:
		md, err := toml.Decode(string(data), fs)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	}

	return fs, nil
}

// resolvePaths converts relative paths to absolute paths based on the config directory.
func (fs *fileSettings) resolvePaths(configDir string) {
	fs.Lingora.FluentSources = absPaths(configDir, fs.Lingora.FluentSources)
	fs.DioxusI18n.RustSources = absPaths(configDir, fs.DioxusI18n.RustSources)
}

func absPaths(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, absPath(base, p))
	}
	return out
}

func absPath(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func encodeFile(w io.Writer, fs *fileSettings, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fs); err != nil {
			return err
		}
		return enc.Close()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fs)

	default:
		return toml.NewEncoder(w).Encode(fs)
	}
}
