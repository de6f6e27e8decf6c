package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a BCP 47 language identifier in canonical form, e.g. "en-GB".
type Locale string

// ParseLocale validates s as a BCP 47 tag and returns its canonical form.
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("locale is empty")
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", s, err)
	}

	return Locale(tag.String()), nil
}

// String implements fmt.Stringer.
func (l Locale) String() string {
	return string(l)
}

// Root returns the language root of the locale: the language subtag plus the
// script subtag when one is given explicitly ("en-GB" -> "en",
// "sr-Cyrl-RS" -> "sr-Cyrl"). Locales sharing a root fall back to each other.
func (l Locale) Root() string {
	tag, err := language.Parse(string(l))
	if err != nil {
		return string(l)
	}

	base, _ := tag.Base()
	root := base.String()
	if script, conf := tag.Script(); conf == language.Exact {
		root += "-" + script.String()
	}
	return root
}

// LocaleFromPath derives a locale from a translation file path. The file stem
// is tried first ("en/en-GB.ftl"), then the parent directories from the
// nearest outwards ("fr-FR/main.ftl"). rel should be relative to the source
// root so that unrelated directories above it are never considered.
func LocaleFromPath(rel string) (Locale, error) {
	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if l, err := ParseLocale(stem); err == nil {
		return l, nil
	}

	dir := filepath.Dir(rel)
	for dir != "." && dir != string(filepath.Separator) && dir != "" {
		if l, err := ParseLocale(filepath.Base(dir)); err == nil {
			return l, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no valid locale found in path: %s", rel)
}
