/*
Package config holds the static configuration of a dynamic-content widget.

A Config is constructed once, before the widget is installed, and is never
mutated afterwards. It may be assembled in code (starting from Default),
read from any schuko.Configuration, or loaded from a YAML file.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'dyncontent.config'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.config")
}

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration record of a widget.
type Config struct {
	ControlID      string        `yaml:"control-id"`     // id of the <select> element
	StyleID        string        `yaml:"style-id"`       // id of the <style> element
	DefaultLabel   string        `yaml:"default-label"`  // text of the empty default option
	TargetSelector string        `yaml:"target"`         // where the control is inserted
	ScopeSelector  string        `yaml:"scope"`          // root(s) of the search scope
	Attribute      string        `yaml:"attribute"`      // attribute to collect values from
	MarkerClass    string        `yaml:"marker-class"`   // class marking highlighted elements
	Sort           SortDirection `yaml:"sort"`           // order of options
	Locale         string        `yaml:"locale"`         // BCP 47 tag for collation, empty for root
	StyleTemplate  string        `yaml:"style-template"` // CSS with {{.ControlID}} and {{.MarkerClass}}
}

// Default returns the configuration the widget ships with: release markers
// in data-rev attributes of topic sections.
func Default() Config {
	return Config{
		ControlID:      "dynamicContentSelect",
		StyleID:        "dynamicContentStyles",
		DefaultLabel:   "Select a release …",
		TargetSelector: "div.topic.section",
		ScopeSelector:  "div.topic.section",
		Attribute:      "data-rev",
		MarkerClass:    "data-rev-highlighted",
		Sort:           Descending,
		StyleTemplate:  DefaultStyleTemplate,
	}
}

// LocaleTag returns the collation locale. An empty or unparsable locale
// yields language.Und, i.e. the root collation order.
func (c Config) LocaleTag() language.Tag {
	if c.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// Template returns the style template, falling back to DefaultStyleTemplate.
func (c Config) Template() string {
	if strings.TrimSpace(c.StyleTemplate) == "" {
		return DefaultStyleTemplate
	}
	return c.StyleTemplate
}

// Validate checks identifiers, selectors, locale and style template.
//
// Empty selectors are not rejected here: an empty search scope is a
// condition the scope resolver reports at install time.
func (c Config) Validate() error {
	if c.ControlID == "" {
		return fmt.Errorf("%w: control id is empty", ErrInvalid)
	}
	if c.StyleID == "" {
		return fmt.Errorf("%w: style id is empty", ErrInvalid)
	}
	if c.ControlID == c.StyleID {
		return fmt.Errorf("%w: control and style share id %q", ErrInvalid, c.ControlID)
	}
	if strings.TrimSpace(c.Attribute) == "" {
		return fmt.Errorf("%w: attribute name is empty", ErrInvalid)
	}
	// ids and the marker class end up in generated CSS selectors
	for _, id := range []struct{ what, name string }{
		{"control id", c.ControlID},
		{"style id", c.StyleID},
		{"marker class", c.MarkerClass},
	} {
		if !IsIdent(id.name) {
			return fmt.Errorf("%w: %s %q is not a CSS identifier", ErrInvalid, id.what, id.name)
		}
	}
	for _, sel := range []string{c.TargetSelector, c.ScopeSelector} {
		if strings.TrimSpace(sel) == "" {
			continue
		}
		if _, err := cascadia.ParseGroup(sel); err != nil {
			return fmt.Errorf("%w: selector %q: %v", ErrInvalid, sel, err)
		}
	}
	if c.Sort != Ascending && c.Sort != Descending {
		return fmt.Errorf("%w: sort direction %d", ErrInvalid, c.Sort)
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("%w: locale %q: %v", ErrInvalid, c.Locale, err)
		}
	}
	if err := c.checkTemplate(); err != nil {
		return fmt.Errorf("%w: style template: %v", ErrInvalid, err)
	}
	return nil
}

// checkTemplate expands the style template and parses the result as CSS.
func (c Config) checkTemplate() error {
	text, err := ExpandStyle(c.Template(), c.ControlID, c.MarkerClass)
	if err != nil {
		return err
	}
	_, err = parser.Parse(text)
	return err
}

// IsIdent is true if s consists of exactly one CSS identifier token without
// escapes, i.e. s may be used unchanged both as an HTML id or class and in a
// selector.
func IsIdent(s string) bool {
	if strings.ContainsRune(s, '\\') {
		return false
	}
	sc := scanner.New(s)
	if t := sc.Next(); t.Type != scanner.TokenIdent || t.Value != s {
		return false
	}
	return sc.Next().Type == scanner.TokenEOF
}

// StyleParams are the only free variables of a style template.
type StyleParams struct {
	ControlID   string
	MarkerClass string
}

// ExpandStyle executes a style template for a control id and a marker
// class. Unknown template parameters are an error.
func ExpandStyle(tmpl, controlID, markerClass string) (string, error) {
	t, err := template.New("style").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	params := StyleParams{ControlID: controlID, MarkerClass: markerClass}
	if err = t.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// --- Loading ---------------------------------------------------------------

// Configuration keys read by FromConfiguration.
const (
	KeyControlID     = "dyncontent.control-id"
	KeyStyleID       = "dyncontent.style-id"
	KeyDefaultLabel  = "dyncontent.default-label"
	KeyTarget        = "dyncontent.target"
	KeyScope         = "dyncontent.scope"
	KeyAttribute     = "dyncontent.attribute"
	KeyMarkerClass   = "dyncontent.marker-class"
	KeySort          = "dyncontent.sort"
	KeyLocale        = "dyncontent.locale"
	KeyStyleTemplate = "dyncontent.style-template"
)

// FromConfiguration reads a Config from an application configuration.
// Keys which are not set keep their default values.
func FromConfiguration(conf schuko.Configuration) (Config, error) {
	return Merge(Default(), conf)
}

// Merge overrides fields of c with the values of keys set in conf.
func Merge(c Config, conf schuko.Configuration) (Config, error) {
	if conf == nil {
		return c, nil
	}
	for key, field := range map[string]*string{
		KeyControlID:     &c.ControlID,
		KeyStyleID:       &c.StyleID,
		KeyDefaultLabel:  &c.DefaultLabel,
		KeyTarget:        &c.TargetSelector,
		KeyScope:         &c.ScopeSelector,
		KeyAttribute:     &c.Attribute,
		KeyMarkerClass:   &c.MarkerClass,
		KeyLocale:        &c.Locale,
		KeyStyleTemplate: &c.StyleTemplate,
	} {
		if conf.IsSet(key) {
			*field = conf.GetString(key)
		}
	}
	if conf.IsSet(KeySort) {
		dir, err := ParseSortDirection(conf.GetString(KeySort))
		if err != nil {
			return c, err
		}
		c.Sort = dir
	}
	tracer().Debugf("configuration: control=%q scope=%q attribute=%q sort=%s",
		c.ControlID, c.ScopeSelector, c.Attribute, c.Sort)
	return c, nil
}

// LoadFile reads a YAML configuration file. Fields absent from the file keep
// their default values; fields present but empty stay empty.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Load(data)
}

// Load parses YAML configuration data on top of Default.
func Load(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return c, nil
}
