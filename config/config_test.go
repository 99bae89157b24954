package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultIsValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, config.Descending, c.Sort)
	assert.Equal(t, "data-rev", c.Attribute)
	assert.Equal(t, language.Und, c.LocaleTag())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*config.Config){
		"empty control id":   func(c *config.Config) { c.ControlID = "" },
		"empty style id":     func(c *config.Config) { c.StyleID = "" },
		"shared id":          func(c *config.Config) { c.StyleID = c.ControlID },
		"empty attribute":    func(c *config.Config) { c.Attribute = " " },
		"two marker classes": func(c *config.Config) { c.MarkerClass = "a b" },
		"id not an ident":    func(c *config.Config) { c.ControlID = "1abc" },
		"style id selector":  func(c *config.Config) { c.StyleID = "st.yle" },
		"class with hash":    func(c *config.Config) { c.MarkerClass = "mark#x" },
		"broken scope":       func(c *config.Config) { c.ScopeSelector = "div[[" },
		"broken target":      func(c *config.Config) { c.TargetSelector = "p[" },
		"bad sort":           func(c *config.Config) { c.Sort = 7 },
		"bad locale":         func(c *config.Config) { c.Locale = "not a locale!" },
		"bad style template": func(c *config.Config) { c.StyleTemplate = "{{.ControlID" },
		"unknown parameter":  func(c *config.Config) { c.StyleTemplate = "#{{.Color}} {}" },
	}
	for name, mutate := range cases {
		c := config.Default()
		mutate(&c)
		err := c.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error, got none", name)
			continue
		}
		if !errors.Is(err, config.ErrInvalid) {
			t.Errorf("%s: expected error to wrap ErrInvalid, is %v", name, err)
		}
	}
}

func TestIsIdent(t *testing.T) {
	for _, s := range []string{"dynamicContentSelect", "data-rev-highlighted", "-x", "_a1"} {
		assert.True(t, config.IsIdent(s), s)
	}
	for _, s := range []string{"", "1abc", "-1", "a b", "a.b", "#a", "a,b", "--", "f(x)", "r\\31 0"} {
		assert.False(t, config.IsIdent(s), s)
	}
}

func TestEmptySelectorsPassValidation(t *testing.T) {
	c := config.Default()
	c.ScopeSelector = ""
	c.TargetSelector = ""
	if err := c.Validate(); err != nil {
		t.Errorf("expected empty selectors to be left to the scope resolver, got %v", err)
	}
}

func TestParseSortDirection(t *testing.T) {
	for in, want := range map[string]config.SortDirection{
		"ascending": config.Ascending, "ASC": config.Ascending,
		" descending ": config.Descending, "Desc": config.Descending,
	} {
		got, err := config.ParseSortDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := config.ParseSortDirection("sideways")
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Equal(t, 1, config.Ascending.Sign())
	assert.Equal(t, -1, config.Descending.Sign())
}

func TestFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.config")
	defer teardown()
	//
	conf := testconfig.Conf{
		config.KeyAttribute: "data-version",
		config.KeyScope:     "article",
		config.KeySort:      "ascending",
		config.KeyLocale:    "de",
	}
	c, err := config.FromConfiguration(conf)
	require.NoError(t, err)
	assert.Equal(t, "data-version", c.Attribute)
	assert.Equal(t, "article", c.ScopeSelector)
	assert.Equal(t, config.Ascending, c.Sort)
	assert.Equal(t, "de", c.LocaleTag().String())
	assert.Equal(t, config.Default().ControlID, c.ControlID, "unset keys keep defaults")

	_, err = config.FromConfiguration(testconfig.Conf{config.KeySort: "up"})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dyncontent.yaml")
	data := []byte(`
attribute: data-version
sort: asc
scope: ""
marker-class: picked
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	c, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data-version", c.Attribute)
	assert.Equal(t, config.Ascending, c.Sort)
	assert.Equal(t, "", c.ScopeSelector, "explicitly empty scope stays empty")
	assert.Equal(t, "picked", c.MarkerClass)
	assert.Equal(t, config.Default().TargetSelector, c.TargetSelector)

	_, err = config.Load([]byte("sort: sideways\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestTemplateFallback(t *testing.T) {
	c := config.Default()
	c.StyleTemplate = "  "
	assert.Equal(t, config.DefaultStyleTemplate, c.Template())
}

func TestMergeKeepsBase(t *testing.T) {
	base := config.Default()
	base.ControlID = "releases"
	c, err := config.Merge(base, testconfig.Conf{config.KeyScope: "article"})
	require.NoError(t, err)
	assert.Equal(t, "releases", c.ControlID)
	assert.Equal(t, "article", c.ScopeSelector)
	assert.Equal(t, base.TargetSelector, c.TargetSelector)
}
