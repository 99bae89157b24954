/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

It also knows how to find the <style> elements of an HTML document and how
to turn their content into style sheets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/style/cssom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSStyles is an adapter for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(sheet *css.Stylesheet) *CSSStyles {
	if sheet == nil {
		return &CSSStyles{}
	}
	return &CSSStyles{css: *sheet}
}

// Parse parses CSS text into a style sheet.
func Parse(text string) (*CSSStyles, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Wrap(sheet), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
	}
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, len(sheet.css.Rules))
	for i, r := range sheet.css.Rules {
		rules[i] = Rule(*r)
	}
	return rules
}

// String renders the stylesheet in douceur's canonical format: one rule per
// line group, declarations indented by two spaces. Rendering a parsed sheet
// is deterministic, so equal input text always yields equal output.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) String() string {
	return sheet.css.String()
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the selectors of the rule, joined by ", ".
func (r Rule) Selector() string {
	if len(r.Selectors) > 0 {
		return strings.Join(r.Selectors, ", ")
	}
	return r.Prelude
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for key, e.g. "15px". Later declarations
// win over earlier ones.
func (r Rule) Value(key string) string {
	v := ""
	for _, d := range r.Declarations {
		if d.Property == key {
			v = d.Value
		}
	}
	return v
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	important := false
	for _, d := range r.Declarations {
		if d.Property == key {
			important = d.Important
		}
	}
	return important
}

var _ cssom.Rule = Rule{}

// --- <style> elements ------------------------------------------------------

// ExtractStyleElements visits the <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets. Style elements which are empty or do not
// parse are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	for _, el := range styleElements(htmldoc) {
		text := dom.TextContent(el)
		if strings.TrimSpace(text) == "" {
			continue
		}
		sheet, err := Parse(text)
		if err != nil {
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}

// StyleElementByID returns the <style> element with the given id, if any.
func StyleElementByID(htmldoc *html.Node, id string) *html.Node {
	for _, el := range styleElements(htmldoc) {
		if v, ok := dom.Attr(el, "id"); ok && v == id {
			return el
		}
	}
	return nil
}

// StylesOf parses the content of a <style> element.
func StylesOf(el *html.Node) (*CSSStyles, error) {
	return Parse(dom.TextContent(el))
}

func styleElements(htmldoc *html.Node) []*html.Node {
	if htmldoc == nil {
		return nil
	}
	isStyle := dom.IsElement(atom.Style)
	var els []*html.Node
	for _, a := range []atom.Atom{atom.Head, atom.Body} {
		container := findElement(a, htmldoc)
		if container == nil {
			continue
		}
		for ch := container.FirstChild; ch != nil; ch = ch.NextSibling {
			if isStyle.Match(ch) {
				els = append(els, ch)
			}
		}
	}
	return els
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode && h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
