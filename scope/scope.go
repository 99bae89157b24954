/*
Package scope resolves where the widget lives in a document.

Resolve looks up two things from a configuration: the single node the
selection control is inserted into, and the search scope which bounds all
later attribute queries. Resolution is a pure lookup; the document is never
changed.

An element is in scope if any of its proper ancestors matches the scope
selector. This is the semantics of the descendant combinator in
"<scope> [attribute]", extended to selector groups: an element below two
scope roots is still counted once.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'dyncontent.scope'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.scope")
}

// ErrTargetNotFound is returned if the insertion target selector matches no node.
var ErrTargetNotFound = errors.New("insertion target not found")

// ErrScopeUndefined is returned if no search scope is configured.
var ErrScopeUndefined = errors.New("search scope undefined")

// Scope is the result of a successful resolution.
type Scope struct {
	Target   *html.Node // the control goes here
	Selector string     // the scope selector as configured
	roots    cascadia.SelectorGroup
}

// Resolve finds the insertion target and compiles the search scope.
//
// The target selector is checked first: an empty, unparsable or unmatched
// target selector yields ErrTargetNotFound. After that, an empty or
// unparsable scope selector yields ErrScopeUndefined.
func Resolve(doc w3cdom.Querier, conf config.Config) (*Scope, error) {
	target, err := resolveTarget(doc, conf.TargetSelector)
	if err != nil {
		tracer().Errorf("target %q for <select id=%q> not found, widget not installed",
			conf.TargetSelector, conf.ControlID)
		return nil, err
	}
	sel := strings.TrimSpace(conf.ScopeSelector)
	if sel == "" {
		tracer().Errorf("no search scope defined, widget not installed")
		return nil, ErrScopeUndefined
	}
	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		tracer().Errorf("search scope %q cannot be parsed: %v", sel, err)
		return nil, fmt.Errorf("%w: %v", ErrScopeUndefined, err)
	}
	tracer().Debugf("resolved target <%s> and scope %q", target.Data, sel)
	return &Scope{
		Target:   target,
		Selector: sel,
		roots:    group,
	}, nil
}

func resolveTarget(doc w3cdom.Querier, selector string) (*html.Node, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("%w: no target selector configured", ErrTargetNotFound)
	}
	m, err := dom.CompileSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTargetNotFound, err)
	}
	target := doc.QueryFirst(doc.Root(), m)
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrTargetNotFound, selector)
	}
	return target, nil
}

// IsRoot checks if n is a scope root, i.e. matches the scope selector.
func (s *Scope) IsRoot(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && s.roots.Match(n)
}

// Contains checks if n is a descendant of a scope root.
func (s *Scope) Contains(n *html.Node) bool {
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if s.IsRoot(p) {
			return true
		}
	}
	return false
}

// Within restricts a matcher to elements in scope.
func (s *Scope) Within(m cascadia.Matcher) cascadia.Matcher {
	return dom.MatcherFunc(func(n *html.Node) bool {
		return m.Match(n) && s.Contains(n)
	})
}

// Query returns all elements in scope matching m, in document order.
// It is a fresh query on every call.
func (s *Scope) Query(doc w3cdom.Querier, m cascadia.Matcher) []*html.Node {
	return doc.QueryAll(doc.Root(), s.Within(m))
}
