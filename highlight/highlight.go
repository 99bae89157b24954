/*
Package highlight implements the selection-to-highlight state machine.

The machine has two states, Idle and Filtered(v). A change event on the
control triggers a transition, computed by the pure function Transition:
it inspects the document, but does not touch it, and returns the new state
together with the Effects of the transition. Apply executes the effects.
Engine wires both to the change notifications of a document.

A transition does the following, in order:

  - clear the marker class from every element in the document carrying it
  - if the new value is non-empty, mark all elements in scope whose
    attribute equals the value, found by a fresh query
  - rewrite the style element with the generated style text

Clearing is document-wide while marking is bound to the scope.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package highlight

import (
	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/control"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/dyncontent/scope"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'dyncontent.highlight'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.highlight")
}

// Event is a change of the control's value.
type Event struct {
	Value string
}

// Env is the static environment of transitions.
type Env struct {
	Scope       *scope.Scope
	Attribute   string
	MarkerClass string
	Style       *html.Node // style element to rewrite, may be nil
	styleText   string
}

// NewEnv creates the environment for a configuration. The style text is
// generated once; it is deterministic, so every later rewrite of the style
// element uses identical text.
func NewEnv(conf config.Config, sc *scope.Scope, style *html.Node) (Env, error) {
	text, err := control.GenerateStyle(conf.Template(), conf.ControlID, conf.MarkerClass)
	if err != nil {
		return Env{}, err
	}
	return Env{
		Scope:       sc,
		Attribute:   conf.Attribute,
		MarkerClass: conf.MarkerClass,
		Style:       style,
		styleText:   text,
	}, nil
}

// StyleText is the style text written by every transition.
func (env Env) StyleText() string {
	return env.styleText
}

// Effects are the document changes of a transition, to be applied in order:
// Clear first, then Mark, then the style rewrite.
type Effects struct {
	Class     string       // the marker class
	Clear     []*html.Node // elements losing the marker class, anywhere in the document
	Mark      []*html.Node // elements gaining the marker class, all in scope
	Style     *html.Node   // style element to rewrite, or nil
	StyleText string
}

// Transition computes the successor of state for event ev. It does not
// modify the document.
//
// Values not present in the document are not an error; they lead to a
// Filtered state with an empty mark set.
func Transition(doc w3cdom.Querier, env Env, state State, ev Event) (State, Effects) {
	next := Filtered(ev.Value)
	eff := Effects{
		Class:     env.MarkerClass,
		Clear:     doc.QueryAll(doc.Root(), dom.HasClass(env.MarkerClass)),
		Style:     env.Style,
		StyleText: env.styleText,
	}
	var v string
	switch m := next.Match(); m {
	case m.Idle():
		// nothing to mark
	case m.Filtered(&v):
		if env.Scope != nil {
			eff.Mark = env.Scope.Query(doc, dom.AttributeEquals(env.Attribute, v))
		}
	}
	tracer().Debugf("%v -> %v: clear %d, mark %d", state, next, len(eff.Clear), len(eff.Mark))
	return next, eff
}

// Apply executes the effects of a transition.
func Apply(doc w3cdom.Mutator, eff Effects) {
	for _, n := range eff.Clear {
		doc.RemoveClass(n, eff.Class)
	}
	for _, n := range eff.Mark {
		doc.AddClass(n, eff.Class)
	}
	if eff.Style != nil {
		doc.SetText(eff.Style, eff.StyleText)
	}
}
