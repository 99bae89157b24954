/*
Package w3cdom defines the capabilities components need from a document.

The widget never reaches for an ambient, global document. Every component
receives the document explicitly and talks to it through the interfaces of
this package: a Querier for lookups, a Mutator for changes and an
EventTarget for change notifications of form controls.
Package dom provides the default implementation on top of an HTML parse
tree; tests are free to wrap it or to inject a fake.

See also https://www.w3schools.com/XML/dom_intro.asp

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Querier looks up nodes of a document.
type Querier interface {
	Root() *html.Node                                          // the document node
	Head() *html.Node                                          // <head> element, may be nil for fragments
	Body() *html.Node                                          // <body> element, may be nil for fragments
	QueryFirst(from *html.Node, m cascadia.Matcher) *html.Node // first matching descendant in document order
	QueryAll(from *html.Node, m cascadia.Matcher) []*html.Node // all matching descendants in document order
}

// Mutator changes nodes of a document.
type Mutator interface {
	CreateElement(tag atom.Atom, id string) *html.Node // new detached element, id may be empty
	InsertFirstChild(parent, child *html.Node)         // child becomes parent's first child
	AppendChild(parent, child *html.Node)              // child becomes parent's last child
	RemoveChildren(n *html.Node) int                   // remove all children, return their count
	SetText(n *html.Node, text string)                 // replace all children by a single text node
	SetAttribute(n *html.Node, key, value string)      // create or overwrite an attribute
	AddClass(n *html.Node, class string) bool          // true if the class list changed
	RemoveClass(n *html.Node, class string) bool       // true if the class list changed
}

// ChangeEvent is dispatched when the value of a form control changes.
type ChangeEvent struct {
	Target *html.Node // the control
	Value  string     // value of the control at dispatch time
}

// ChangeListener is a callback for change events.
type ChangeListener func(ChangeEvent)

// EventTarget manages change listeners.
//
// Listeners are registered under a key. Registering a second listener with the
// same key for the same target replaces the first one, so a component binding
// itself repeatedly will still be called only once per event.
type EventTarget interface {
	SetChangeListener(target *html.Node, key string, l ChangeListener)
	RemoveChangeListener(target *html.Node, key string)
	DispatchChange(target *html.Node, value string)
}

// Document bundles all capabilities.
type Document interface {
	Querier
	Mutator
	EventTarget
}
