/*
Package control reconciles the selection control and its style element with
the current state of a document.

Reconciliation is find-or-create, keyed by the configured element ids: a
<style> and a <select> with the configured ids are looked up in the
document; existing ones are refreshed in place, missing ones are created.
Running Synchronize any number of times therefore never leaves more than
one control or style element per id behind, and never duplicates or keeps
stale options.

New controls are inserted as the first child of the insertion target. The
first option is always the default option with an empty value, followed by
the values in exactly the order they were passed in.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package control

import (
	"errors"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'dyncontent.control'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.control")
}

// ErrNoTarget is returned if a control has to be created but no insertion
// target is given.
var ErrNoTarget = errors.New("no insertion target for control")

// Handles refer to the nodes owned by the synchronizer.
type Handles struct {
	Control        *html.Node // the <select>
	Style          *html.Node // the <style>
	ControlCreated bool       // false if an existing control was refreshed
	StyleCreated   bool       // false if an existing style element was refreshed
}

// Refreshed is true if neither node had to be created, i.e. the widget had
// already been installed into this document.
func (h Handles) Refreshed() bool {
	return !h.ControlCreated && !h.StyleCreated
}

// FindControl looks up the <select> with the given id.
func FindControl(doc w3cdom.Querier, id string) *html.Node {
	return doc.QueryFirst(doc.Root(), dom.ElementWithID(atom.Select, id))
}

// FindStyle looks up the <style> with the given id.
func FindStyle(doc w3cdom.Querier, id string) *html.Node {
	return doc.QueryFirst(doc.Root(), dom.ElementWithID(atom.Style, id))
}

// Synchronize reconciles style element and control for values, which must
// already be in display order. target is where a new control is inserted.
//
// The style text is generated before anything is touched; if generation
// fails, the document is left unchanged.
func Synchronize(doc w3cdom.Document, conf config.Config, target *html.Node, values []string) (Handles, error) {
	text, err := GenerateStyle(conf.Template(), conf.ControlID, conf.MarkerClass)
	if err != nil {
		return Handles{}, err
	}
	if target == nil && FindControl(doc, conf.ControlID) == nil {
		return Handles{}, ErrNoTarget
	}
	var h Handles
	h.Style, h.StyleCreated = reconcileStyle(doc, conf.StyleID, text)
	h.Control, h.ControlCreated = reconcileControl(doc, conf, target, values)
	tracer().Infof("control #%s: %d option(s), created=%v, style created=%v",
		conf.ControlID, len(values)+1, h.ControlCreated, h.StyleCreated)
	return h, nil
}

// ReconcileStyle creates or refreshes the style element of conf.
func ReconcileStyle(doc w3cdom.Document, conf config.Config) (*html.Node, bool, error) {
	text, err := GenerateStyle(conf.Template(), conf.ControlID, conf.MarkerClass)
	if err != nil {
		return nil, false, err
	}
	el, created := reconcileStyle(doc, conf.StyleID, text)
	return el, created, nil
}

// RefreshStyle overwrites the content of an existing style element with
// freshly generated text.
func RefreshStyle(doc w3cdom.Mutator, el *html.Node, conf config.Config) error {
	text, err := GenerateStyle(conf.Template(), conf.ControlID, conf.MarkerClass)
	if err != nil {
		return err
	}
	doc.SetText(el, text)
	return nil
}

func reconcileStyle(doc w3cdom.Document, id, text string) (*html.Node, bool) {
	if el := FindStyle(doc, id); el != nil {
		doc.SetText(el, text)
		return el, false
	}
	el := doc.CreateElement(atom.Style, id)
	doc.SetText(el, text)
	doc.AppendChild(styleContainer(doc), el)
	return el, true
}

// styleContainer is <head>, or for fragments without a head, <body> or the
// root node.
func styleContainer(doc w3cdom.Querier) *html.Node {
	if head := doc.Head(); head != nil {
		return head
	}
	if body := doc.Body(); body != nil {
		return body
	}
	return doc.Root()
}

func reconcileControl(doc w3cdom.Document, conf config.Config, target *html.Node,
	values []string) (*html.Node, bool) {
	//
	sel := FindControl(doc, conf.ControlID)
	created := sel == nil
	if created {
		sel = doc.CreateElement(atom.Select, conf.ControlID)
		doc.InsertFirstChild(target, sel)
	} else {
		n := doc.RemoveChildren(sel)
		tracer().Debugf("cleared %d stale child node(s) of control #%s", n, conf.ControlID)
	}
	doc.AppendChild(sel, option(doc, conf.DefaultLabel, ""))
	for _, v := range values {
		doc.AppendChild(sel, option(doc, v, v))
	}
	return sel, created
}

func option(doc w3cdom.Mutator, label, value string) *html.Node {
	opt := doc.CreateElement(atom.Option, "")
	doc.SetAttribute(opt, "value", value)
	doc.SetText(opt, label)
	return opt
}

// OptionValues returns the values of all options of a control, in order.
func OptionValues(sel *html.Node) []string {
	opts := dom.Options(sel)
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = dom.OptionValue(o)
	}
	return values
}
