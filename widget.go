package dyncontent

import (
	"sync"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/control"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/dyncontent/highlight"
	"github.com/npillmayer/dyncontent/scope"
	"golang.org/x/net/html"
)

// Widget is an installed selector.
//
// Methods of Widget dispatch change events and therefore must not be called
// from within a change listener.
type Widget struct {
	doc     w3cdom.Document
	conf    config.Config
	mx      sync.Mutex
	scope   *scope.Scope
	handles control.Handles
	engine  *highlight.Engine
	values  []string
}

// Select selects value v in the control, exactly like a user would, and
// dispatches a change event. The empty string selects the default option.
// If the control has no option for v, nothing happens and false is returned.
func (w *Widget) Select(v string) bool {
	ctrl := w.Control()
	found := false
	for _, ov := range control.OptionValues(ctrl) {
		if ov == v {
			found = true
			break
		}
	}
	if !found {
		tracer().Infof("control #%s has no option %q", w.conf.ControlID, v)
		return false
	}
	dom.SetSelectValue(ctrl, v)
	w.doc.DispatchChange(ctrl, v)
	return true
}

// Refresh re-runs the pipeline on the current document. Control and style
// are found by their ids and rebuilt, the change listener is replaced and
// the selection is reset to the default option.
//
// If the re-run aborts, the widget keeps its previous state and the
// document is not modified.
func (w *Widget) Refresh() Report {
	r := w.run()
	if r.Err == nil {
		r.Widget = w
	}
	return r
}

// Close unbinds the highlight engine. Control, style and markers stay in
// the document.
func (w *Widget) Close() {
	w.mx.Lock()
	engine := w.engine
	w.mx.Unlock()
	engine.Unbind()
	forget(w.doc)
}

// State returns the current highlight state.
func (w *Widget) State() highlight.State {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.engine.State()
}

// Values returns the option values of the last pipeline run, in display order.
func (w *Widget) Values() []string {
	w.mx.Lock()
	defer w.mx.Unlock()
	return append([]string(nil), w.values...)
}

// Control returns the <select> element.
func (w *Widget) Control() *html.Node {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.handles.Control
}

// Style returns the <style> element.
func (w *Widget) Style() *html.Node {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.handles.Style
}

// Scope returns the resolved search scope.
func (w *Widget) Scope() *scope.Scope {
	w.mx.Lock()
	defer w.mx.Unlock()
	return w.scope
}

// Config returns the configuration the widget was installed with.
func (w *Widget) Config() config.Config {
	return w.conf
}

// Highlighted returns the elements currently carrying the marker class,
// anywhere in the document.
func (w *Widget) Highlighted() []*html.Node {
	return w.doc.QueryAll(w.doc.Root(), dom.HasClass(w.conf.MarkerClass))
}
