package dyncontent

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/dyncontent/collect"
	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/control"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/dyncontent/highlight"
	"github.com/npillmayer/dyncontent/scope"
)

// Errors which abort the pipeline. Install reports them in Report.Err, not
// as its error return value.
var (
	ErrTargetNotFound = scope.ErrTargetNotFound
	ErrScopeUndefined = scope.ErrScopeUndefined
	ErrNoMatches      = collect.ErrNoMatches
)

// ErrNoDocument is returned by Install for a nil document.
var ErrNoDocument = dom.ErrNoDocument

// Diagnostic classifies the outcome of a pipeline run.
type Diagnostic int8

// Outcomes of a pipeline run.
const (
	Installed      Diagnostic = iota // control and style created
	Refreshed                        // control and style found by id and refreshed
	TargetNotFound                   // aborted: insertion target missing
	ScopeUndefined                   // aborted: no usable search scope
	NoMatches                        // aborted: no element in scope carries the attribute
)

func (d Diagnostic) String() string {
	switch d {
	case Installed:
		return "installed"
	case Refreshed:
		return "refreshed"
	case TargetNotFound:
		return "target not found"
	case ScopeUndefined:
		return "scope undefined"
	case NoMatches:
		return "no matches"
	}
	return fmt.Sprintf("Diagnostic(%d)", int(d))
}

// Aborted is true for diagnostics which leave the document unmodified.
func (d Diagnostic) Aborted() bool {
	return d >= TargetNotFound
}

// Report is the outcome of Install.
type Report struct {
	Diagnostic Diagnostic
	Err        error    // abort cause, nil if installed or refreshed
	Values     []string // option values in display order, without the default option
	Widget     *Widget  // nil if aborted
}

// OK is true if the widget is installed.
func (r Report) OK() bool {
	return r.Err == nil && r.Widget != nil
}

// Install runs the pipeline on doc.
//
// Abort conditions are reported in the returned Report; in this case the
// document is left unmodified. A non-nil error is returned only for a nil
// document or an invalid configuration.
func Install(doc w3cdom.Document, conf config.Config) (Report, error) {
	if doc == nil {
		return Report{}, ErrNoDocument
	}
	if err := conf.Validate(); err != nil {
		return Report{}, err
	}
	w := &Widget{doc: doc, conf: conf}
	report := w.run()
	if report.Err != nil {
		return report, nil
	}
	report.Widget = w
	return report, nil
}

var ready = struct {
	sync.Mutex
	reports map[w3cdom.Document]Report
}{
	reports: make(map[w3cdom.Document]Report),
}

// OnReady is the entry point for hosts which signal "document structure
// ready". It installs the widget once per document. Later calls for the same
// document return the first report without running the pipeline again; use
// Widget.Refresh for a re-run. Aborted runs are not remembered, a later call
// tries again. Widget.Close releases the document.
//
// doc has to be comparable, e.g. a *dom.Document.
func OnReady(doc w3cdom.Document, conf config.Config) (Report, error) {
	if doc == nil {
		return Report{}, ErrNoDocument
	}
	ready.Lock()
	defer ready.Unlock()
	if r, ok := ready.reports[doc]; ok {
		tracer().Debugf("document already processed: %v", r.Diagnostic)
		return r, nil
	}
	r, err := Install(doc, conf)
	if err != nil {
		return r, err
	}
	if r.OK() {
		ready.reports[doc] = r
	}
	return r, nil
}

func forget(doc w3cdom.Document) {
	ready.Lock()
	defer ready.Unlock()
	delete(ready.reports, doc)
}

// run executes the pipeline. w.conf is valid.
func (w *Widget) run() Report {
	sc, err := scope.Resolve(w.doc, w.conf)
	if err != nil {
		if errors.Is(err, scope.ErrTargetNotFound) {
			return Report{Diagnostic: TargetNotFound, Err: err}
		}
		return Report{Diagnostic: ScopeUndefined, Err: err}
	}
	values := collect.Values(w.doc, sc, w.conf.Attribute, collect.OrderFor(w.conf))
	if len(values) == 0 {
		tracer().Infof("no elements with attribute %q in scope %q, widget not installed",
			w.conf.Attribute, sc.Selector)
		return Report{Diagnostic: NoMatches, Err: fmt.Errorf("%w: attribute %q, scope %q",
			ErrNoMatches, w.conf.Attribute, sc.Selector)}
	}
	handles, err := control.Synchronize(w.doc, w.conf, sc.Target, values)
	if err != nil { // cannot happen for a validated configuration
		return Report{Diagnostic: ScopeUndefined, Err: err}
	}
	env, err := highlight.NewEnv(w.conf, sc, handles.Style)
	if err != nil {
		return Report{Diagnostic: ScopeUndefined, Err: err}
	}
	engine := highlight.New(w.doc, env, handles.Control, w.conf.ControlID)
	//
	w.mx.Lock()
	prev := w.engine
	w.scope, w.handles, w.engine, w.values = sc, handles, engine, values
	w.mx.Unlock()
	if prev != nil {
		prev.Unbind()
	}
	engine.Bind()
	//
	diag := Installed
	if handles.Refreshed() {
		diag = Refreshed
		tracer().Infof("control #%s already present, refreshed with %d value(s)",
			w.conf.ControlID, len(values))
	} else {
		tracer().Infof("control #%s installed with %d value(s)", w.conf.ControlID, len(values))
	}
	// markers may be left over from an earlier run, bring highlighting in
	// line with the control
	w.doc.DispatchChange(handles.Control, dom.SelectValue(handles.Control))
	return Report{Diagnostic: diag, Values: values}
}
