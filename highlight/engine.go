package highlight

import (
	"sync"

	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"golang.org/x/net/html"
)

// Engine subscribes the state machine to the change events of a control.
//
// The initial state is Idle. An Engine is bound under a key derived from
// the control's id; binding a second engine for the same control replaces
// the first one, it never adds a second handler.
type Engine struct {
	doc     w3cdom.Document
	env     Env
	control *html.Node
	key     string
	mx      sync.Mutex
	state   State
}

// New creates an unbound engine for a control.
func New(doc w3cdom.Document, env Env, control *html.Node, controlID string) *Engine {
	return &Engine{
		doc:     doc,
		env:     env,
		control: control,
		key:     ListenerKey(controlID),
		state:   Idle(),
	}
}

// ListenerKey is the key under which engines register with a control.
func ListenerKey(controlID string) string {
	return "dyncontent.highlight#" + controlID
}

// Bind registers the engine as change listener of its control.
func (e *Engine) Bind() {
	e.doc.SetChangeListener(e.control, e.key, e.onChange)
	tracer().Debugf("highlight engine bound to control, key %q", e.key)
}

// Unbind removes the engine's change listener.
func (e *Engine) Unbind() {
	e.doc.RemoveChangeListener(e.control, e.key)
}

func (e *Engine) onChange(ev w3cdom.ChangeEvent) {
	e.Handle(Event{Value: ev.Value})
}

// Handle runs a complete transition for ev: plan, then apply.
func (e *Engine) Handle(ev Event) State {
	e.mx.Lock()
	defer e.mx.Unlock()
	next, eff := Transition(e.doc, e.env, e.state, ev)
	Apply(e.doc, eff)
	tracer().Infof("highlight %v: %d element(s) marked", next, len(eff.Mark))
	e.state = next
	return next
}

// State returns the current state.
func (e *Engine) State() State {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.state
}
