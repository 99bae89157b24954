package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoDocument is returned if a Document is created from a nil node.
var ErrNoDocument = errors.New("no document node")

// Document is the arena holding an HTML parse tree.
// All mutations of the tree should go through the Document.
type Document struct {
	root      *html.Node
	dispatch  sync.Mutex // serializes change events
	mx        sync.RWMutex
	listeners map[*html.Node][]keyedListener
}

type keyedListener struct {
	key string
	l   w3cdom.ChangeListener
}

var _ w3cdom.Document = &Document{}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromHTMLNode(root)
}

// ParseString is a convenience wrapper for Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromHTMLNode wraps an existing parse tree. root is usually the html.DocumentNode
// returned by html.Parse, but any node will do; Head and Body will then return
// nil if the subtree contains no such elements.
func FromHTMLNode(root *html.Node) (*Document, error) {
	if root == nil {
		return nil, ErrNoDocument
	}
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]keyedListener),
	}, nil
}

// Root returns the document node.
func (doc *Document) Root() *html.Node {
	return doc.root
}

// Head returns the <head> element, if any.
func (doc *Document) Head() *html.Node {
	return doc.QueryFirst(doc.root, IsElement(atom.Head))
}

// Body returns the <body> element, if any.
func (doc *Document) Body() *html.Node {
	return doc.QueryFirst(doc.root, IsElement(atom.Body))
}

// Render writes the document as HTML to w.
func (doc *Document) Render(w io.Writer) error {
	return html.Render(w, doc.root)
}

func (doc *Document) String() string {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		tracer().Errorf("cannot render document: %v", err)
	}
	return buf.String()
}

// --- Queries ---------------------------------------------------------------

// QueryFirst returns the first descendant of from matching m, or nil.
// If from is nil, the search starts at the document node.
func (doc *Document) QueryFirst(from *html.Node, m cascadia.Matcher) *html.Node {
	if from == nil {
		from = doc.root
	}
	return cascadia.Query(from, m)
}

// QueryAll returns all descendants of from matching m, in document order.
// If from is nil, the search starts at the document node.
func (doc *Document) QueryAll(from *html.Node, m cascadia.Matcher) []*html.Node {
	if from == nil {
		from = doc.root
	}
	return cascadia.QueryAll(from, m)
}

// QuerySelector compiles a CSS selector (group) and returns the first matching
// element in document order.
func (doc *Document) QuerySelector(selector string) (*html.Node, error) {
	m, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return doc.QueryFirst(doc.root, m), nil
}

// QuerySelectorAll compiles a CSS selector (group) and returns all matching
// elements in document order.
func (doc *Document) QuerySelectorAll(selector string) ([]*html.Node, error) {
	m, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return doc.QueryAll(doc.root, m), nil
}

// GetElementByID returns the first element with the given id, or nil.
func (doc *Document) GetElementByID(id string) *html.Node {
	return doc.QueryFirst(doc.root, HasID(id))
}

// --- Mutations -------------------------------------------------------------

// CreateElement creates a new detached element. If id is non-empty, the
// element gets an id attribute.
func (doc *Document) CreateElement(tag atom.Atom, id string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
	}
	if id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	return n
}

// InsertFirstChild inserts child as the first child of parent.
// child must not be attached to a tree.
func (doc *Document) InsertFirstChild(parent, child *html.Node) {
	parent.InsertBefore(child, parent.FirstChild)
}

// AppendChild appends child as the last child of parent.
// child must not be attached to a tree.
func (doc *Document) AppendChild(parent, child *html.Node) {
	parent.AppendChild(child)
}

// RemoveChildren detaches all children of n and returns how many there were.
// Change listeners registered for removed subtrees are dropped.
func (doc *Document) RemoveChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		doc.forgetListeners(c)
		count++
	}
	return count
}

// SetText replaces all children of n by a single text node.
func (doc *Document) SetText(n *html.Node, text string) {
	doc.RemoveChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetAttribute sets attribute key of n to value.
func (doc *Document) SetAttribute(n *html.Node, key, value string) {
	SetAttr(n, key, value)
}

// AddClass adds class to the class list of n.
func (doc *Document) AddClass(n *html.Node, class string) bool {
	return AddClass(n, class)
}

// RemoveClass removes class from the class list of n.
func (doc *Document) RemoveClass(n *html.Node, class string) bool {
	return RemoveClass(n, class)
}

// --- Events ----------------------------------------------------------------

// SetChangeListener registers l for change events of target under key,
// replacing a listener previously registered with the same key.
func (doc *Document) SetChangeListener(target *html.Node, key string, l w3cdom.ChangeListener) {
	if target == nil || l == nil {
		return
	}
	doc.mx.Lock()
	defer doc.mx.Unlock()
	ls := doc.listeners[target]
	for i := range ls {
		if ls[i].key == key {
			ls[i].l = l
			return
		}
	}
	doc.listeners[target] = append(ls, keyedListener{key: key, l: l})
}

// RemoveChangeListener drops the listener registered under key for target.
func (doc *Document) RemoveChangeListener(target *html.Node, key string) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	ls := doc.listeners[target]
	for i := range ls {
		if ls[i].key == key {
			doc.listeners[target] = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(doc.listeners[target]) == 0 {
		delete(doc.listeners, target)
	}
}

// ListenerCount returns the number of change listeners registered for target.
func (doc *Document) ListenerCount(target *html.Node) int {
	doc.mx.RLock()
	defer doc.mx.RUnlock()
	return len(doc.listeners[target])
}

// DispatchChange calls all change listeners of target, in registration order.
// Dispatches are serialized: a second call blocks until the first one has
// run all of its listeners.
func (doc *Document) DispatchChange(target *html.Node, value string) {
	doc.dispatch.Lock()
	defer doc.dispatch.Unlock()
	doc.mx.RLock()
	ls := make([]keyedListener, len(doc.listeners[target]))
	copy(ls, doc.listeners[target])
	doc.mx.RUnlock()
	tracer().Debugf("dispatching change event (value=%q) to %d listener(s)", value, len(ls))
	ev := w3cdom.ChangeEvent{Target: target, Value: value}
	for _, kl := range ls {
		kl.l(ev)
	}
}

func (doc *Document) forgetListeners(n *html.Node) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	if len(doc.listeners) == 0 {
		return
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		delete(doc.listeners, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
}
