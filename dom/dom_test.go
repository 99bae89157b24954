package dom_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html/atom"
)

const page = `<!DOCTYPE html>
<html><head><title>T</title></head>
<body>
  <div class="topic section" id="main">
    <p data-rev="2.0">new</p>
    <p data-rev="1.5" class="note">old</p>
    <p>untagged</p>
  </div>
</body></html>`

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(s)
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	return doc
}

func TestHeadAndBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.dom")
	defer teardown()
	//
	doc := parse(t, page)
	if doc.Head() == nil || doc.Head().DataAtom != atom.Head {
		t.Errorf("expected document to have a <head>, hasn't")
	}
	if doc.Body() == nil || doc.Body().DataAtom != atom.Body {
		t.Errorf("expected document to have a <body>, hasn't")
	}
	if _, err := dom.FromHTMLNode(nil); err == nil {
		t.Errorf("expected error for nil root, got none")
	}
}

func TestQuerySelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.dom")
	defer teardown()
	//
	doc := parse(t, page)
	n, err := doc.QuerySelector("div.topic.section")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := dom.Attr(n, "id"); v != "main" {
		t.Errorf("expected to find div#main, found %v", n)
	}
	ps, err := doc.QuerySelectorAll("div.topic.section [data-rev]")
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 {
		t.Errorf("expected 2 tagged paragraphs, have %d", len(ps))
	}
	if _, err := doc.QuerySelector("div[["); err == nil {
		t.Errorf("expected invalid selector to be rejected")
	}
	if doc.GetElementByID("main") != n {
		t.Errorf("expected GetElementByID to find the same div")
	}
}

func TestMatchers(t *testing.T) {
	doc := parse(t, page)
	if got := len(doc.QueryAll(nil, dom.HasAttribute("DATA-REV"))); got != 2 {
		t.Errorf("expected attribute match to be case-insensitive in key, have %d matches", got)
	}
	if got := len(doc.QueryAll(nil, dom.AttributeEquals("data-rev", "1.5"))); got != 1 {
		t.Errorf("expected 1 match for data-rev=1.5, have %d", got)
	}
	if got := len(doc.QueryAll(nil, dom.AttributeEquals("data-rev", "1"))); got != 0 {
		t.Errorf("expected exact string equality, have %d matches for prefix", got)
	}
	if doc.QueryFirst(nil, dom.ElementWithID(atom.Div, "main")) == nil {
		t.Errorf("expected to find div#main")
	}
	if doc.QueryFirst(nil, dom.ElementWithID(atom.Span, "main")) != nil {
		t.Errorf("expected span#main not to exist")
	}
	if got := len(doc.QueryAll(nil, dom.HasClass("note"))); got != 1 {
		t.Errorf("expected 1 element with class note, have %d", got)
	}
}

func TestClassList(t *testing.T) {
	doc := parse(t, page)
	p := doc.QueryFirst(nil, dom.AttributeEquals("data-rev", "2.0"))
	if !doc.AddClass(p, "hl") {
		t.Fatalf("expected AddClass to change class list")
	}
	if doc.AddClass(p, "hl") {
		t.Errorf("expected second AddClass to be a no-op")
	}
	if !dom.ContainsClass(p, "hl") {
		t.Errorf("expected p to carry class hl")
	}
	if !doc.RemoveClass(p, "hl") {
		t.Errorf("expected RemoveClass to change class list")
	}
	if _, ok := dom.Attr(p, "class"); ok {
		t.Errorf("expected empty class attribute to be dropped")
	}
	q := doc.QueryFirst(nil, dom.HasClass("note"))
	doc.AddClass(q, "hl")
	doc.RemoveClass(q, "hl")
	if v, _ := dom.Attr(q, "class"); v != "note" {
		t.Errorf("expected class list to be restored to 'note', is %q", v)
	}
}

func TestMutations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.dom")
	defer teardown()
	//
	doc := parse(t, page)
	div := doc.GetElementByID("main")
	sel := doc.CreateElement(atom.Select, "chooser")
	doc.InsertFirstChild(div, sel)
	first := div.FirstChild
	if first != sel {
		t.Fatalf("expected select to be first child of div, is %v", first)
	}
	for _, v := range []string{"a", "b"} {
		opt := doc.CreateElement(atom.Option, "")
		doc.SetAttribute(opt, "value", v)
		doc.SetText(opt, strings.ToUpper(v))
		doc.AppendChild(sel, opt)
	}
	if len(dom.Options(sel)) != 2 {
		t.Fatalf("expected 2 options, have %d", len(dom.Options(sel)))
	}
	if n := doc.RemoveChildren(sel); n != 2 {
		t.Errorf("expected 2 removed children, have %d", n)
	}
	if sel.FirstChild != nil {
		t.Errorf("expected select to be empty")
	}
	out := doc.String()
	if !strings.Contains(out, `<select id="chooser"></select>`) {
		t.Errorf("expected rendered select, got %s", out)
	}
}

func TestSelectValue(t *testing.T) {
	doc := parse(t, `<select id="s"><option value="">pick</option><option value="x">X</option><option>y</option></select>`)
	sel := doc.GetElementByID("s")
	if v := dom.SelectValue(sel); v != "" {
		t.Errorf("expected first option to be the default value, is %q", v)
	}
	if !dom.SetSelectValue(sel, "y") {
		t.Fatalf("expected option y (by text) to be found")
	}
	if v := dom.SelectValue(sel); v != "y" {
		t.Errorf("expected value y, is %q", v)
	}
	if dom.SetSelectValue(sel, "zzz") {
		t.Errorf("expected unknown value not to be found")
	}
	if v := dom.SelectValue(sel); v != "" {
		t.Errorf("expected value to fall back to first option, is %q", v)
	}
}

func TestChangeListenersAreKeyed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.dom")
	defer teardown()
	//
	doc := parse(t, page)
	target := doc.GetElementByID("main")
	var got []string
	doc.SetChangeListener(target, "k", func(ev w3cdom.ChangeEvent) { got = append(got, "first:"+ev.Value) })
	doc.SetChangeListener(target, "k", func(ev w3cdom.ChangeEvent) { got = append(got, "second:"+ev.Value) })
	doc.SetChangeListener(target, "other", func(ev w3cdom.ChangeEvent) { got = append(got, "other:"+ev.Value) })
	if doc.ListenerCount(target) != 2 {
		t.Fatalf("expected 2 listeners, have %d", doc.ListenerCount(target))
	}
	doc.DispatchChange(target, "v")
	if strings.Join(got, ",") != "second:v,other:v" {
		t.Errorf("unexpected listener calls: %v", got)
	}
	doc.RemoveChangeListener(target, "other")
	if doc.ListenerCount(target) != 1 {
		t.Errorf("expected 1 listener after removal, have %d", doc.ListenerCount(target))
	}
}

func TestDispatchIsSerialized(t *testing.T) {
	doc := parse(t, page)
	target := doc.GetElementByID("main")
	active, maxActive := 0, 0
	var mx sync.Mutex
	doc.SetChangeListener(target, "k", func(w3cdom.ChangeEvent) {
		mx.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mx.Unlock()
		doc.AddClass(target, "busy") // touch the tree while "inside" the handler
		doc.RemoveClass(target, "busy")
		mx.Lock()
		active--
		mx.Unlock()
	})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc.DispatchChange(target, "x")
		}()
	}
	wg.Wait()
	if maxActive != 1 {
		t.Errorf("expected handlers never to overlap, saw %d concurrent", maxActive)
	}
}

func TestRemovedSubtreeDropsListeners(t *testing.T) {
	doc := parse(t, `<div id="outer"><select id="s"></select></div>`)
	outer, sel := doc.GetElementByID("outer"), doc.GetElementByID("s")
	doc.SetChangeListener(sel, "k", func(w3cdom.ChangeEvent) {})
	doc.RemoveChildren(outer)
	if doc.ListenerCount(sel) != 0 {
		t.Errorf("expected listeners of detached select to be dropped")
	}
}
