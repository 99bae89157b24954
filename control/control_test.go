package control_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/control"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/style/cssom"
	"github.com/npillmayer/dyncontent/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

const page = `<!DOCTYPE html>
<html><head><title>T</title></head>
<body>
  <div class="topic section" id="main">
    <h1>Topic</h1>
    <p data-rev="2.0">new</p>
    <p data-rev="1.5">old</p>
  </div>
</body></html>`

func setup(t *testing.T) (*dom.Document, config.Config) {
	t.Helper()
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	return doc, config.Default()
}

func TestGenerateStyleIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	a, err := control.GenerateStyle(config.DefaultStyleTemplate, "sel", "mark")
	require.NoError(t, err)
	b, err := control.GenerateStyle(config.DefaultStyleTemplate, "sel", "mark")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "select#sel")
	assert.Contains(t, a, ".mark")
	assert.NotContains(t, a, "{{")
	//
	sheet, err := douceuradapter.Parse(a)
	require.NoError(t, err)
	rules := cssom.RulesFor(sheet, ".mark")
	require.NotEmpty(t, rules)
	found := false
	for _, r := range rules {
		for _, p := range r.Properties() {
			if r.IsImportant(p) {
				found = true
			}
		}
	}
	assert.True(t, found, "expected highlight rule to carry !important declarations")
}

func TestGenerateStyleNormalizesFormatting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	compact := `#{{.ControlID}}{color:red}.{{.MarkerClass}}{color:blue}`
	spread := "#{{.ControlID}} {\n    color: red;\n}\n\n.{{.MarkerClass}}   {  color : blue }"
	a, err := control.GenerateStyle(compact, "x", "y")
	require.NoError(t, err)
	b, err := control.GenerateStyle(spread, "x", "y")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateStyleTemplateErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	_, err := control.GenerateStyle(`#{{.ControlID {}`, "x", "y")
	assert.Error(t, err, "unterminated action")
	_, err = control.GenerateStyle(`#{{.Unknown}} {}`, "x", "y")
	assert.Error(t, err, "unknown template parameter")
}

func TestSynchronizeCreates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	doc, conf := setup(t)
	target := doc.GetElementByID("main")
	h, err := control.Synchronize(doc, conf, target, []string{"2.0", "1.5"})
	require.NoError(t, err)
	assert.True(t, h.ControlCreated)
	assert.True(t, h.StyleCreated)
	assert.False(t, h.Refreshed())
	//
	assert.Equal(t, h.Control, target.FirstChild, "control must be first child of target")
	assert.Equal(t, doc.Head(), h.Style.Parent, "style element belongs into <head>")
	assert.Equal(t, []string{"", "2.0", "1.5"}, control.OptionValues(h.Control))
	opts := dom.Options(h.Control)
	assert.Equal(t, conf.DefaultLabel, dom.TextContent(opts[0]))
	assert.Equal(t, "2.0", dom.TextContent(opts[1]))
	assert.Equal(t, "", dom.SelectValue(h.Control))
}

func TestSynchronizeIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	doc, conf := setup(t)
	target := doc.GetElementByID("main")
	h1, err := control.Synchronize(doc, conf, target, []string{"2.0", "1.5"})
	require.NoError(t, err)
	first := doc.String()
	h2, err := control.Synchronize(doc, conf, target, []string{"2.0", "1.5"})
	require.NoError(t, err)
	assert.True(t, h2.Refreshed())
	assert.Same(t, h1.Control, h2.Control)
	assert.Same(t, h1.Style, h2.Style)
	assert.Equal(t, first, doc.String(), "second run must not change the document")
	//
	assert.Len(t, doc.QueryAll(nil, dom.IsElement(atom.Select)), 1)
	assert.Len(t, doc.QueryAll(nil, dom.IsElement(atom.Style)), 1)
}

func TestSynchronizeReplacesStaleOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	doc, conf := setup(t)
	target := doc.GetElementByID("main")
	_, err := control.Synchronize(doc, conf, target, []string{"2.0", "1.5"})
	require.NoError(t, err)
	h, err := control.Synchronize(doc, conf, target, []string{"3.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "3.0"}, control.OptionValues(h.Control))
}

func TestSynchronizeAdoptsExistingElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	html := strings.Replace(page, "<title>T</title>",
		`<title>T</title><style id="dynamicContentStyles">p { color: green }</style>`, 1)
	html = strings.Replace(html, "<h1>Topic</h1>",
		`<h1>Topic</h1><select id="dynamicContentSelect"><option value="9">9</option></select>`, 1)
	doc, err := dom.ParseString(html)
	require.NoError(t, err)
	conf := config.Default()
	target := doc.GetElementByID("main")
	h, err := control.Synchronize(doc, conf, target, []string{"2.0"})
	require.NoError(t, err)
	assert.True(t, h.Refreshed())
	assert.NotEqual(t, h.Control, target.FirstChild, "existing control must stay where it is")
	assert.Equal(t, []string{"", "2.0"}, control.OptionValues(h.Control))
	assert.NotContains(t, dom.TextContent(h.Style), "green")
}

func TestSynchronizeTemplateErrorLeavesDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	doc, conf := setup(t)
	before := doc.String()
	conf.StyleTemplate = `#{{.Broken`
	_, err := control.Synchronize(doc, conf, doc.GetElementByID("main"), []string{"1"})
	assert.Error(t, err)
	assert.Equal(t, before, doc.String())
}

func TestSynchronizeNeedsTarget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	doc, conf := setup(t)
	_, err := control.Synchronize(doc, conf, nil, []string{"1"})
	assert.ErrorIs(t, err, control.ErrNoTarget)
}

func TestRefreshStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "dyncontent.control")
	defer teardown()
	//
	doc, conf := setup(t)
	el, created, err := control.ReconcileStyle(doc, conf)
	require.NoError(t, err)
	assert.True(t, created)
	want := dom.TextContent(el)
	doc.SetText(el, "tampered")
	require.NoError(t, control.RefreshStyle(doc, el, conf))
	assert.Equal(t, want, dom.TextContent(el))
	assert.Same(t, el, control.FindStyle(doc, conf.StyleID))
}
