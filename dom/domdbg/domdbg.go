/*
Package domdbg implements helpers to debug a document tree.

Dump renders a subtree as an indented tree diagram, suitable for test logs.
ToGraphViz writes a subtree in GraphViz (DOT) format, with elements
carrying a given class (usually the highlight marker) filled in a signal
color.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/dyncontent/dom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Dump returns a tree diagram of the elements below and including n.
// Every element is shown with its id and classes; attrs names additional
// attributes to include, e.g. "data-rev". Text nodes consisting of white
// space only are skipped.
func Dump(n *html.Node, attrs ...string) string {
	if n == nil {
		return "<nil>\n"
	}
	p := tp.NewWithRoot(label(n, attrs))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ppt(p, c, attrs)
	}
	return p.String()
}

func ppt(p tp.Tree, n *html.Node, attrs []string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			p.AddNode(fmt.Sprintf("%q", shorten(s, 24)))
		}
		return
	case html.ElementNode:
	default:
		return
	}
	if n.FirstChild == nil {
		p.AddNode(label(n, attrs))
		return
	}
	branch := p.AddBranch(label(n, attrs))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ppt(branch, c, attrs)
	}
}

func label(n *html.Node, attrs []string) string {
	if n.Type == html.DocumentNode {
		return "#document"
	}
	var b strings.Builder
	b.WriteString(n.Data)
	if id, ok := dom.Attr(n, "id"); ok {
		b.WriteString("#" + id)
	}
	for _, c := range dom.ClassList(n) {
		b.WriteString("." + c)
	}
	for _, a := range attrs {
		if v, ok := dom.Attr(n, a); ok {
			fmt.Fprintf(&b, "[%s=%q]", a, v)
		}
	}
	return b.String()
}

func shorten(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l]) + "…"
	}
	return s
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	Marker   string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a document tree. The diagram is in
// GraphViz (DOT) format. Elements carrying class marker are drawn
// highlighted; marker may be empty.
func ToGraphViz(root *html.Node, w io.Writer, marker string) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica", Marker: marker}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*html.Node]string, 1024)
	if err = nodes(root, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

type node struct {
	N      *html.Node
	Name   string
	Label  string
	IsText bool
	Marked bool
}

type edge struct {
	N1, N2 string
}

func nodes(n *html.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
		return nil
	}
	if err := domNode(n, w, dict, gparams); err != nil {
		return err
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		if name := dict[ch]; name != "" {
			if err := gparams.EdgeTmpl.Execute(w, edge{dict[n], name}); err != nil {
				return err
			}
		}
	}
	return nil
}

func domNode(n *html.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	marked := gparams.Marker != "" && dom.ContainsClass(n, gparams.Marker)
	return gparams.NodeTmpl.Execute(w, &node{
		N:      n,
		Name:   name,
		Label:  label(n, nil),
		IsText: n.Type == html.TextNode,
		Marked: marked,
	})
}

func shortText(n *html.Node) string {
	s := "\"\\\"" + shorten(n.Data, 10) + "\\\"\""
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .IsText }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if .Marked }}
{{ .Name }}	[ label={{ printf "%q" .Label }} shape=ellipse style=filled fillcolor=gold ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`
