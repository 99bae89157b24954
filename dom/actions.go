package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MatcherFunc adapts a predicate to interface cascadia.Matcher.
type MatcherFunc func(*html.Node) bool

// Match is part of interface cascadia.Matcher.
func (f MatcherFunc) Match(n *html.Node) bool {
	return f(n)
}

// CompileSelector parses a CSS selector group, e.g. "div.topic, section".
func CompileSelector(selector string) (cascadia.SelectorGroup, error) {
	return cascadia.ParseGroup(selector)
}

// IsElement is a predicate to match elements of a given tag.
func IsElement(tag atom.Atom) cascadia.Matcher {
	return MatcherFunc(func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == tag
	})
}

// HasID is a predicate to match elements with a given id.
// Unlike an "#id" selector it works for ids which are not valid CSS identifiers.
func HasID(id string) cascadia.Matcher {
	return MatcherFunc(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// ElementWithID matches elements of a given tag carrying a given id,
// equivalent to selector "tag#id".
func ElementWithID(tag atom.Atom, id string) cascadia.Matcher {
	isTag, hasID := IsElement(tag), HasID(id)
	return MatcherFunc(func(n *html.Node) bool {
		return isTag.Match(n) && hasID.Match(n)
	})
}

// HasAttribute is a predicate to match elements carrying attribute key,
// regardless of its value (equivalent to selector "[key]").
func HasAttribute(key string) cascadia.Matcher {
	key = strings.ToLower(key)
	return MatcherFunc(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := Attr(n, key)
		return ok
	})
}

// AttributeEquals is a predicate to match elements whose attribute key
// equals value exactly (equivalent to selector `[key="value"]`).
func AttributeEquals(key, value string) cascadia.Matcher {
	key = strings.ToLower(key)
	return MatcherFunc(func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, key)
		return ok && v == value
	})
}

// HasClass is a predicate to match elements carrying class.
func HasClass(class string) cascadia.Matcher {
	return MatcherFunc(func(n *html.Node) bool {
		return n.Type == html.ElementNode && ContainsClass(n, class)
	})
}

// --- Attributes ------------------------------------------------------------

// Attr returns the value of attribute key of n and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr creates or overwrites attribute key of n.
func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr removes attribute key from n. It returns false if n did not
// carry the attribute.
func RemoveAttr(n *html.Node, key string) bool {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// --- Class list ------------------------------------------------------------

// ClassList returns the classes of n.
func ClassList(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// ContainsClass checks if class is in the class list of n.
func ContainsClass(n *html.Node, class string) bool {
	for _, c := range ClassList(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class to n, if not already present.
func AddClass(n *html.Node, class string) bool {
	if class == "" || ContainsClass(n, class) {
		return false
	}
	SetAttr(n, "class", strings.Join(append(ClassList(n), class), " "))
	return true
}

// RemoveClass removes every occurrence of class from n. An empty class
// attribute is dropped altogether, restoring an element which had no classes
// before AddClass.
func RemoveClass(n *html.Node, class string) bool {
	classes := ClassList(n)
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(classes) {
		return false
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
	} else {
		SetAttr(n, "class", strings.Join(kept, " "))
	}
	return true
}

// --- Text and form controls ------------------------------------------------

// TextContent returns the concatenated text of n and all its descendants.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Options returns the <option> children of a <select> element.
func Options(sel *html.Node) []*html.Node {
	var opts []*html.Node
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option {
			opts = append(opts, c)
		}
	}
	return opts
}

// OptionValue returns the value of an <option>: its value attribute or,
// if missing, its text.
func OptionValue(opt *html.Node) string {
	if v, ok := Attr(opt, "value"); ok {
		return v
	}
	return strings.TrimSpace(TextContent(opt))
}

// SelectValue returns the value of a <select> element: the value of the
// (first) option marked as selected, or of the first option if none is.
func SelectValue(sel *html.Node) string {
	opts := Options(sel)
	if len(opts) == 0 {
		return ""
	}
	for _, o := range opts {
		if _, ok := Attr(o, "selected"); ok {
			return OptionValue(o)
		}
	}
	return OptionValue(opts[0])
}

// SetSelectValue marks the first option with the given value as selected and
// unmarks all others. It returns false if no option carries value; then no
// option remains selected.
func SetSelectValue(sel *html.Node, value string) bool {
	found := false
	for _, o := range Options(sel) {
		RemoveAttr(o, "selected")
		if !found && OptionValue(o) == value {
			SetAttr(o, "selected", "")
			found = true
		}
	}
	return found
}
