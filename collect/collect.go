/*
Package collect gathers the distinct values of an attribute within a search
scope and puts them into a deterministic order.

Ordering

Values are compared with a locale-aware collator
(golang.org/x/text/collate) in numeric mode: runs of digits compare as
numbers, so "2" sorts before "10" and "1.5" before "2.0". Strings which
the collator considers equal but which differ byte-wise are ordered by
byte comparison, keeping the order total. Descending order negates the
comparator; the sequence is never reversed after sorting.

Collection is not cached. Every call reflects the document as it is at
call time.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package collect

import (
	"errors"
	"sort"
	"strings"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/w3cdom"
	"github.com/npillmayer/dyncontent/scope"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// tracer traces with key 'dyncontent.collect'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.collect")
}

// ErrNoMatches signals that no element in scope carries the attribute.
// Values itself never returns it; it is for callers which cannot proceed
// with an empty value set.
var ErrNoMatches = errors.New("no attribute matches in scope")

// Order determines how values are sorted.
type Order struct {
	Locale    language.Tag
	Direction config.SortDirection
}

// OrderFor extracts the value order from a configuration.
func OrderFor(conf config.Config) Order {
	return Order{Locale: conf.LocaleTag(), Direction: conf.Sort}
}

// Comparator returns a three-way comparison function for o.
//
// The returned function is not safe for concurrent use, as collators keep
// internal buffers.
func Comparator(o Order) func(a, b string) int {
	coll := collate.New(o.Locale, collate.Numeric)
	sign := o.Direction.Sign()
	return func(a, b string) int {
		c := coll.CompareString(a, b)
		if c == 0 {
			c = strings.Compare(a, b)
		}
		return sign * c
	}
}

// Sort orders values in place.
func Sort(values []string, o Order) {
	cmp := Comparator(o)
	sort.SliceStable(values, func(i, j int) bool {
		return cmp(values[i], values[j]) < 0
	})
}

// Values scans the scope for elements carrying attribute and returns the
// distinct attribute values, sorted by o. Elements with an empty attribute
// value contribute the empty string. If no element carries the attribute,
// the result is an empty slice; callers must not treat this as an error.
func Values(doc w3cdom.Querier, sc *scope.Scope, attribute string, o Order) []string {
	key := strings.ToLower(attribute)
	elements := sc.Query(doc, dom.HasAttribute(key))
	set := make(map[string]struct{}, len(elements))
	values := make([]string, 0, len(elements))
	for _, e := range elements {
		v, _ := dom.Attr(e, key)
		if _, seen := set[v]; seen {
			continue
		}
		set[v] = struct{}{}
		values = append(values, v)
	}
	Sort(values, o)
	tracer().Debugf("collected %d distinct value(s) of %q from %d element(s)",
		len(values), attribute, len(elements))
	return values
}

// Collect is Values with the root collation order.
func Collect(doc w3cdom.Querier, sc *scope.Scope, attribute string, dir config.SortDirection) []string {
	return Values(doc, sc, attribute, Order{Locale: language.Und, Direction: dir})
}
