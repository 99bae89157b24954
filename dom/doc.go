/*
Package dom implements the document arena the widget operates on.

Status

API is considered stable for the needs of package dyncontent, but may grow.

Overview

A Document wraps an HTML parse tree as produced by golang.org/x/net/html.
It is the only shared mutable resource of the widget: the scope resolver,
the value collector, the control synchronizer and the highlight engine all
receive the same *Document (through the interfaces of package w3cdom) and
operate on it by query and mutate calls.

Queries use CSS selectors, compiled by
https://godoc.org/github.com/andybalholm/cascadia.
Results are always reported in document order.

Events

Browsers dispatch user events one at a time on a single UI thread. Document
mirrors this by serializing DispatchChange: a change event and all of its
listeners run to completion before the next dispatch starts. Listeners must
not dispatch change events themselves.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dyncontent.dom'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.dom")
}
