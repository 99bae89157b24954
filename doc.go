/*
Package dyncontent installs a release selector into HTML documents.

Authors of long technical documents tag passages with an attribute, e.g.
data-rev="2.0". Package dyncontent collects the distinct values of this
attribute within a search scope, inserts a <select> control listing them,
and highlights every element in scope carrying the selected value by
toggling a marker class. A generated <style> element makes highlighted
elements visible.

The pipeline runs once when the document is ready:

	scope.Resolve → collect.Values → control.Synchronize → highlight.Engine.Bind

If the insertion target or the search scope cannot be resolved, or no
element in scope carries the attribute, the pipeline aborts and leaves the
document as it was. Running the pipeline again on the same document finds
control and style by their ids and refreshes them; it never creates
duplicates.

After installation, the highlight engine is the only component doing any
work, once per change event of the control:

	doc, _ := dom.ParseString(page)
	report, err := dyncontent.Install(doc, config.Default())
	if err != nil || !report.OK() {
	    ...
	}
	report.Widget.Select("2.0")
	fmt.Println(doc.String())

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dyncontent

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'dyncontent.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.pipeline")
}
