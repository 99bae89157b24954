/*
Package cssom abstracts parsed CSS style sheets.

Overview

The widget owns exactly one <style> element. Its content is generated from
a template and must be regenerable at any time with byte-identical output.
To get there, generated text is run through a CSS parser and rendered back
from the parsed rules; formatting differences in the template therefore
never leak into the document.

CSS handling is de-coupled by introducing the interfaces StyleSheet and
Rule. A concrete implementation, based on
https://github.com/aymerick/douceur, lives in package douceuradapter.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'dyncontent.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.cssom")
}
