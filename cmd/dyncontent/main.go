/*
Command dyncontent installs a release selector into HTML files.

	dyncontent apply [--select VALUE] [-o OUT] IN.html
	dyncontent values IN.html
	dyncontent style

Configuration is taken from the file given by --config (YAML), or else from
a NestedText file "dyncontent.nt" at the usual configuration locations.
Flags override both.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
