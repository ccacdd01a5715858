// Dropboard is a panel board whose tabs can be dragged between sections.
// Drop a tab on a panel to move it there; drop it anywhere else and it
// settles back into place.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
