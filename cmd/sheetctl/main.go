// sheetctl inspects rule sheet files: it resolves rule chains, lists the
// keys a sheet answers for and prints sheet files in canonical form.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
