// Command edgevm is the interpreter's CLI: run, lex, and parse
// subcommands mirroring the teacher's dwscript binary.
package main

import (
	"fmt"
	"os"

	"github.com/afc/edgevm/cmd/edgevm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
