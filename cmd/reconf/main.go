// Command reconf searches for a reconfiguration sequence between two
// subset configurations of a graph, symbolically, over a ZDD-represented
// admissibility family.
package main

import (
	"os"

	"github.com/ddreconf/reconf/cmd/reconf/cli"
)

func main() {
	os.Exit(cli.Execute())
}
