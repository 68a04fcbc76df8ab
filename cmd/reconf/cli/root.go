// Package cli wires the reconf command line: flag parsing against
// spf13/cobra, diagnostics through go.uber.org/zap, and dispatch into
// graphio, solutionspace, and reconf. Grounded on
// junjiewwang-perf-analysis/cmd/cli/cmd's root-command/subcommand-flags
// layout, collapsed to a single command since reconf has no subcommands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ddreconf/reconf/internal/dderr"
)

var opts options

type options struct {
	randStart bool
	randMax   bool
	enum      bool
	st        bool
	stb       bool
	stFile    string
	zddDir    string
	longest   bool
	width     bool
	gc        bool
	rainbow   bool
	info      bool
	quiet     bool

	ts  bool
	tar int

	indset    bool
	clique    bool
	vc        bool
	ds        bool
	matching  bool
	path      bool
	tree      bool
	sptree    bool
	forest    bool
	rspforest bool
	sttree    bool

	initialNodes int
	maxNodes     int
}

var rootCmd = &cobra.Command{
	Use:   "reconf <graph_file>",
	Short: "Search for a token-reconfiguration sequence over a graph's subset family",
	Long: `reconf builds the ZDD admissibility family for a chosen subset kind
(independent set, clique, vertex cover, dominating set, matching, path,
tree, spanning tree, forest, rooted spanning forest, Steiner tree) over a
DIMACS-like graph file, then searches it for a token-jumping or
token-addition-removal reconfiguration sequence between a start and goal
configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconf,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&opts.randStart, "randstart", false, "pick the start configuration uniformly at random from the admissibility family")
	f.BoolVar(&opts.randMax, "randmax", false, "with --randstart, pick from the family's maximum-cardinality members only")
	f.BoolVar(&opts.enum, "enum", false, "enumerate every member of the admissibility family and exit")
	f.BoolVar(&opts.st, "st", false, "compute a reconfiguration sequence from the start to the goal configuration")
	f.BoolVar(&opts.stb, "stb", false, "compute a reconfiguration sequence using bidirectional search")
	f.StringVar(&opts.stFile, "stfile", "", "read the start/goal configuration from this file instead of the graph file")
	f.StringVar(&opts.zddDir, "zdddir", "", "directory for frontier disk swap-out (older frontiers are written there every 1000 steps)")
	f.BoolVar(&opts.longest, "longest", false, "compute the longest reconfiguration walk from the start configuration")
	f.BoolVar(&opts.width, "width", false, "run the bidirectional search and report the width of each frontier cut along the sequence (diagnostic only)")
	f.BoolVar(&opts.gc, "gc", false, "run garbage collection every 1000 frontier steps")
	f.BoolVar(&opts.rainbow, "rainbow", false, "intersect the admissibility family with a rainbow-coloring constraint")
	f.BoolVar(&opts.info, "info", false, "emit progress diagnostics to stderr")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all but error diagnostics")

	f.BoolVar(&opts.ts, "ts", false, "token-sliding model (not implemented)")
	f.IntVar(&opts.tar, "tar", -1, "token-addition-removal model with the given minimum size k (default: token jumping)")

	f.BoolVar(&opts.indset, "indset", false, "independent sets (default solution family)")
	f.BoolVar(&opts.clique, "clique", false, "cliques")
	f.BoolVar(&opts.vc, "vc", false, "vertex covers")
	f.BoolVar(&opts.ds, "ds", false, "dominating sets")
	f.BoolVar(&opts.matching, "matching", false, "matchings")
	f.BoolVar(&opts.path, "path", false, "paths")
	f.BoolVar(&opts.tree, "tree", false, "trees")
	f.BoolVar(&opts.sptree, "sptree", false, "spanning trees")
	f.BoolVar(&opts.forest, "forest", false, "forests")
	f.BoolVar(&opts.rspforest, "rspforest", false, "rooted spanning forests")
	f.BoolVar(&opts.sttree, "sttree", false, "Steiner trees")

	f.IntVar(&opts.initialNodes, "initial-nodes", 1<<16, "initial ZDD kernel node table size")
	f.IntVar(&opts.maxNodes, "max-nodes", 1<<24, "maximum ZDD kernel node table size before reporting out-of-memory")
}

// Execute parses arguments and runs the command, returning the process
// exit code spec.md §7 assigns to the outcome.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := exitCodeFromError(err); ok {
			return code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func exitCodeFromError(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	return dderr.ExitCode(err), true
}
