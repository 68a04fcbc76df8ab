package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ddreconf/reconf/ddspec"
	"github.com/ddreconf/reconf/graphio"
	"github.com/ddreconf/reconf/internal/dderr"
	"github.com/ddreconf/reconf/internal/logging"
	"github.com/ddreconf/reconf/reconf"
	"github.com/ddreconf/reconf/solutionspace"
	"github.com/ddreconf/reconf/specs"
	"github.com/ddreconf/reconf/zdd"
)

func runReconf(cmd *cobra.Command, args []string) error {
	if opts.ts {
		return errors.Wrap(dderr.ErrUnsupportedConfiguration, "token-sliding (--ts) is not implemented")
	}

	kind, err := resolveKind()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrapf(dderr.ErrInput, "opening %s: %v", args[0], err)
	}
	defer f.Close()

	parsed, err := graphio.ParseDIMACS(f, kind.IsEdgeVariable())
	if err != nil {
		return err
	}

	if opts.stFile != "" {
		sf, err := os.Open(opts.stFile)
		if err != nil {
			return errors.Wrapf(dderr.ErrInput, "opening %s: %v", opts.stFile, err)
		}
		defer sf.Close()
		start, goal, err := graphio.ParseSTFile(sf, parsed.Graph, kind.IsEdgeVariable())
		if err != nil {
			return err
		}
		parsed.StartSet, parsed.GoalSet = start, goal
	}

	verbosity := logging.Normal
	switch {
	case opts.quiet:
		verbosity = logging.Quiet
	case opts.info:
		verbosity = logging.Info
	}
	logger := logging.New(verbosity)
	defer logger.Sync()

	kernel := zdd.NewKernel(opts.initialNodes, opts.maxNodes)

	var roots []int
	if kind == solutionspace.RootedSpanningForest || kind == solutionspace.SteinerTree {
		roots = parsed.RootSet
	}

	var colors []int
	if opts.rainbow {
		n := parsed.Graph.EdgeCount()
		if !kind.IsEdgeVariable() {
			n = parsed.Graph.VertexCount()
		}
		colors = make([]int, n+1)
		for idx, c := range parsed.EdgeColor {
			if idx >= 1 && idx <= n {
				colors[idx] = c
			}
		}
	}

	ctx := context.Background()
	space, err := solutionspace.Build(ctx, kernel, parsed.Graph, kind, roots, opts.rainbow, colors)
	if err != nil {
		return err
	}

	model := reconf.TokenJump
	n := solutionspaceUniverse(parsed.Graph, kind)
	if opts.tar >= 0 {
		model = reconf.TokenAddRemove
		sc := specs.NewSizeConstraint(n, specs.Between(opts.tar, specs.NoLimit))
		scZdd, serr := ddspec.Build(ctx, kernel, sc)
		if serr != nil {
			return serr
		}
		space, err = kernel.Intersect(space, scZdd)
		if err != nil {
			return err
		}
	}

	if opts.enum {
		return runEnumerate(kernel, space)
	}

	engine := reconf.New(reconf.Config{
		Kernel:        kernel,
		SolutionSpace: space,
		Variables:     n,
		Model:         model,
		Logger:        logger,
		GC:            opts.gc,
		SwapDir:       opts.zddDir,
	})

	start, err := resolveStart(kernel, space, parsed, kind, n)
	if err != nil {
		return err
	}

	if !opts.st && !opts.stb && !opts.longest && !opts.width {
		return graphio.WriteVerdict(os.Stdout, kernel.IsMember(space, start))
	}

	goal := toSet(normalizedGoal(parsed, kind, n))

	switch {
	case opts.longest:
		seq, err := engine.FindLongest(ctx, start)
		if err != nil {
			return err
		}
		return writeWitness(true, seq, kind, n)
	case opts.width:
		ok, seq, widths, err := engine.FindShortestWithWidth(ctx, start, goal)
		if err != nil {
			return err
		}
		for i, w := range widths {
			fmt.Fprintf(os.Stderr, "width[%d] = %s\n", i, w)
		}
		return writeWitness(ok, seq, kind, n)
	case opts.stb:
		ok, seq, err := engine.FindSequenceBidirectional(ctx, start, goal)
		if err != nil {
			return err
		}
		return writeWitness(ok, seq, kind, n)
	default: // --st (with no search flag, the membership verdict above was written)
		ok, seq, err := engine.FindSequence(ctx, start, goal)
		if err != nil {
			return err
		}
		return writeWitness(ok, seq, kind, n)
	}
}

func resolveKind() (solutionspace.Kind, error) {
	type flagKind struct {
		set  bool
		kind solutionspace.Kind
	}
	candidates := []flagKind{
		{opts.clique, solutionspace.Clique},
		{opts.vc, solutionspace.VertexCover},
		{opts.ds, solutionspace.DominatingSet},
		{opts.matching, solutionspace.Matching},
		{opts.path, solutionspace.Path},
		{opts.tree, solutionspace.Tree},
		{opts.sptree, solutionspace.SpanningTree},
		{opts.forest, solutionspace.Forest},
		{opts.rspforest, solutionspace.RootedSpanningForest},
		{opts.sttree, solutionspace.SteinerTree},
	}
	chosen := -1
	for _, c := range candidates {
		if c.set {
			if chosen >= 0 {
				return 0, errors.Wrap(dderr.ErrInput, "more than one solution-family flag given")
			}
			chosen = int(c.kind)
		}
	}
	if chosen < 0 {
		return solutionspace.IndependentSet, nil
	}
	return solutionspace.Kind(chosen), nil
}

func solutionspaceUniverse(g *graphio.Graph, kind solutionspace.Kind) int {
	if kind.IsEdgeVariable() {
		return g.EdgeCount()
	}
	return g.VertexCount()
}

func resolveStart(kernel *zdd.Kernel, space zdd.Handle, parsed *graphio.ParsedInput, kind solutionspace.Kind, n int) (map[int]bool, error) {
	if opts.randStart {
		if opts.randMax {
			max := kernel.MaxCardinality(space)
			member := firstMaxMember(kernel, space, max)
			return member, nil
		}
		seed := uint64(time.Now().UnixNano())
		return kernel.SampleRandom(space, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))), nil
	}
	return toSet(normalizedStart(parsed, kind, n)), nil
}

// firstMaxMember returns the first enumerated member whose cardinality
// equals max, matching --randmax's "pick from argmax|A|" contract without
// requiring a second ZDD restructuring pass.
func firstMaxMember(kernel *zdd.Kernel, space zdd.Handle, max int) map[int]bool {
	var found map[int]bool
	kernel.Enumerate(space, func(members []int) bool {
		if len(members) == max {
			found = make(map[int]bool, len(members))
			for _, m := range members {
				found[m] = true
			}
			return false
		}
		return true
	})
	return found
}

func normalizedStart(parsed *graphio.ParsedInput, kind solutionspace.Kind, n int) []int {
	if kind.IsEdgeVariable() {
		return graphio.InvertSet(parsed.StartSet, n)
	}
	return parsed.StartSet
}

func normalizedGoal(parsed *graphio.ParsedInput, kind solutionspace.Kind, n int) []int {
	if kind.IsEdgeVariable() {
		return graphio.InvertSet(parsed.GoalSet, n)
	}
	return parsed.GoalSet
}

func toSet(members []int) map[int]bool {
	out := make(map[int]bool, len(members))
	for _, m := range members {
		out[m] = true
	}
	return out
}

func writeWitness(ok bool, seq [][]int, kind solutionspace.Kind, n int) error {
	if err := graphio.WriteVerdict(os.Stdout, ok); err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if kind.IsEdgeVariable() {
		inverted := make([][]int, len(seq))
		for i, set := range seq {
			inverted[i] = graphio.InvertSet(set, n)
		}
		seq = inverted
	}
	return graphio.WriteSequence(os.Stdout, seq)
}

func runEnumerate(kernel *zdd.Kernel, space zdd.Handle) error {
	var members [][]int
	kernel.Enumerate(space, func(m []int) bool {
		members = append(members, append([]int(nil), m...))
		return true
	})
	return graphio.WriteEnumeration(os.Stdout, members)
}
