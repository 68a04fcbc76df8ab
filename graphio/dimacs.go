package graphio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/internal/dderr"
)

// ParsedInput is everything a DIMACS-like input file can describe: the
// graph itself, the start/goal configurations, an optional root set (for
// rooted spanning forests), and any edge colors ('y' lines).
type ParsedInput struct {
	Graph     *Graph
	StartSet  []int
	GoalSet   []int
	RootSet   []int
	EdgeColor map[int]int // edge index -> color, 0 if unset
}

// ParseDIMACS reads the graph/start/goal/color format from r. When
// edgeVariable is true, 's'/'t' lines are interpreted as raw element
// (edge) indices; otherwise they name vertices to be translated through
// the graph's vertex index.
func ParseDIMACS(r io.Reader, edgeVariable bool) (*ParsedInput, error) {
	g := NewGraph()
	out := &ParsedInput{Graph: g, EdgeColor: make(map[int]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	haveStart, haveGoal := false, false
	declaredEdges := -1

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "c":
			continue
		case "p":
			if len(fields) < 4 {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: malformed problem line", lineNo)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: bad vertex count", lineNo)
			}
			m, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: bad edge count", lineNo)
			}
			if n > MaxVertices {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: graph declares %d vertices, limit is %d", lineNo, n, MaxVertices)
			}
			declaredEdges = m
		case "e":
			if len(fields) < 3 {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: malformed edge line", lineNo)
			}
			if _, err := g.AddEdge(fields[1], fields[2], 0); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
		case "s":
			haveStart = true
			set, err := parseElementList(fields[1:], g, edgeVariable, lineNo)
			if err != nil {
				return nil, err
			}
			out.StartSet = append(out.StartSet, set...)
		case "t":
			haveGoal = true
			set, err := parseElementList(fields[1:], g, edgeVariable, lineNo)
			if err != nil {
				return nil, err
			}
			out.GoalSet = append(out.GoalSet, set...)
		case "r":
			set, err := parseElementList(fields[1:], g, false, lineNo)
			if err != nil {
				return nil, err
			}
			out.RootSet = append(out.RootSet, set...)
		case "y":
			if len(fields) < 3 {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: malformed color line", lineNo)
			}
			idx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: bad edge index", lineNo)
			}
			color, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: bad color", lineNo)
			}
			if color > MaxColors {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: color %d exceeds limit %d", lineNo, color, MaxColors)
			}
			out.EdgeColor[idx] = color
		default:
			return nil, errors.Wrapf(dderr.ErrInput, "line %d: unrecognized line type %q", lineNo, fields[0])
		}
		if haveStart && haveGoal && declaredEdges >= 0 && g.EdgeCount() >= declaredEdges {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading DIMACS input")
	}

	g.Update()
	return out, nil
}

// ParseSTFile reads only 's'/'t' lines from an auxiliary file, overriding
// whatever the main input declared (matching --stfile).
func ParseSTFile(r io.Reader, g *Graph, edgeVariable bool) (start, goal []int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "s":
			set, e := parseElementList(fields[1:], g, edgeVariable, lineNo)
			if e != nil {
				return nil, nil, e
			}
			start = append(start, set...)
		case "t":
			set, e := parseElementList(fields[1:], g, edgeVariable, lineNo)
			if e != nil {
				return nil, nil, e
			}
			goal = append(goal, set...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "reading st-file")
	}
	return start, goal, nil
}

func parseElementList(tokens []string, g *Graph, edgeVariable bool, lineNo int) ([]int, error) {
	out := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if edgeVariable {
			idx, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(dderr.ErrInput, "line %d: bad element index %q", lineNo, tok)
			}
			out = append(out, idx)
			continue
		}
		id, err := g.VertexID(tok)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		out = append(out, id)
	}
	return out, nil
}

// InvertSet maps each element x to n+1-x, matching the original's edge
// variable reversal: edges are numbered in input order but ZDD variables
// for edge-universe families are numbered in reverse.
func InvertSet(set []int, n int) []int {
	out := make([]int, len(set))
	for i, x := range set {
		out[i] = n + 1 - x
	}
	return out
}

// FormatSet renders set as a space-separated element list for output, in
// the order given; it does not sort.
func FormatSet(set []int) string {
	parts := make([]string, len(set))
	for i, x := range set {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, " ")
}
