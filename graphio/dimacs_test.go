package graphio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddreconf/reconf/internal/dderr"
)

func TestParseDIMACSVertexUniverse(t *testing.T) {
	input := `c a triangle
p edge 3 3
e a b
e b c
e a c
s a
t b c
`
	parsed, err := ParseDIMACS(strings.NewReader(input), false)
	require.NoError(t, err)

	assert.Equal(t, 3, parsed.Graph.VertexCount())
	assert.Equal(t, 3, parsed.Graph.EdgeCount())
	assert.Equal(t, []int{1}, parsed.StartSet)
	assert.ElementsMatch(t, []int{2, 3}, parsed.GoalSet)
}

func TestParseDIMACSEdgeUniverseKeepsRawIndices(t *testing.T) {
	input := `p edge 3 2
e a b
e b c
s 1
t 2
`
	parsed, err := ParseDIMACS(strings.NewReader(input), true)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, parsed.StartSet)
	assert.Equal(t, []int{2}, parsed.GoalSet)
}

func TestParseDIMACSColorLines(t *testing.T) {
	input := `p edge 2 1
e a b
y 1 3
`
	parsed, err := ParseDIMACS(strings.NewReader(input), true)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.EdgeColor[1])
}

func TestParseDIMACSRejectsMalformedEdgeLine(t *testing.T) {
	_, err := ParseDIMACS(strings.NewReader("p edge 2 1\ne a\n"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, dderr.ErrInput)
}

func TestParseDIMACSRejectsUnknownLineType(t *testing.T) {
	_, err := ParseDIMACS(strings.NewReader("z whatever\n"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, dderr.ErrInput)
}

func TestParseSTFileOverridesMainInput(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEdge("a", "b", 0)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "c", 0)
	require.NoError(t, err)
	g.Update()

	start, goal, err := ParseSTFile(strings.NewReader("s a\nt c\n"), g, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, start)
	assert.Equal(t, []int{3}, goal)
}

func TestInvertSetReversesAgainstUniverseSize(t *testing.T) {
	got := InvertSet([]int{1, 2, 5}, 5)
	assert.Equal(t, []int{5, 4, 1}, got)
}

func TestFormatSet(t *testing.T) {
	assert.Equal(t, "1 2 3", FormatSet([]int{1, 2, 3}))
	assert.Equal(t, "", FormatSet(nil))
}
