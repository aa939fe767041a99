package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementTag(t *testing.T) {
	testCases := []struct {
		tag                   ElementTag
		valid                 bool
		width, nodes, skipped int
		name                  string
	}{
		{Pentagon, true, 7, 5, 2, "Pentagon"},
		{Triangle, true, 4, 3, 1, "Triangle"},
		{Quad, true, 5, 4, 1, "Quad"},
		{ElementTag(7), false, 0, 0, 0, "Invalid(7)"},
		{ElementTag(0), false, 0, 0, 0, "Invalid(0)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.tag.Valid())
			assert.Equal(t, tc.width, tc.tag.GetRecordWidth())
			assert.Equal(t, tc.nodes, tc.tag.GetNumNodes())
			assert.Equal(t, tc.skipped, tc.tag.headerWidth())
			assert.Equal(t, tc.name, tc.tag.String())
			if tc.valid {
				// Header plus nodes fill the record exactly
				assert.Equal(t, tc.width, tc.skipped+tc.nodes)
			}
		})
	}
}

func TestNodeTable(t *testing.T) {
	nt, err := NewNodeTable([][]float64{{0, 0, 1}, {1, 0, 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, nt.Len())
	assert.Equal(t, 3, nt.Dim())

	_, err = NewNodeTable(nil)
	assert.Error(t, err)
	_, err = NewNodeTable([][]float64{{}})
	assert.Error(t, err)
	_, err = NewNodeTable([][]float64{{0, 0, 0}, {1, 1}})
	assert.ErrorContains(t, err, "node 1 has 2 coordinates")

	flat, err := NewNodeTableFromFlat([]float64{0, 1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.Equal(t, NodeTable{{0, 1, 2}, {3, 4, 5}}, flat)
	_, err = NewNodeTableFromFlat([]float64{0, 1, 2, 3}, 3)
	assert.Error(t, err)
	_, err = NewNodeTableFromFlat([]float64{0, 1}, 0)
	assert.Error(t, err)

	scaled := nt.ScaleZ(10)
	assert.Equal(t, NodeTable{{0, 0, 10}, {1, 0, 20}}, scaled)
	assert.Equal(t, 1., nt[0][2])
	planar := NodeTable{{1, 2}}
	assert.Equal(t, planar, planar.ScaleZ(3))
	assert.Equal(t, 0, NodeTable(nil).Dim())
}

func TestReferencedNodes(t *testing.T) {
	_, stream, K := stripMesh(3)
	rows, _, err := ScanRows(stream, K)
	require.NoError(t, err)
	used := ReferencedNodes(rows)
	// Every bottom and top node of a 3-cell strip is used
	assert.Equal(t, uint64(8), used.GetCardinality())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, used.ToArray())

	unused := UnreferencedNodes(rows, 10)
	assert.Equal(t, []uint32{8, 9}, unused.ToArray())
	assert.True(t, UnreferencedNodes(rows, 0).IsEmpty())

	// Sentinel slots are not references to node 0
	rows, _, err = ScanRows([]int{4, 3, 4, 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 4, 5}, ReferencedNodes(rows).ToArray())
}

func TestAdjacency(t *testing.T) {
	nodes, stream, K := stripMesh(3)
	polygons, err := Decode(nodes, stream, K)
	require.NoError(t, err)
	EToE, err := Adjacency(polygons, nodes.Len())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2}, {2, 3}, {0, 1}, {1}}, EToE)
	boundary, err := BoundaryElements(polygons, EToE)
	require.NoError(t, err)
	// Every element of a one-row strip touches the outside
	assert.Equal(t, []int{0, 1, 2, 3}, boundary)
	_, err = BoundaryElements(polygons, EToE[:2])
	assert.Error(t, err)

	EToE, err = Adjacency(nil, 4)
	require.NoError(t, err)
	assert.Len(t, EToE, 0)

	_, err = Adjacency(polygons, 3)
	assert.True(t, errors.Is(err, ErrNodeIndexOutOfRange))
}

func TestElementField(t *testing.T) {
	nodes, stream, K := stripMesh(3)
	polygons, err := Decode(nodes, stream, K)
	require.NoError(t, err)

	_, err = NewElementField("depth", polygons, []float64{1, 2})
	assert.ErrorContains(t, err, "each polygon must correspond to a field value")

	f, err := NewElementField("depth", polygons, []float64{0.25, math.NaN(), 2.5, -1.5})
	require.NoError(t, err)
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 2.5, f.At(2))
	vMin, vMax, ok := f.Bounds()
	require.True(t, ok)
	assert.Equal(t, -1.5, vMin)
	assert.Equal(t, 2.5, vMax)
	vMin, vMax, ok = f.PlotBounds()
	require.True(t, ok)
	assert.Equal(t, -2., vMin)
	assert.Equal(t, 3., vMax)

	assert.InDelta(t, 0.5625, f.Normalized(0, -2, 2), 1.e-12)
	assert.True(t, math.IsNaN(f.Normalized(1, -2, 2)))
	assert.Equal(t, 1., f.Normalized(2, -2, 2))
	assert.Equal(t, 0.5, f.Normalized(3, 1, 1))

	empty, err := NewElementField("none", nil, nil)
	require.NoError(t, err)
	_, _, ok = empty.Bounds()
	assert.False(t, ok)
}
