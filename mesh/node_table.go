package mesh

import "fmt"

// NodeTable holds node coordinates [nnodes][dim], addressed by zero-based
// node index. The decoder never modifies it.
type NodeTable [][]float64

// NewNodeTable validates that coords is non-empty and every row has the
// same, non-zero dimension
func NewNodeTable(coords [][]float64) (NodeTable, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("node table is empty")
	}
	dim := len(coords[0])
	if dim == 0 {
		return nil, fmt.Errorf("node 0 has no coordinates")
	}
	for i, c := range coords {
		if len(c) != dim {
			return nil, fmt.Errorf("node %d has %d coordinates, expected %d", i, len(c), dim)
		}
	}
	return NodeTable(coords), nil
}

// NewNodeTableFromFlat builds a table from row-major packed coordinates
func NewNodeTableFromFlat(data []float64, dim int) (NodeTable, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid node dimension %d", dim)
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("%d coordinate values do not divide into rows of %d", len(data), dim)
	}
	nt := make(NodeTable, len(data)/dim)
	for i := range nt {
		nt[i] = data[i*dim : (i+1)*dim : (i+1)*dim]
	}
	return NewNodeTable(nt)
}

func (nt NodeTable) Len() int { return len(nt) }

// Dim returns the coordinate dimension, 0 for an empty table
func (nt NodeTable) Dim() int {
	if len(nt) == 0 {
		return 0
	}
	return len(nt[0])
}

// ScaleZ returns a copy of the table with the third coordinate multiplied
// by factor. Tables with fewer than three dimensions are copied unchanged.
func (nt NodeTable) ScaleZ(factor float64) NodeTable {
	scaled := make(NodeTable, len(nt))
	for i, c := range nt {
		row := make([]float64, len(c))
		copy(row, c)
		if len(row) > 2 {
			row[2] *= factor
		}
		scaled[i] = row
	}
	return scaled
}
