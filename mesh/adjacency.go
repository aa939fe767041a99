package mesh

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
)

// Adjacency returns, for each polygon, the sorted list of other polygons
// sharing at least two nodes with it. For a conforming planar mesh that is
// the set of edge neighbors.
func Adjacency(polygons []ElementPolygon, numNodes int) (EToE [][]int, err error) {
	K := len(polygons)
	EToE = make([][]int, K)
	if K == 0 || numNodes == 0 {
		return
	}
	// Element to node incidence, then EToN * EToN^T counts shared nodes
	SpEToN_Tmp := sparse.NewDOK(K, numNodes)
	for k, p := range polygons {
		for _, n := range p.Nodes {
			if n < 0 || n >= numNodes {
				return nil, &NodeIndexOutOfRangeError{Element: k, Node: n, NumNodes: numNodes}
			}
			SpEToN_Tmp.Set(k, n, 1)
		}
	}
	SpEToN := SpEToN_Tmp.ToCSR()
	SpEToE := sparse.NewCSR(K, K, nil, nil, nil)
	SpEToE.Mul(SpEToN, SpEToN.T())
	SpEToE.DoNonZero(func(i, j int, v float64) {
		if i != j && v >= 2 {
			EToE[i] = append(EToE[i], j)
		}
	})
	for k := range EToE {
		sort.Ints(EToE[k])
	}
	return
}

// BoundaryElements lists the polygons with fewer neighbors than edges, in
// ascending order. EToE is the result of Adjacency for the same polygons.
func BoundaryElements(polygons []ElementPolygon, EToE [][]int) (boundary []int, err error) {
	if len(EToE) != len(polygons) {
		return nil, fmt.Errorf("adjacency has %d entries for %d polygons", len(EToE), len(polygons))
	}
	for k, p := range polygons {
		if len(EToE[k]) < p.NumVertices() {
			boundary = append(boundary, k)
		}
	}
	return
}
