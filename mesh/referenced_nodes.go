package mesh

import (
	"github.com/RoaringBitmap/roaring"
)

// ReferencedNodes returns the distinct live node indices across rows.
// Negative indices cannot be represented and are left out; they fail the
// node lookup during decode.
func ReferencedNodes(rows []ElementRow) *roaring.Bitmap {
	bm := roaring.New()
	for _, row := range rows {
		for _, n := range row.LiveNodes() {
			if n >= 0 {
				bm.Add(uint32(n))
			}
		}
	}
	bm.RunOptimize()
	return bm
}

// UnreferencedNodes returns the node indices in [0, numNodes) that no row
// uses
func UnreferencedNodes(rows []ElementRow, numNodes int) *roaring.Bitmap {
	unused := roaring.New()
	if numNodes <= 0 {
		return unused
	}
	unused.AddRange(0, uint64(numNodes))
	unused.AndNot(ReferencedNodes(rows))
	return unused
}
