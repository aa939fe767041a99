package mesh

// unitSquareNodes are the corners of the unit square plus one apex above it
func unitSquareNodes() NodeTable {
	return NodeTable{
		{0, 0, 0},        // 0
		{1, 0, 0},        // 1
		{1, 1, 0},        // 2
		{0, 1, 0},        // 3
		{0.5, 1.5, 0.25}, // 4
	}
}

// stripMesh builds a row of n cells between a bottom and top row of nodes.
// Cells cycle through a quad, a pair of triangles, and a pentagon-tagged
// record padded with a trailing sentinel. It returns the node table, the
// packed stream and the number of records.
func stripMesh(n int) (nodes NodeTable, stream []int, elementCount int) {
	nodes = make(NodeTable, 2*(n+1))
	for i := 0; i <= n; i++ {
		nodes[i] = []float64{float64(i), 0, 0}
		nodes[n+1+i] = []float64{float64(i), 1, 0.1 * float64(i)}
	}
	for i := 0; i < n; i++ {
		b0, b1 := i, i+1
		t0, t1 := n+1+i, n+2+i
		switch i % 3 {
		case 0:
			stream = append(stream, int(Quad), b0, b1, t1, t0)
			elementCount++
		case 1:
			stream = append(stream, int(Triangle), b0, b1, t1)
			stream = append(stream, int(Triangle), b0, t1, t0)
			elementCount += 2
		case 2:
			stream = append(stream, int(Pentagon), 4, b0, b1, t1, t0, 0)
			elementCount++
		}
	}
	return
}
