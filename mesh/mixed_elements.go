package mesh

import (
	"fmt"
)

// ElementRow is one record of a mixed-element stream: the tag, the offset
// of the tag in the stream, and the node indices in a fixed-width row.
// Slots past the tag's node count are zero.
type ElementRow struct {
	Tag    ElementTag
	Offset int
	Slots  [RowWidth]int
}

// LiveNodes returns the row's node indices in order with the sentinel rule
// applied: a zero in either of the two trailing slots means "unused" and is
// dropped, whatever the tag. A genuine reference to node 0 in those slots is
// indistinguishable from an empty slot in the source format and is dropped
// as well.
func (r ElementRow) LiveNodes() (nodes []int) {
	nodes = make([]int, 0, RowWidth)
	for i, n := range r.Slots {
		if i >= RowWidth-2 && n == 0 {
			continue
		}
		nodes = append(nodes, n)
	}
	return
}

// Polygon looks up the row's live nodes in the node table
func (r ElementRow) Polygon(nodes NodeTable, element int) (ElementPolygon, error) {
	live := r.LiveNodes()
	verts := make([][]float64, len(live))
	for i, n := range live {
		if n < 0 || n >= len(nodes) {
			return ElementPolygon{}, &NodeIndexOutOfRangeError{
				Element:  element,
				Node:     n,
				NumNodes: len(nodes),
			}
		}
		coords := make([]float64, len(nodes[n]))
		copy(coords, nodes[n])
		verts[i] = coords
	}
	return ElementPolygon{
		Element:  element,
		Tag:      r.Tag,
		Nodes:    live,
		Vertices: verts,
	}, nil
}

// readRecord decodes the record whose tag sits at offset and returns the
// offset of the next record
func readRecord(stream []int, offset, element int) (row ElementRow, next int, err error) {
	if offset >= len(stream) {
		err = &TruncatedElementStreamError{Element: element, Offset: offset, Need: 1, Len: len(stream)}
		return
	}
	tag := ElementTag(stream[offset])
	if !tag.Valid() {
		err = &MalformedElementTagError{Element: element, Offset: offset, Tag: stream[offset]}
		return
	}
	width := tag.GetRecordWidth()
	if offset+width > len(stream) {
		err = &TruncatedElementStreamError{Element: element, Offset: offset, Need: width, Len: len(stream)}
		return
	}
	start := offset + tag.headerWidth()
	row.Tag = tag
	row.Offset = offset
	copy(row.Slots[:], stream[start:start+tag.GetNumNodes()])
	next = offset + width
	return
}

// ScanRows reads elementCount records from the front of stream with a single
// advancing cursor. It returns the rows and the number of stream values
// consumed; the stream itself is never modified.
func ScanRows(stream []int, elementCount int) (rows []ElementRow, consumed int, err error) {
	if elementCount < 0 {
		return nil, 0, fmt.Errorf("invalid element count %d", elementCount)
	}
	rows = make([]ElementRow, 0, maxRecords(stream, elementCount))
	var (
		row    ElementRow
		cursor int
	)
	for k := 0; k < elementCount; k++ {
		if row, cursor, err = readRecord(stream, cursor, k); err != nil {
			return nil, 0, err
		}
		rows = append(rows, row)
	}
	return rows, cursor, nil
}

// RecordOffsets locates the start of each of the first elementCount records
// without building rows. Record widths depend on the tag, so this is a
// sequential pass.
func RecordOffsets(stream []int, elementCount int) (offsets []int, consumed int, err error) {
	if elementCount < 0 {
		return nil, 0, fmt.Errorf("invalid element count %d", elementCount)
	}
	offsets = make([]int, 0, maxRecords(stream, elementCount))
	var cursor int
	for k := 0; k < elementCount; k++ {
		if cursor >= len(stream) {
			return nil, 0, &TruncatedElementStreamError{Element: k, Offset: cursor, Need: 1, Len: len(stream)}
		}
		tag := ElementTag(stream[cursor])
		if !tag.Valid() {
			return nil, 0, &MalformedElementTagError{Element: k, Offset: cursor, Tag: stream[cursor]}
		}
		if cursor+tag.GetRecordWidth() > len(stream) {
			return nil, 0, &TruncatedElementStreamError{
				Element: k, Offset: cursor, Need: tag.GetRecordWidth(), Len: len(stream),
			}
		}
		offsets = append(offsets, cursor)
		cursor += tag.GetRecordWidth()
	}
	return offsets, cursor, nil
}

// maxRecords bounds the number of records stream can hold. elementCount is
// read from the file and is not trusted for allocation.
func maxRecords(stream []int, elementCount int) int {
	return min(elementCount, len(stream)/minRecordWidth)
}
