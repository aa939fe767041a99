package mesh

import "fmt"

// ElementTag is the leading value of each record in a mixed-element stream.
// The set is closed; any other value in the tag position is a format error.
type ElementTag int

const (
	Pentagon ElementTag = 3
	Triangle ElementTag = 4
	Quad     ElementTag = 5
)

// RowWidth is the number of node slots reserved per element row. Rows for
// elements with fewer nodes leave the trailing slots at zero.
const RowWidth = 5

// recordLayout describes how a tag's record is laid out in the stream
type recordLayout struct {
	width    int // total values consumed, tag included
	header   int // values skipped before the first node index, tag included
	numNodes int // node indices copied into the row
}

var recordLayouts = map[ElementTag]recordLayout{
	Pentagon: {width: 7, header: 2, numNodes: 5},
	Triangle: {width: 4, header: 1, numNodes: 3},
	Quad:     {width: 5, header: 1, numNodes: 4},
}

// minRecordWidth is the narrowest record of any tag
const minRecordWidth = 4

// Valid reports whether e is one of the recognized record tags
func (e ElementTag) Valid() bool {
	_, ok := recordLayouts[e]
	return ok
}

func (e ElementTag) String() string {
	switch e {
	case Pentagon:
		return "Pentagon"
	case Triangle:
		return "Triangle"
	case Quad:
		return "Quad"
	default:
		return fmt.Sprintf("Invalid(%d)", int(e))
	}
}

// GetRecordWidth returns the number of stream values one record occupies,
// including the tag. Invalid tags return 0.
func (e ElementTag) GetRecordWidth() int {
	return recordLayouts[e].width
}

// GetNumNodes returns the number of node indices carried by the record
func (e ElementTag) GetNumNodes() int {
	return recordLayouts[e].numNodes
}

func (e ElementTag) headerWidth() int {
	return recordLayouts[e].header
}
