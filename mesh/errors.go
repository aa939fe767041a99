package mesh

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedElementTag    = errors.New("malformed element tag")
	ErrTruncatedElementStream = errors.New("truncated element stream")
	ErrNodeIndexOutOfRange    = errors.New("node index out of range")
	ErrTrailingElementData    = errors.New("trailing element data")
)

// MalformedElementTagError reports a tag value outside {3, 4, 5}
type MalformedElementTagError struct {
	Element int // element being decoded
	Offset  int // cursor position of the tag
	Tag     int
}

func (e *MalformedElementTagError) Error() string {
	return fmt.Sprintf("%s: element %d has tag %d at offset %d",
		ErrMalformedElementTag, e.Element, e.Tag, e.Offset)
}

func (e *MalformedElementTagError) Is(target error) bool {
	return target == ErrMalformedElementTag
}

// TruncatedElementStreamError reports that the stream ended before the
// declared number of records was consumed
type TruncatedElementStreamError struct {
	Element int
	Offset  int
	Need    int // values required from Offset to finish the record
	Len     int // total stream length
}

func (e *TruncatedElementStreamError) Error() string {
	return fmt.Sprintf("%s: element %d needs %d values at offset %d, stream length is %d",
		ErrTruncatedElementStream, e.Element, e.Need, e.Offset, e.Len)
}

func (e *TruncatedElementStreamError) Is(target error) bool {
	return target == ErrTruncatedElementStream
}

// NodeIndexOutOfRangeError reports a row entry that does not address the
// node table
type NodeIndexOutOfRangeError struct {
	Element  int
	Node     int
	NumNodes int
}

func (e *NodeIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: element %d references node %d, table has [0,%d)",
		ErrNodeIndexOutOfRange, e.Element, e.Node, e.NumNodes)
}

func (e *NodeIndexOutOfRangeError) Is(target error) bool {
	return target == ErrNodeIndexOutOfRange
}

// TrailingElementDataError is returned by a strict decode when values remain
// after the declared records
type TrailingElementDataError struct {
	Consumed int
	Len      int
}

func (e *TrailingElementDataError) Error() string {
	return fmt.Sprintf("%s: %d of %d stream values consumed",
		ErrTrailingElementData, e.Consumed, e.Len)
}

func (e *TrailingElementDataError) Is(target error) bool {
	return target == ErrTrailingElementData
}
