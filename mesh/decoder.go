package mesh

import (
	"sync"

	"github.com/notargets/vismesh/utils"
)

// Decoder turns a mixed-element stream and node table into polygons.
// The zero value is the reference sequential decode that trusts the
// supplied element count.
type Decoder struct {
	// StrictLength fails the decode when stream values remain after the
	// declared number of records
	StrictLength bool
	// Workers > 1 decodes contiguous element ranges concurrently
	Workers int
}

// Decode is Decoder{}.Decode
func Decode(nodes NodeTable, stream []int, elementCount int) ([]ElementPolygon, error) {
	return Decoder{}.Decode(nodes, stream, elementCount)
}

// Decode returns one polygon per record, in stream order. On any error no
// polygons are returned.
func (d Decoder) Decode(nodes NodeTable, stream []int, elementCount int) (polygons []ElementPolygon, err error) {
	if d.Workers > 1 && elementCount > 1 {
		return d.decodeParallel(nodes, stream, elementCount)
	}
	var (
		rows     []ElementRow
		consumed int
	)
	if rows, consumed, err = ScanRows(stream, elementCount); err != nil {
		return nil, err
	}
	if d.StrictLength && consumed != len(stream) {
		return nil, &TrailingElementDataError{Consumed: consumed, Len: len(stream)}
	}
	polygons = make([]ElementPolygon, len(rows))
	for k, row := range rows {
		if polygons[k], err = row.Polygon(nodes, k); err != nil {
			return nil, err
		}
	}
	return polygons, nil
}

// decodeParallel pre-scans record boundaries, then gives each worker its
// own element range and starting cursor
func (d Decoder) decodeParallel(nodes NodeTable, stream []int, elementCount int) ([]ElementPolygon, error) {
	offsets, consumed, err := RecordOffsets(stream, elementCount)
	if err != nil {
		return nil, err
	}
	if d.StrictLength && consumed != len(stream) {
		return nil, &TrailingElementDataError{Consumed: consumed, Len: len(stream)}
	}
	var (
		NP       = min(d.Workers, elementCount)
		pm       = utils.NewPartitionMap(NP, elementCount)
		polygons = make([]ElementPolygon, elementCount)
		errs     = make([]error, NP)
		wg       sync.WaitGroup
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			if kMin == kMax {
				return
			}
			cursor := offsets[kMin]
			for k := kMin; k < kMax; k++ {
				var row ElementRow
				if row, cursor, errs[np] = readRecord(stream, cursor, k); errs[np] != nil {
					return
				}
				if polygons[k], errs[np] = row.Polygon(nodes, k); errs[np] != nil {
					return
				}
			}
		}(np)
	}
	wg.Wait()
	// Buckets are in ascending element order, so the first error found is
	// the one the sequential decode would have reported
	for _, err = range errs {
		if err != nil {
			return nil, err
		}
	}
	return polygons, nil
}
