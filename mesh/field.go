package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ElementField is a per-element scalar array index-aligned with a polygon
// sequence
type ElementField struct {
	Name   string
	Values []float64
}

// NewElementField requires one value per polygon
func NewElementField(name string, polygons []ElementPolygon, values []float64) (*ElementField, error) {
	if len(values) != len(polygons) {
		return nil, fmt.Errorf("field %q has %d values for %d polygons, each polygon must correspond to a field value",
			name, len(values), len(polygons))
	}
	return &ElementField{Name: name, Values: values}, nil
}

func (f *ElementField) Len() int { return len(f.Values) }

func (f *ElementField) At(k int) float64 { return f.Values[k] }

// Bounds returns the minimum and maximum values ignoring NaN. ok is false
// when every value is NaN or the field is empty.
func (f *ElementField) Bounds() (vMin, vMax float64, ok bool) {
	finite := make([]float64, 0, len(f.Values))
	for _, v := range f.Values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}

// PlotBounds widens Bounds to whole numbers, floor of the minimum and
// ceiling of the maximum
func (f *ElementField) PlotBounds() (vMin, vMax float64, ok bool) {
	if vMin, vMax, ok = f.Bounds(); !ok {
		return
	}
	return math.Floor(vMin), math.Ceil(vMax), true
}

// Normalized maps value k into [0,1] against [vMin,vMax], clamping outside
// values. NaN stays NaN; a zero-width range maps to 0.5.
func (f *ElementField) Normalized(k int, vMin, vMax float64) float64 {
	v := f.Values[k]
	if math.IsNaN(v) {
		return v
	}
	if vMax <= vMin {
		return 0.5
	}
	return math.Max(0, math.Min(1, (v-vMin)/(vMax-vMin)))
}
