package export

import (
	"fmt"
	"io"
	"math"

	"github.com/ohler55/ojg/oj"

	"github.com/notargets/vismesh/mesh"
)

// GeoJSON builds a FeatureCollection with one Polygon feature per element.
// field may be nil; NaN values are written as null. crs is an opaque
// identifier attached as a named CRS member when non-empty.
func GeoJSON(polygons []mesh.ElementPolygon, field *mesh.ElementField, crs string) (doc map[string]any, err error) {
	if field != nil && field.Len() != len(polygons) {
		return nil, fmt.Errorf("field %q has %d values for %d polygons", field.Name, field.Len(), len(polygons))
	}
	features := make([]any, len(polygons))
	for k, p := range polygons {
		pts := p.XY()
		ring := make([]any, 0, len(pts)+1)
		for i := 0; i <= len(pts) && len(pts) > 0; i++ {
			pt := pts[i%len(pts)]
			ring = append(ring, []any{pt.X, pt.Y})
		}
		props := map[string]any{
			"element": p.Element,
			"tag":     p.Tag.String(),
		}
		if field != nil {
			if v := field.At(k); math.IsNaN(v) {
				props[field.Name] = nil
			} else {
				props[field.Name] = v
			}
		}
		features[k] = map[string]any{
			"type": "Feature",
			"geometry": map[string]any{
				"type":        "Polygon",
				"coordinates": []any{ring},
			},
			"properties": props,
		}
	}
	doc = map[string]any{
		"type":     "FeatureCollection",
		"features": features,
	}
	if crs != "" {
		doc["crs"] = map[string]any{
			"type":       "name",
			"properties": map[string]any{"name": crs},
		}
	}
	return doc, nil
}

// WriteGeoJSON encodes the collection built by GeoJSON to w
func WriteGeoJSON(w io.Writer, polygons []mesh.ElementPolygon, field *mesh.ElementField, crs string) error {
	doc, err := GeoJSON(polygons, field, crs)
	if err != nil {
		return err
	}
	data, err := oj.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}
