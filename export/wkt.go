package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/vismesh/mesh"
)

// PolygonWKT renders the planar outline of p as a closed WKT polygon
func PolygonWKT(p mesh.ElementPolygon) string {
	pts := p.XY()
	if len(pts) == 0 {
		return "POLYGON EMPTY"
	}
	var sb strings.Builder
	sb.WriteString("POLYGON ((")
	for i := 0; i <= len(pts); i++ {
		pt := pts[i%len(pts)]
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(pt.Y, 'g', -1, 64))
	}
	sb.WriteString("))")
	return sb.String()
}

// WriteWKT writes one polygon per line, in element order
func WriteWKT(w io.Writer, polygons []mesh.ElementPolygon) error {
	bw := bufio.NewWriter(w)
	for _, p := range polygons {
		if _, err := fmt.Fprintln(bw, PolygonWKT(p)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
