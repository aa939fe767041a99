package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/vector"

	"github.com/notargets/vismesh/geometry2D"
	"github.com/notargets/vismesh/mesh"
)

var (
	Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	NoData     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Uniform    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// PreviewMeta controls the raster preview
type PreviewMeta struct {
	Width, Height int
	Margin        float64 // Fraction of the mesh extent added around the mesh

	// VMin, VMax fix the shading range when VMax > VMin. Otherwise the
	// field's PlotBounds are used.
	VMin, VMax float64
}

// RenderPreview fills each polygon into an image fitted to the planar mesh
// bounds with y pointing up. With a field, polygons are shaded from dark
// (vMin) to light (vMax) gray; NaN values use NoData. Without one,
// every polygon uses Uniform.
func RenderPreview(polygons []mesh.ElementPolygon, field *mesh.ElementField, pm PreviewMeta) (img *image.RGBA, err error) {
	if pm.Width <= 0 || pm.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", pm.Width, pm.Height)
	}
	if field != nil && field.Len() != len(polygons) {
		return nil, fmt.Errorf("field %q has %d values for %d polygons", field.Name, field.Len(), len(polygons))
	}
	img = image.NewRGBA(image.Rect(0, 0, pm.Width, pm.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	box := mesh.MeshBounds(polygons)
	if geometry2D.IsEmpty(box) {
		return img, nil
	}
	box = geometry2D.Scale(box, 1+2*pm.Margin)
	// Preserve aspect ratio, center the shorter extent
	var (
		dx, dy = box.Max.X - box.Min.X, box.Max.Y - box.Min.Y
		scale  = math.Min(float64(pm.Width)/nonZero(dx), float64(pm.Height)/nonZero(dy))
		offX   = 0.5 * (float64(pm.Width) - scale*dx)
		offY   = 0.5 * (float64(pm.Height) - scale*dy)
	)
	toPixel := func(x, y float64) (px, py float32) {
		px = float32(offX + scale*(x-box.Min.X))
		py = float32(float64(pm.Height) - (offY + scale*(y-box.Min.Y)))
		return
	}

	vMin, vMax := pm.VMin, pm.VMax
	if field != nil && vMax <= vMin {
		vMin, vMax, _ = field.PlotBounds()
	}
	r := vector.NewRasterizer(pm.Width, pm.Height)
	for k, p := range polygons {
		pts := p.XY()
		if len(pts) < 3 {
			continue
		}
		r.Reset(pm.Width, pm.Height)
		r.MoveTo(toPixel(pts[0].X, pts[0].Y))
		for _, pt := range pts[1:] {
			r.LineTo(toPixel(pt.X, pt.Y))
		}
		r.ClosePath()
		fill := Uniform
		if field != nil {
			fill = grayShade(field.Normalized(k, vMin, vMax))
		}
		r.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})
	}
	return img, nil
}

// grayShade maps t in [0,1] to a gray between 32 and 224
func grayShade(t float64) color.RGBA {
	if math.IsNaN(t) {
		return NoData
	}
	g := uint8(32 + math.Round(192*t))
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// WriteWebP encodes img losslessly
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}
