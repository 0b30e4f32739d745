package export

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"globemesh/internal/mesh"
)

var background = colorful.Color{R: 0.05, G: 0.07, B: 0.12}

// outline is the stroke colour of a feature's triangle edges.
func outline(m *mesh.FeatureMesh) colorful.Color {
	return m.Color.BlendLab(colorful.Color{}, 0.35).Clamped()
}

// RenderPNG rasterises the planar triangulation of meshes.
func RenderPNG(meshes []*mesh.FeatureMesh, width int) image.Image {
	return render(meshes, width).Image()
}

// WritePNG encodes RenderPNG's image to w.
func WritePNG(w io.Writer, meshes []*mesh.FeatureMesh, width int) error {
	return errors.Wrap(render(meshes, width).EncodePNG(w), "write png")
}

func render(meshes []*mesh.FeatureMesh, width int) *gg.Context {
	f := newFrame(meshes, width)
	c := gg.NewContext(f.width, f.height)
	c.SetColor(background)
	c.DrawRectangle(0, 0, float64(f.width), float64(f.height))
	c.Fill()

	c.SetLineWidth(0.5)
	for _, m := range meshes {
		for n := 0; n < m.Count(); n++ {
			for k, p := range corners(m, n) {
				x, y := f.pixel(p)
				if k == 0 {
					c.MoveTo(x, y)
				} else {
					c.LineTo(x, y)
				}
			}
			c.ClosePath()
		}
		c.SetColor(m.Color)
		c.FillPreserve()
		c.SetColor(outline(m))
		c.Stroke()
	}
	return c
}
