package export

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/pkg/errors"

	"globemesh/internal/mesh"
)

// WriteSVG draws every triangle of meshes as a filled, outlined polygon,
// one group per feature.
func WriteSVG(w io.Writer, meshes []*mesh.FeatureMesh, width int) error {
	f := newFrame(meshes, width)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		f.width, f.height, f.width, f.height)
	fmt.Fprintf(bw, `<rect width="%d" height="%d" fill="%s"/>`+"\n", f.width, f.height, background.Hex())
	for _, m := range meshes {
		fmt.Fprintf(bw, `<g id="feature-%d" data-name="%s" data-iso="%s" fill="%s" stroke="%s" stroke-width="0.5">`+"\n",
			m.Index, html.EscapeString(m.Properties.Name), html.EscapeString(m.Properties.ISOA3),
			m.Color.Hex(), outline(m).Hex())
		for n := 0; n < m.Count(); n++ {
			bw.WriteString(`<polygon points="`)
			for k, p := range corners(m, n) {
				x, y := f.pixel(p)
				if k > 0 {
					bw.WriteByte(' ')
				}
				fmt.Fprintf(bw, "%.2f,%.2f", x, y)
			}
			bw.WriteString("\"/>\n")
		}
		bw.WriteString("</g>\n")
	}
	bw.WriteString("</svg>\n")

	return errors.Wrap(bw.Flush(), "write svg")
}
