package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"globemesh/internal/mesh"
)

// WriteOBJ writes meshes as a Wavefront OBJ file, one object per feature.
// Face indices are 1-based and global to the file.
func WriteOBJ(w io.Writer, meshes []*mesh.FeatureMesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("# globemesh\n")

	base := 1
	for _, m := range meshes {
		fmt.Fprintf(bw, "o %s\n", objectName(m))
		for i := 0; i < m.Len(); i++ {
			fmt.Fprintf(bw, "v %g %g %g\n", m.X[i], m.Y[i], m.Z[i])
		}
		for n := 0; n < m.Count(); n++ {
			t := m.Triangles[3*n : 3*n+3]
			fmt.Fprintf(bw, "f %d %d %d\n", t[0]+base, t[1]+base, t[2]+base)
		}
		base += m.Len()
	}

	return errors.Wrap(bw.Flush(), "write obj")
}

func objectName(m *mesh.FeatureMesh) string {
	name := m.Properties.ISOA3
	if name == "" {
		name = m.Properties.Name
	}
	if name == "" {
		return fmt.Sprintf("feature_%d", m.Index)
	}
	return strings.Join(strings.Fields(name), "_")
}
