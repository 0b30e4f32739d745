package mesh

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidGeometryError is returned when a document's container type or one
// of its geometries is not one the assembler handles. Feature is the index
// of the offending entry, or -1 when the container itself is rejected.
type InvalidGeometryError struct {
	Type    string
	Feature int
}

func (e *InvalidGeometryError) Error() string {
	switch {
	case e.Feature < 0:
		return fmt.Sprintf("invalid geometry: unsupported container type %q", e.Type)
	case e.Type == "":
		return fmt.Sprintf("invalid geometry: feature %d has no geometry", e.Feature)
	}
	return fmt.Sprintf("invalid geometry: feature %d has unsupported type %q", e.Feature, e.Type)
}

// IsInvalidGeometry reports whether err or any error it wraps is an
// *InvalidGeometryError.
func IsInvalidGeometry(err error) bool {
	var e *InvalidGeometryError
	return errors.As(err, &e)
}
