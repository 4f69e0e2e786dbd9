// Provides shadow projection for 3D plots.
// Point sets and line paths submitted to a Projector are drawn
// immediately on a plotting surface, and recorded so that "shadow"
// copies of them can later be drawn flattened on the bounding
// coordinate planes.
// The actual drawing is delegated to a Surface implementation,
// see for example plot3dshadows/shadowraster or plot3dshadows/shadowpdf .
package shadow3d

import "fmt"

// Plane identifies one of the three axis aligned coordinate planes.
type Plane uint8

const (
	XY Plane = iota // the plane orthogonal to the z axis
	XZ              // the plane orthogonal to the y axis
	YZ              // the plane orthogonal to the x axis
)

func (p Plane) String() string {
	switch p {
	case XY:
		return "xy"
	case XZ:
		return "xz"
	case YZ:
		return "yz"
	default:
		return "<unknown Plane>"
	}
}

// ParsePlane reads the textual form of a plane, one of
// "xy", "xz" or "yz".
func ParsePlane(s string) (Plane, error) {
	switch s {
	case "xy":
		return XY, nil
	case "xz":
		return XZ, nil
	case "yz":
		return YZ, nil
	default:
		return 0, errInvalidPlane(s)
	}
}

// Position selects on which side of the axis bounds a shadow
// is projected.
type Position uint8

const (
	Min Position = iota // project on the lower axis bound (default)
	Max                 // project on the upper axis bound
)

func (p Position) String() string {
	switch p {
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return "<unknown Position>"
	}
}

// ParsePosition reads the textual form of a position, "min" or "max".
// `plane` is only used to build the error message.
func ParsePosition(plane Plane, s string) (Position, error) {
	switch s {
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	default:
		return 0, errInvalidPosition(plane, s)
	}
}

// canonicalPlanes fixes the order in which the shadows of one
// dataset are drawn, regardless of the configuration order.
var canonicalPlanes = [3]Plane{XY, XZ, YZ}

// ConfigError is returned when a shadow plane or a position
// selector fails validation. The configuration which triggered
// it is never stored, even partially.
type ConfigError struct {
	msg string
}

func (c ConfigError) Error() string { return c.msg }

func errInvalidPlane(plane interface{}) ConfigError {
	return ConfigError{msg: fmt.Sprintf("invalid shadow plane '%v': must be one of 'xy', 'xz', 'yz'", plane)}
}

func errInvalidPosition(plane Plane, position interface{}) ConfigError {
	return ConfigError{msg: fmt.Sprintf("invalid shadow position '%v' for plane '%s': must be 'min' or 'max'", position, plane)}
}

func checkPlane(p Plane) error {
	if p > YZ {
		return errInvalidPlane(uint8(p))
	}
	return nil
}

func checkPosition(plane Plane, pos Position) error {
	if pos > Max {
		return errInvalidPosition(plane, uint8(pos))
	}
	return nil
}

// Extents stores the current view bounds of a surface,
// as returned by its XLim, YLim and ZLim accessors.
type Extents struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
	Zmin, Zmax float64
}

func readExtents(s Surface) Extents {
	var ext Extents
	ext.Xmin, ext.Xmax = s.XLim()
	ext.Ymin, ext.Ymax = s.YLim()
	ext.Zmin, ext.Zmax = s.ZLim()
	return ext
}
