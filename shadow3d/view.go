package shadow3d

import "math"

// View maps data space coordinates to 2D canvas coordinates, with
// a fixed orthographic camera looking at the center of the axis
// bounds. It is shared by the concrete surfaces; the projector
// itself never uses it.
type View struct {
	Azimuth   float64 // rotation around the vertical axis, in degrees
	Elevation float64 // camera tilt, in degrees

	Width, Height float64 // canvas size, in the surface unit
	Bounds        Extents
}

// NewView returns a view over the given canvas and bounds,
// with the usual -60/30 degrees camera.
func NewView(width, height float64, bounds Extents) View {
	return View{Azimuth: -60, Elevation: 30, Width: width, Height: height, Bounds: bounds}
}

// Project maps the data point (x, y, z) to canvas coordinates,
// y axis pointing down.
func (v View) Project(x, y, z float64) (cx, cy float64) {
	nx := normalize(x, v.Bounds.Xmin, v.Bounds.Xmax)
	ny := normalize(y, v.Bounds.Ymin, v.Bounds.Ymax)
	nz := normalize(z, v.Bounds.Zmin, v.Bounds.Zmax)

	az := v.Azimuth * math.Pi / 180
	el := v.Elevation * math.Pi / 180

	// rotate around the vertical axis
	rx := nx*math.Cos(az) - ny*math.Sin(az)
	ry := nx*math.Sin(az) + ny*math.Cos(az)
	// tilt, then drop the depth (orthographic projection)
	rz := nz*math.Cos(el) - ry*math.Sin(el)

	scale := 0.72 * math.Min(v.Width, v.Height)
	return v.Width/2 + scale*rx, v.Height/2 - scale*rz
}

// normalize maps [min, max] to [-0.5, 0.5], degenerate bounds to 0.
func normalize(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (v-min)/(max-min) - 0.5
}
