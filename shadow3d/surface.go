package shadow3d

// Surface is the drawing target of a Projector: a 3D plotting
// surface exposing the primitives the shadows are replayed through,
// and its current view bounds.
// A Surface is referenced, never owned: the projector does not
// create, resize or close it.
type Surface interface {
	// Scatter draws one marker per (x[i], y[i], z[i]) point.
	// The three slices must have the same length, which is enforced
	// here, not by the callers.
	Scatter(x, y, z []float64, style Style) error

	// Plot draws the polyline joining the (x[i], y[i], z[i]) points.
	Plot(x, y, z []float64, style Style) error

	// SurfacePatch draws a filled patch over the coordinate mesh,
	// where (xx[i][j], yy[i][j], zz[i][j]) are the vertices.
	SurfacePatch(xx, yy, zz [][]float64, style Style) error

	// XLim returns the current bounds of the x axis.
	XLim() (min, max float64)

	// YLim returns the current bounds of the y axis.
	YLim() (min, max float64)

	// ZLim returns the current bounds of the z axis.
	ZLim() (min, max float64)

	SetXLabel(label string)
	SetYLabel(label string)
	SetZLabel(label string)
	SetTitle(title string)
}
