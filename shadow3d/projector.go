package shadow3d

// DefaultRatio is the shadow opacity ratio used when none is given.
const DefaultRatio = 0.3

// submission stores a snapshot of one plotted dataset, to be
// replayed as shadows on the coordinate planes.
type submission struct {
	x, y, z []float64
	style   Style
	ratio   float64 // shadow opacity ratio override, 0 for the projector default
}

func newSubmission(x, y, z []float64, style Style, ratio float64) submission {
	return submission{
		x:     append([]float64(nil), x...),
		y:     append([]float64(nil), y...),
		z:     append([]float64(nil), z...),
		style: style.Clone(),
		ratio: ratio,
	}
}

// Projector wraps a 3D plotting surface, and records the plotted
// geometry so that shadows of it can be drawn on the bounding
// coordinate planes.
// It is not safe for concurrent use.
type Projector struct {
	surface Surface

	ratio     float64
	planes    []Plane
	positions map[Plane]Position

	scatters []submission
	paths    []submission
}

// NewProjector binds a projector to `surface`.
// Shadows are drawn with `ratio` times the original opacity
// (DefaultRatio when 0) on every plane of `planes` (all three when
// nil), each projected on the axis bound selected by `positions`
// (Min for the planes not mentioned).
// A ConfigError is returned, and nothing is constructed, if a plane
// or a position selector is invalid.
func NewProjector(surface Surface, ratio float64, planes []Plane, positions map[Plane]Position) (*Projector, error) {
	if planes == nil {
		planes = []Plane{XY, XZ, YZ}
	}
	for _, plane := range planes {
		if err := checkPlane(plane); err != nil {
			return nil, err
		}
	}
	for plane, pos := range positions {
		if err := checkPlane(plane); err != nil {
			return nil, err
		}
		if err := checkPosition(plane, pos); err != nil {
			return nil, err
		}
	}
	if ratio == 0 {
		ratio = DefaultRatio
	}
	pr := &Projector{
		surface:   surface,
		ratio:     ratio,
		planes:    append([]Plane(nil), planes...),
		positions: make(map[Plane]Position, len(positions)),
	}
	for plane, pos := range positions {
		pr.positions[plane] = pos
	}
	return pr, nil
}

// Position returns the current position selector for `plane`,
// which is Min unless configured otherwise.
func (pr *Projector) Position(plane Plane) Position { return pr.positions[plane] }

// SetPositions merges the given selectors into the projector
// configuration, leaving the planes not mentioned unchanged.
// On any invalid entry the whole update is rejected with a
// ConfigError and the prior configuration is kept.
func (pr *Projector) SetPositions(positions map[Plane]Position) error {
	for plane, pos := range positions {
		if err := checkPlane(plane); err != nil {
			return err
		}
		if err := checkPosition(plane, pos); err != nil {
			return err
		}
	}
	for plane, pos := range positions {
		pr.positions[plane] = pos
	}
	return nil
}

// Scatter draws the points on the surface and records them for
// shadow drawing. The coordinate lengths are checked by the surface
// primitive, whose error is returned unchanged (and the dataset is
// not recorded).
// `ratio` overrides the projector shadow opacity ratio for this
// dataset only; pass 0 to keep the default.
func (pr *Projector) Scatter(x, y, z []float64, style Style, ratio float64) error {
	if err := pr.surface.Scatter(x, y, z, style); err != nil {
		return err
	}
	pr.scatters = append(pr.scatters, newSubmission(x, y, z, style, ratio))
	return nil
}

// Plot draws the polyline on the surface and records it for shadow
// drawing. See Scatter for the error and `ratio` semantics.
func (pr *Projector) Plot(x, y, z []float64, style Style, ratio float64) error {
	if err := pr.surface.Plot(x, y, z, style); err != nil {
		return err
	}
	pr.paths = append(pr.paths, newSubmission(x, y, z, style, ratio))
	return nil
}

// DrawShadows draws the shadows of every recorded dataset on the
// active planes, at the current axis bounds of the surface: point
// sets first, then paths, both in submission order, with the planes
// of one dataset always drawn in the order xy, xz, yz.
// Calling it again re-draws all the shadows, re-reading the bounds.
func (pr *Projector) DrawShadows() error {
	ext := readExtents(pr.surface)
	for _, sub := range pr.scatters {
		if err := pr.drawShadows(sub, ext, pr.surface.Scatter); err != nil {
			return err
		}
	}
	for _, sub := range pr.paths {
		if err := pr.drawShadows(sub, ext, pr.surface.Plot); err != nil {
			return err
		}
	}
	return nil
}

func (pr *Projector) drawShadows(sub submission, ext Extents, primitive func(x, y, z []float64, style Style) error) error {
	ratio := sub.ratio
	if ratio == 0 {
		ratio = pr.ratio
	}
	style := sub.style.shadow(ratio)
	for _, plane := range canonicalPlanes {
		if !pr.hasPlane(plane) {
			continue
		}
		x, y, z := project(sub.x, sub.y, sub.z, plane, pr.clampValue(plane, ext))
		if err := primitive(x, y, z, style); err != nil {
			return err
		}
	}
	return nil
}

func (pr *Projector) hasPlane(plane Plane) bool {
	for _, p := range pr.planes {
		if p == plane {
			return true
		}
	}
	return false
}

// clampValue returns the bound of the axis orthogonal to `plane`
// selected by the plane position.
func (pr *Projector) clampValue(plane Plane, ext Extents) float64 {
	switch plane {
	case XY:
		if pr.positions[plane] == Max {
			return ext.Zmax
		}
		return ext.Zmin
	case XZ:
		if pr.positions[plane] == Max {
			return ext.Ymax
		}
		return ext.Ymin
	default:
		if pr.positions[plane] == Max {
			return ext.Xmax
		}
		return ext.Xmin
	}
}

// project replaces the coordinate orthogonal to `plane` by a
// constant slice filled with `bound`, leaving the two others
// untouched.
func project(x, y, z []float64, plane Plane, bound float64) (px, py, pz []float64) {
	switch plane {
	case XY:
		return x, y, constant(len(z), bound)
	case XZ:
		return x, constant(len(y), bound), z
	default:
		return constant(len(x), bound), y, z
	}
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// DrawAxes draws three axis indicator segments starting at the
// corner (xmin, ymin, zmin) of the current bounds, each covering
// `partial` (in (0, 1]) of the axis extent.
// The segments are drawn directly, not recorded for shadowing.
func (pr *Projector) DrawAxes(partial float64) error {
	ext := readExtents(pr.surface)
	style := Style{"color": "black", "linewidth": 2.0}
	segments := [3][2][3]float64{
		{{ext.Xmin, ext.Ymin, ext.Zmin}, {ext.Xmin + partial*(ext.Xmax-ext.Xmin), ext.Ymin, ext.Zmin}},
		{{ext.Xmin, ext.Ymin, ext.Zmin}, {ext.Xmin, ext.Ymin + partial*(ext.Ymax-ext.Ymin), ext.Zmin}},
		{{ext.Xmin, ext.Ymin, ext.Zmin}, {ext.Xmin, ext.Ymin, ext.Zmin + partial*(ext.Zmax-ext.Zmin)}},
	}
	for _, seg := range segments {
		err := pr.surface.Plot(
			[]float64{seg[0][0], seg[1][0]},
			[]float64{seg[0][1], seg[1][1]},
			[]float64{seg[0][2], seg[1][2]}, style)
		if err != nil {
			return err
		}
	}
	return nil
}

// DrawPlanes draws two translucent gray reference patches at the
// current bounds: a floor at z = zmin and a wall at x = xmin.
// The y planes are deliberately left out.
func (pr *Projector) DrawPlanes() error {
	ext := readExtents(pr.surface)
	style := Style{"color": "gray", "opacity": 0.1}

	// floor at z = zmin
	xx := [][]float64{{ext.Xmin, ext.Xmax}, {ext.Xmin, ext.Xmax}}
	yy := [][]float64{{ext.Ymin, ext.Ymin}, {ext.Ymax, ext.Ymax}}
	zz := [][]float64{{ext.Zmin, ext.Zmin}, {ext.Zmin, ext.Zmin}}
	if err := pr.surface.SurfacePatch(xx, yy, zz, style); err != nil {
		return err
	}

	// wall at x = xmin
	yy = [][]float64{{ext.Ymin, ext.Ymax}, {ext.Ymin, ext.Ymax}}
	zz = [][]float64{{ext.Zmin, ext.Zmin}, {ext.Zmax, ext.Zmax}}
	xx = [][]float64{{ext.Xmin, ext.Xmin}, {ext.Xmin, ext.Xmin}}
	return pr.surface.SurfacePatch(xx, yy, zz, style)
}

// SetLabels sets the axis labels of the surface.
func (pr *Projector) SetLabels(xlabel, ylabel, zlabel string) {
	pr.surface.SetXLabel(xlabel)
	pr.surface.SetYLabel(ylabel)
	pr.surface.SetZLabel(zlabel)
}

// SetTitle sets the title of the surface.
func (pr *Projector) SetTitle(title string) { pr.surface.SetTitle(title) }
