package shadowscene

import "github.com/benoitkugler/plot3dshadows/shadow3d"

// Given a parsed scene, implements how to draw it on a surface.

// Bounds returns the axis bounds of the scene: the explicit
// xlim/ylim/zlim attributes when given, or bounds computed from the
// data with a 5% margin (the unit interval for an empty axis).
func (sc *Scene) Bounds() shadow3d.Extents {
	var ext shadow3d.Extents
	ext.Xmin, ext.Xmax = sc.axisBounds(sc.xlim, func(it Item) []float64 { return it.X })
	ext.Ymin, ext.Ymax = sc.axisBounds(sc.ylim, func(it Item) []float64 { return it.Y })
	ext.Zmin, ext.Zmax = sc.axisBounds(sc.zlim, func(it Item) []float64 { return it.Z })
	return ext
}

func (sc *Scene) axisBounds(explicit *[2]float64, coords func(Item) []float64) (float64, float64) {
	if explicit != nil {
		return explicit[0], explicit[1]
	}
	var (
		min, max float64
		seen     bool
	)
	for _, item := range sc.Items {
		for _, v := range coords(item) {
			if !seen || v < min {
				min = v
			}
			if !seen || v > max {
				max = v
			}
			seen = true
		}
	}
	if !seen {
		return 0, 1
	}
	if min == max { // degenerate data, open an arbitrary window
		return min - 0.5, max + 0.5
	}
	margin := 0.05 * (max - min)
	return min - margin, max + margin
}

// Draw replays the scene on `surface`: the datasets in document
// order, then the reference planes and axes if requested, and
// finally the shadows.
// The surface bounds are left untouched; use Bounds to size the
// surface beforehand.
func (sc *Scene) Draw(surface shadow3d.Surface) error {
	surface.SetTitle(sc.Title)
	surface.SetXLabel(sc.XLabel)
	surface.SetYLabel(sc.YLabel)
	surface.SetZLabel(sc.ZLabel)

	projector, err := shadow3d.NewProjector(surface, sc.Ratio, sc.Planes, sc.Positions)
	if err != nil {
		return err
	}
	for _, item := range sc.Items {
		switch item.Kind {
		case Points:
			err = projector.Scatter(item.X, item.Y, item.Z, item.Style, item.Ratio)
		case Path:
			err = projector.Plot(item.X, item.Y, item.Z, item.Style, item.Ratio)
		}
		if err != nil {
			return err
		}
	}
	if sc.ShowPlanes {
		if err = projector.DrawPlanes(); err != nil {
			return err
		}
	}
	if sc.ShowAxes {
		if err = projector.DrawAxes(sc.AxesPartial); err != nil {
			return err
		}
	}
	return projector.DrawShadows()
}
