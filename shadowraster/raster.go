// Implements a raster surface to draw 3D plots and their shadows,
// by wrapping rasterx.
package shadowraster

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/benoitkugler/plot3dshadows/shadow3d"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ shadow3d.Surface = (*Renderer)(nil) // assert interface conformance

// Renderer draws on an RGBA image, using a separated filler
// (markers and patches) and dasher (lines) to avoid shared state.
type Renderer struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher

	view shadow3d.View

	xlabel, ylabel, zlabel, title string
}

// NewRenderer returns a surface drawing into a width x height image,
// with the axis bounds fixed to `bounds`. A rasterx.ScannerGV
// instance is used for the actual scanning.
func NewRenderer(width, height int, bounds shadow3d.Extents) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Renderer{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
		view:   shadow3d.NewView(float64(width), float64(height), bounds),
	}
}

// Image exposes the target image, valid at any point of the drawing.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

// WritePNG encodes the current image to `w`.
func (rd *Renderer) WritePNG(w io.Writer) error { return png.Encode(w, rd.img) }

// SetBounds updates the axis bounds used to project the data.
func (rd *Renderer) SetBounds(bounds shadow3d.Extents) { rd.view.Bounds = bounds }

// SetCamera updates the view angles, in degrees.
func (rd *Renderer) SetCamera(azimuth, elevation float64) {
	rd.view.Azimuth, rd.view.Elevation = azimuth, elevation
}

func (rd *Renderer) XLim() (min, max float64) { return rd.view.Bounds.Xmin, rd.view.Bounds.Xmax }
func (rd *Renderer) YLim() (min, max float64) { return rd.view.Bounds.Ymin, rd.view.Bounds.Ymax }
func (rd *Renderer) ZLim() (min, max float64) { return rd.view.Bounds.Zmin, rd.view.Bounds.Zmax }

// The labels and title are kept for the caller, not rasterized:
// text layout is out of scope for this backend.

func (rd *Renderer) SetXLabel(label string) { rd.xlabel = label }
func (rd *Renderer) SetYLabel(label string) { rd.ylabel = label }
func (rd *Renderer) SetZLabel(label string) { rd.zlabel = label }
func (rd *Renderer) SetTitle(title string)  { rd.title = title }

// Labels returns the axis labels set so far.
func (rd *Renderer) Labels() (xlabel, ylabel, zlabel string) {
	return rd.xlabel, rd.ylabel, rd.zlabel
}

// Title returns the title set so far.
func (rd *Renderer) Title() string { return rd.title }

func checkLengths(x, y, z []float64) error {
	if len(x) != len(y) || len(x) != len(z) {
		return fmt.Errorf("mismatched coordinate lengths: %d, %d, %d", len(x), len(y), len(z))
	}
	return nil
}

func toFixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// Scatter draws one filled circle per point, with radius given by
// the "size" style entry (3 by default).
func (rd *Renderer) Scatter(x, y, z []float64, style shadow3d.Style) error {
	if err := checkLengths(x, y, z); err != nil {
		return err
	}
	col, err := shadow3d.ParseColor(style["color"])
	if err != nil {
		return err
	}
	rd.filler.Clear()
	rd.filler.Scanner.SetColor(rasterx.ApplyOpacity(col, style.Opacity()))
	radius := style.Float("size", 3)
	for i := range x {
		cx, cy := rd.view.Project(x[i], y[i], z[i])
		rasterx.AddCircle(cx, cy, radius, rd.filler)
	}
	rd.filler.Draw()
	rd.filler.Clear()
	return nil
}

// Plot draws the polyline, with width given by the "linewidth"
// style entry (2 by default).
func (rd *Renderer) Plot(x, y, z []float64, style shadow3d.Style) error {
	if err := checkLengths(x, y, z); err != nil {
		return err
	}
	if len(x) == 0 {
		return nil
	}
	col, err := shadow3d.ParseColor(style["color"])
	if err != nil {
		return err
	}
	rd.dasher.Clear()
	rd.dasher.SetStroke(
		fixed.Int26_6(style.Float("linewidth", 2)*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Round, nil, 0,
	)
	rd.dasher.Start(toFixedPoint(rd.view.Project(x[0], y[0], z[0])))
	for i := 1; i < len(x); i++ {
		rd.dasher.Line(toFixedPoint(rd.view.Project(x[i], y[i], z[i])))
	}
	rd.dasher.Stop(false)
	rd.dasher.Scanner.SetColor(rasterx.ApplyOpacity(col, style.Opacity()))
	rd.dasher.Draw()
	rd.dasher.Clear()
	return nil
}

// SurfacePatch draws the filled quadrilateral joining the four
// corners of the mesh.
func (rd *Renderer) SurfacePatch(xx, yy, zz [][]float64, style shadow3d.Style) error {
	corners, err := meshCorners(xx, yy, zz)
	if err != nil {
		return err
	}
	col, err := shadow3d.ParseColor(style["color"])
	if err != nil {
		return err
	}
	rd.filler.Clear()
	rd.filler.Scanner.SetColor(rasterx.ApplyOpacity(col, style.Opacity()))
	rd.filler.Start(toFixedPoint(rd.view.Project(corners[0][0], corners[0][1], corners[0][2])))
	for _, c := range corners[1:] {
		rd.filler.Line(toFixedPoint(rd.view.Project(c[0], c[1], c[2])))
	}
	rd.filler.Stop(true)
	rd.filler.Draw()
	rd.filler.Clear()
	return nil
}

// meshCorners extracts the perimeter corners of the mesh, checking
// its consistency.
func meshCorners(xx, yy, zz [][]float64) ([4][3]float64, error) {
	var out [4][3]float64
	rows := len(xx)
	if rows < 2 || len(yy) != rows || len(zz) != rows {
		return out, fmt.Errorf("mismatched mesh: %d, %d, %d rows", len(xx), len(yy), len(zz))
	}
	cols := len(xx[0])
	for i := 0; i < rows; i++ {
		if cols < 2 || len(xx[i]) != cols || len(yy[i]) != cols || len(zz[i]) != cols {
			return out, fmt.Errorf("mismatched mesh row %d", i)
		}
	}
	// walk the corners clockwise
	for k, ij := range [4][2]int{{0, 0}, {0, cols - 1}, {rows - 1, cols - 1}, {rows - 1, 0}} {
		i, j := ij[0], ij[1]
		out[k] = [3]float64{xx[i][j], yy[i][j], zz[i][j]}
	}
	return out, nil
}
