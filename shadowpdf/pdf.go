// Implements a PDF surface to draw 3D plots and their shadows,
// by wrapping github.com/jung-kurt/gofpdf.
package shadowpdf

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/plot3dshadows/shadow3d"
	"github.com/jung-kurt/gofpdf"
)

var _ shadow3d.Surface = (*Renderer)(nil) // assert interface conformance

// Renderer draws on the current page of a pdf document.
type Renderer struct {
	pdf  *gofpdf.Fpdf
	view shadow3d.View
}

// NewRenderer returns a surface drawing in a width x height area
// (in the unit of `pdf`, from the top left corner of the page),
// with the axis bounds fixed to `bounds`.
// A page must already have been added to `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf, width, height float64, bounds shadow3d.Extents) *Renderer {
	return &Renderer{pdf: pdf, view: shadow3d.NewView(width, height, bounds)}
}

// SetBounds updates the axis bounds used to project the data.
func (rd *Renderer) SetBounds(bounds shadow3d.Extents) { rd.view.Bounds = bounds }

func (rd *Renderer) XLim() (min, max float64) { return rd.view.Bounds.Xmin, rd.view.Bounds.Xmax }
func (rd *Renderer) YLim() (min, max float64) { return rd.view.Bounds.Ymin, rd.view.Bounds.Ymax }
func (rd *Renderer) ZLim() (min, max float64) { return rd.view.Bounds.Zmin, rd.view.Bounds.Zmax }

func (rd *Renderer) SetXLabel(label string) { rd.text(rd.view.Width*0.25, rd.view.Height+8, label) }
func (rd *Renderer) SetYLabel(label string) { rd.text(rd.view.Width*0.75, rd.view.Height+8, label) }
func (rd *Renderer) SetZLabel(label string) { rd.text(0, rd.view.Height*0.5, label) }
func (rd *Renderer) SetTitle(title string)  { rd.text(rd.view.Width*0.5, 8, title) }

func (rd *Renderer) text(x, y float64, s string) {
	rd.pdf.SetFont("Helvetica", "", 10)
	rd.pdf.SetTextColor(0, 0, 0)
	rd.pdf.Text(x, y, s)
}

func checkLengths(x, y, z []float64) error {
	if len(x) != len(y) || len(x) != len(z) {
		return fmt.Errorf("mismatched coordinate lengths: %d, %d, %d", len(x), len(y), len(z))
	}
	return nil
}

// setAlpha applies the style opacity, folding in the alpha
// component of the color as gofpdf has no transparent colors.
func (rd *Renderer) setAlpha(col color.RGBA, opacity float64) {
	opacity *= float64(col.A) / 255.
	rd.pdf.SetAlpha(opacity, "")
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
	rd.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	rd.setAlpha(col, style.Opacity())
	radius := style.Float("size", 3)
	for i := range x {
		cx, cy := rd.view.Project(x[i], y[i], z[i])
		rd.pdf.Circle(cx, cy, radius, "F")
	}
	rd.pdf.SetAlpha(1, "")
	return rd.pdf.Error()
}

// Plot draws the polyline, with width given by the "linewidth"
// style entry (2 by default).
func (rd *Renderer) Plot(x, y, z []float64, style shadow3d.Style) error {
	if err := checkLengths(x, y, z); err != nil {
		return err
	}
	if len(x) == 0 {
		return rd.pdf.Error()
	}
	col, err := shadow3d.ParseColor(style["color"])
	if err != nil {
		return err
	}
	rd.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	rd.setAlpha(col, style.Opacity())
	rd.pdf.SetLineWidth(style.Float("linewidth", 2) * 0.5)
	rd.pdf.MoveTo(rd.view.Project(x[0], y[0], z[0]))
	for i := 1; i < len(x); i++ {
		rd.pdf.LineTo(rd.view.Project(x[i], y[i], z[i]))
	}
	rd.pdf.DrawPath("D")
	rd.pdf.SetAlpha(1, "")
	return rd.pdf.Error()
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
	rd.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	rd.setAlpha(col, style.Opacity())
	rd.pdf.MoveTo(rd.view.Project(corners[0][0], corners[0][1], corners[0][2]))
	for _, c := range corners[1:] {
		rd.pdf.LineTo(rd.view.Project(c[0], c[1], c[2]))
	}
	rd.pdf.ClosePath()
	rd.pdf.DrawPath("f")
	rd.pdf.SetAlpha(1, "")
	return rd.pdf.Error()
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
	for k, ij := range [4][2]int{{0, 0}, {0, cols - 1}, {rows - 1, cols - 1}, {rows - 1, 0}} {
		i, j := ij[0], ij[1]
		out[k] = [3]float64{xx[i][j], yy[i][j], zz[i][j]}
	}
	return out, nil
}
