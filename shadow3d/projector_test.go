package shadow3d

import (
	"errors"
	"math"
	"testing"
)

// recordSurface stores the draw calls it receives, to check what a
// projector forwards.
type recordSurface struct {
	calls []drawCall
	ext   Extents
	err   error // returned by every primitive when non nil

	xlabel, ylabel, zlabel, title string
}

type drawCall struct {
	op      string // "scatter", "plot" or "patch"
	x, y, z []float64
	style   Style
}

func (rs *recordSurface) Scatter(x, y, z []float64, style Style) error {
	if rs.err != nil {
		return rs.err
	}
	rs.calls = append(rs.calls, drawCall{op: "scatter", x: x, y: y, z: z, style: style})
	return nil
}

func (rs *recordSurface) Plot(x, y, z []float64, style Style) error {
	if rs.err != nil {
		return rs.err
	}
	rs.calls = append(rs.calls, drawCall{op: "plot", x: x, y: y, z: z, style: style})
	return nil
}

func (rs *recordSurface) SurfacePatch(xx, yy, zz [][]float64, style Style) error {
	if rs.err != nil {
		return rs.err
	}
	rs.calls = append(rs.calls, drawCall{op: "patch", style: style})
	return nil
}

func (rs *recordSurface) XLim() (float64, float64) { return rs.ext.Xmin, rs.ext.Xmax }
func (rs *recordSurface) YLim() (float64, float64) { return rs.ext.Ymin, rs.ext.Ymax }
func (rs *recordSurface) ZLim() (float64, float64) { return rs.ext.Zmin, rs.ext.Zmax }

func (rs *recordSurface) SetXLabel(label string) { rs.xlabel = label }
func (rs *recordSurface) SetYLabel(label string) { rs.ylabel = label }
func (rs *recordSurface) SetZLabel(label string) { rs.zlabel = label }
func (rs *recordSurface) SetTitle(title string)  { rs.title = title }

func newTestSurface() *recordSurface {
	return &recordSurface{ext: Extents{Xmin: -5, Xmax: 5, Ymin: -5, Ymax: 5, Zmin: -5, Zmax: 5}}
}

func floatsEqual(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			return false
		}
	}
	return true
}

func TestNewProjectorDefaults(t *testing.T) {
	pr, err := NewProjector(newTestSurface(), 0, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pr.ratio != DefaultRatio {
		t.Errorf("default ratio is %v, expected %v", pr.ratio, DefaultRatio)
	}
	if len(pr.planes) != 3 {
		t.Errorf("expected the three planes by default, got %v", pr.planes)
	}
	for _, plane := range []Plane{XY, XZ, YZ} {
		if pr.Position(plane) != Min {
			t.Errorf("plane %s: expected default position min", plane)
		}
	}
}

func TestNewProjectorStoresConfig(t *testing.T) {
	positions := map[Plane]Position{XY: Max, XZ: Min}
	pr, err := NewProjector(newTestSurface(), 0.5, []Plane{XY, XZ}, positions)
	if err != nil {
		t.Fatal(err)
	}
	if pr.ratio != 0.5 {
		t.Errorf("ratio: got %v", pr.ratio)
	}
	if len(pr.planes) != 2 || pr.planes[0] != XY || pr.planes[1] != XZ {
		t.Errorf("planes: got %v", pr.planes)
	}
	if pr.Position(XY) != Max || pr.Position(XZ) != Min {
		t.Errorf("positions: got %v", pr.positions)
	}

	// the caller map must not be shared
	positions[XY] = Min
	if pr.Position(XY) != Max {
		t.Error("positions map is shared with the caller")
	}
}

func TestNewProjectorInvalid(t *testing.T) {
	surface := newTestSurface()
	if _, err := NewProjector(surface, 0, []Plane{XY, Plane(7)}, nil); err == nil {
		t.Error("expected error for invalid plane")
	} else if _, ok := err.(ConfigError); !ok {
		t.Errorf("expected ConfigError, got %T", err)
	}
	if _, err := NewProjector(surface, 0, nil, map[Plane]Position{Plane(7): Min}); err == nil {
		t.Error("expected error for invalid position plane")
	}
	if _, err := NewProjector(surface, 0, nil, map[Plane]Position{XY: Position(3)}); err == nil {
		t.Error("expected error for invalid position value")
	} else if _, ok := err.(ConfigError); !ok {
		t.Errorf("expected ConfigError, got %T", err)
	}
}

func TestParsePlanePosition(t *testing.T) {
	for s, plane := range map[string]Plane{"xy": XY, "xz": XZ, "yz": YZ} {
		got, err := ParsePlane(s)
		if err != nil || got != plane {
			t.Errorf("ParsePlane(%s): got %s, %v", s, got, err)
		}
	}
	if _, err := ParsePlane("zz"); err == nil {
		t.Error("expected error for plane 'zz'")
	}
	if _, err := ParsePosition(XY, "center"); err == nil {
		t.Error("expected error for position 'center'")
	}
}

func TestScatterSnapshot(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)

	x, y, z := []float64{1, 2, 3}, []float64{1, 2, 3}, []float64{1, 2, 3}
	style := Style{"color": "red", "size": 50.}
	if err := pr.Scatter(x, y, z, style, 0); err != nil {
		t.Fatal(err)
	}
	if len(surface.calls) != 1 || surface.calls[0].op != "scatter" {
		t.Fatalf("expected one scatter call, got %v", surface.calls)
	}
	if len(pr.scatters) != 1 {
		t.Fatalf("expected one stored dataset, got %d", len(pr.scatters))
	}

	// the stored data must be a snapshot
	x[0], z[2] = -99, 99
	style["color"] = "green"
	stored := pr.scatters[0]
	if !floatsEqual(stored.x, []float64{1, 2, 3}) || !floatsEqual(stored.z, []float64{1, 2, 3}) {
		t.Error("stored coordinates are shared with the caller")
	}
	if stored.style["color"] != "red" || stored.style["size"] != 50. {
		t.Errorf("stored style is shared with the caller: %v", stored.style)
	}
}

func TestPlotSnapshot(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)
	if err := pr.Plot([]float64{1, 2}, []float64{3, 4}, []float64{5, 6}, Style{"color": "blue"}, 0); err != nil {
		t.Fatal(err)
	}
	if len(surface.calls) != 1 || surface.calls[0].op != "plot" {
		t.Fatalf("expected one plot call, got %v", surface.calls)
	}
	if len(pr.paths) != 1 || pr.paths[0].style["color"] != "blue" {
		t.Errorf("stored paths: %v", pr.paths)
	}
}

func TestDrawShadowsEmpty(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)
	if err := pr.DrawShadows(); err != nil {
		t.Fatal(err)
	}
	if len(surface.calls) != 0 {
		t.Errorf("expected no draw call, got %d", len(surface.calls))
	}
}

func TestDrawShadowsPointSet(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)

	x, y, z := []float64{1, 2, 3}, []float64{-1, 0, 1}, []float64{2, 2, 2}
	if err := pr.Scatter(x, y, z, Style{"color": "red", "opacity": 1.}, 0); err != nil {
		t.Fatal(err)
	}
	surface.calls = nil

	if err := pr.DrawShadows(); err != nil {
		t.Fatal(err)
	}
	if len(surface.calls) != 3 {
		t.Fatalf("expected 3 shadow calls, got %d", len(surface.calls))
	}
	// planes are drawn in the canonical order xy, xz, yz
	expected := []struct {
		x, y, z []float64
	}{
		{x, y, []float64{-5, -5, -5}},
		{x, []float64{-5, -5, -5}, z},
		{[]float64{-5, -5, -5}, y, z},
	}
	for i, call := range surface.calls {
		if call.op != "scatter" {
			t.Errorf("call %d: expected scatter, got %s", i, call.op)
		}
		if got := call.style.Opacity(); got != 0.3 {
			t.Errorf("call %d: expected shadow opacity 0.3, got %v", i, got)
		}
		if !floatsEqual(call.x, expected[i].x) || !floatsEqual(call.y, expected[i].y) || !floatsEqual(call.z, expected[i].z) {
			t.Errorf("call %d: unexpected coordinates %v %v %v", i, call.x, call.y, call.z)
		}
	}
}

func TestDrawShadowsPathAtMin(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, []Plane{XY}, nil)
	if err := pr.Plot([]float64{0}, []float64{0}, []float64{0}, Style{"color": "blue"}, 0); err != nil {
		t.Fatal(err)
	}
	surface.calls = nil

	if err := pr.DrawShadows(); err != nil {
		t.Fatal(err)
	}
	if len(surface.calls) != 1 {
		t.Fatalf("expected one shadow call, got %d", len(surface.calls))
	}
	call := surface.calls[0]
	if call.op != "plot" || !floatsEqual(call.x, []float64{0}) || !floatsEqual(call.y, []float64{0}) || !floatsEqual(call.z, []float64{-5}) {
		t.Errorf("unexpected shadow call: %+v", call)
	}
}

func TestDrawShadowsOrder(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, []Plane{XY}, nil)

	// paths submitted before points: the shadows must still draw
	// the point sets first
	pr.Plot([]float64{1}, []float64{1}, []float64{1}, Style{}, 0)
	pr.Scatter([]float64{2}, []float64{2}, []float64{2}, Style{}, 0)
	pr.Scatter([]float64{3}, []float64{3}, []float64{3}, Style{}, 0)
	surface.calls = nil

	if err := pr.DrawShadows(); err != nil {
		t.Fatal(err)
	}
	var ops []string
	for _, call := range surface.calls {
		ops = append(ops, call.op)
	}
	want := []string{"scatter", "scatter", "plot"}
	if len(ops) != 3 || ops[0] != want[0] || ops[1] != want[1] || ops[2] != want[2] {
		t.Errorf("unexpected shadow order %v", ops)
	}
	if !floatsEqual(surface.calls[0].x, []float64{2}) || !floatsEqual(surface.calls[1].x, []float64{3}) {
		t.Error("point sets not drawn in submission order")
	}
}

func TestShadowStyle(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, []Plane{XY}, nil)

	pr.Scatter([]float64{0}, []float64{0}, []float64{0}, Style{"alpha": 0.8, "c": "red", "size": 20.}, 0)
	surface.calls = nil
	if err := pr.DrawShadows(); err != nil {
		t.Fatal(err)
	}
	style := surface.calls[0].style
	if got := style.Opacity(); math.Abs(got-0.8*0.3) > 1e-12 {
		t.Errorf("shadow opacity: got %v", got)
	}
	if style["color"] != "red" {
		t.Errorf("alternate color entry not folded: %v", style)
	}
	if _, has := style["c"]; has {
		t.Error("alternate color entry not removed")
	}
	if style["size"] != 20. {
		t.Error("pass-through entries lost")
	}

	// no color at all: gray
	pr2, _ := NewProjector(surface, 0, []Plane{XY}, nil)
	pr2.Scatter([]float64{0}, []float64{0}, []float64{0}, Style{}, 0)
	surface.calls = nil
	pr2.DrawShadows()
	if surface.calls[0].style["color"] != "gray" {
		t.Errorf("expected gray shadow, got %v", surface.calls[0].style)
	}
}

func TestShadowRatioOverride(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, []Plane{XY}, nil)
	pr.Scatter([]float64{0}, []float64{0}, []float64{0}, Style{}, 0.9)
	surface.calls = nil
	if err := pr.DrawShadows(); err != nil {
		t.Fatal(err)
	}
	if got := surface.calls[0].style.Opacity(); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("expected overridden ratio 0.9, got %v", got)
	}
}

func TestSetPositions(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)

	if err := pr.SetPositions(map[Plane]Position{XY: Max}); err != nil {
		t.Fatal(err)
	}
	if pr.Position(XY) != Max || pr.Position(XZ) != Min || pr.Position(YZ) != Min {
		t.Errorf("unexpected positions after merge: %v", pr.positions)
	}

	// an invalid update must leave the configuration untouched
	err := pr.SetPositions(map[Plane]Position{XZ: Max, YZ: Position(9)})
	if err == nil {
		t.Fatal("expected error for invalid position")
	}
	if _, ok := err.(ConfigError); !ok {
		t.Errorf("expected ConfigError, got %T", err)
	}
	if pr.Position(XY) != Max || pr.Position(XZ) != Min || pr.Position(YZ) != Min {
		t.Errorf("configuration modified by a rejected update: %v", pr.positions)
	}
}

func TestShadowsFollowPositions(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, []Plane{XY}, nil)
	pr.Scatter([]float64{0}, []float64{0}, []float64{0}, Style{}, 0)

	pr.SetPositions(map[Plane]Position{XY: Max})
	surface.calls = nil
	pr.DrawShadows()
	if !floatsEqual(surface.calls[0].z, []float64{5}) {
		t.Errorf("expected projection at zmax, got %v", surface.calls[0].z)
	}
}

func TestShadowsReadCurrentExtents(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, []Plane{XY}, nil)
	pr.Scatter([]float64{0}, []float64{0}, []float64{0}, Style{}, 0)

	surface.ext.Zmin = -20
	surface.calls = nil
	pr.DrawShadows()
	if !floatsEqual(surface.calls[0].z, []float64{-20}) {
		t.Errorf("extents not re-read: %v", surface.calls[0].z)
	}
}

func TestPrimitiveErrorPropagates(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)

	fail := errors.New("mismatched lengths")
	surface.err = fail
	if err := pr.Scatter([]float64{1}, []float64{1, 2}, []float64{1}, Style{}, 0); err != fail {
		t.Errorf("expected the surface error unchanged, got %v", err)
	}
	if len(pr.scatters) != 0 {
		t.Error("failed dataset was recorded")
	}
	if err := pr.Plot([]float64{1}, []float64{1}, []float64{1}, Style{}, 0); err != fail {
		t.Errorf("expected the surface error unchanged, got %v", err)
	}
}

func TestDrawAxes(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)
	if err := pr.DrawAxes(0.5); err != nil {
		t.Fatal(err)
	}
	if len(surface.calls) != 3 {
		t.Fatalf("expected 3 axis segments, got %d", len(surface.calls))
	}
	// x axis indicator, covering half of the extent
	call := surface.calls[0]
	if call.op != "plot" || !floatsEqual(call.x, []float64{-5, 0}) ||
		!floatsEqual(call.y, []float64{-5, -5}) || !floatsEqual(call.z, []float64{-5, -5}) {
		t.Errorf("unexpected x axis segment %+v", call)
	}
	for _, call := range surface.calls {
		if call.style["color"] != "black" {
			t.Errorf("unexpected axis style %v", call.style)
		}
	}
	// the guides must not be recorded as datasets
	if len(pr.paths) != 0 {
		t.Error("axis guides were recorded for shadowing")
	}
}

func TestDrawPlanes(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)
	if err := pr.DrawPlanes(); err != nil {
		t.Fatal(err)
	}
	// only the z floor and the x wall, never the y planes
	if len(surface.calls) != 2 {
		t.Fatalf("expected 2 reference patches, got %d", len(surface.calls))
	}
	for _, call := range surface.calls {
		if call.op != "patch" {
			t.Errorf("expected patch, got %s", call.op)
		}
		if call.style["color"] != "gray" || call.style.Opacity() != 0.1 {
			t.Errorf("unexpected patch style %v", call.style)
		}
	}
}

func TestLabelsAndTitle(t *testing.T) {
	surface := newTestSurface()
	pr, _ := NewProjector(surface, 0, nil, nil)
	pr.SetLabels("X Label", "Y Label", "Z Label")
	pr.SetTitle("Test Title")
	if surface.xlabel != "X Label" || surface.ylabel != "Y Label" || surface.zlabel != "Z Label" {
		t.Errorf("labels not forwarded: %q %q %q", surface.xlabel, surface.ylabel, surface.zlabel)
	}
	if surface.title != "Test Title" {
		t.Errorf("title not forwarded: %q", surface.title)
	}
}
