package shadowraster_test

import (
	"log"
	"math"
	"os"

	"github.com/benoitkugler/plot3dshadows/shadow3d"
	"github.com/benoitkugler/plot3dshadows/shadowraster"
)

// Draws a helix and a handful of points with their shadows on the
// three coordinate planes, and saves the result as a PNG file.
func Example() {
	bounds := shadow3d.Extents{Xmin: -1.5, Xmax: 1.5, Ymin: -1.5, Ymax: 1.5, Zmin: 0, Zmax: 6}
	surface := shadowraster.NewRenderer(640, 480, bounds)

	projector, err := shadow3d.NewProjector(surface, 0, nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	const steps = 200
	x := make([]float64, steps)
	y := make([]float64, steps)
	z := make([]float64, steps)
	for i := range x {
		t := float64(i) / steps * 4 * math.Pi
		x[i], y[i], z[i] = math.Cos(t), math.Sin(t), t/2
	}
	if err = projector.Plot(x, y, z, shadow3d.Style{"color": "royalblue", "linewidth": 2.}, 0); err != nil {
		log.Fatal(err)
	}
	err = projector.Scatter(
		[]float64{1, -1, 0.5}, []float64{0, 0.5, -1}, []float64{1, 3, 5},
		shadow3d.Style{"color": "crimson", "size": 5.}, 0)
	if err != nil {
		log.Fatal(err)
	}

	if err = projector.DrawPlanes(); err != nil {
		log.Fatal(err)
	}
	if err = projector.DrawShadows(); err != nil {
		log.Fatal(err)
	}

	out, err := os.Create("testdata_out/helix.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err = surface.WritePNG(out); err != nil {
		log.Fatal(err)
	}
}
