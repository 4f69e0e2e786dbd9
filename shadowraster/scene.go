package shadowraster

import (
	"image"
	"io"

	"github.com/benoitkugler/plot3dshadows/shadowscene"
)

// RasterSceneToImage reads a scene description and renders it into
// a width x height image, sized to the scene bounds.
func RasterSceneToImage(scene io.Reader, width, height int) (*image.RGBA, error) {
	parsed, err := shadowscene.ReadSceneStream(scene, shadowscene.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	renderer := NewRenderer(width, height, parsed.Bounds())
	if err := parsed.Draw(renderer); err != nil {
		return nil, err
	}
	return renderer.Image(), nil
}
