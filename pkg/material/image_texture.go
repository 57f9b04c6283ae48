package material

import (
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample returns the nearest pixel to the given UV coordinates.
// UV is clamped to [0,1]; V=0 is the bottom row, V=1 the top row.
func (t *ImageTexture) Sample(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.NewVec3(0, 1, 1) // Debug cyan for missing image data
	}

	u := max(0.0, min(1.0, uv.X))
	v := 1.0 - max(0.0, min(1.0, uv.Y))

	x := int(u * float64(t.Width-1))
	y := int(v * float64(t.Height-1))

	return t.Pixels[y*t.Width+x]
}
