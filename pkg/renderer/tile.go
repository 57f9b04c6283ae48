package renderer

import (
	"image"
	"math/rand"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

// DefaultTileSize is the tile edge length used when none is configured
const DefaultTileSize = 64

// Tile is a rectangular block of pixels rendered by one worker
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// Sampler returns the tile's random stream for a render seeded with seed.
// The stream depends only on (seed, tile ID), never on which worker runs the tile.
func (t *Tile) Sampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(tileSeed(seed, t.ID))))
}

// tileSeed mixes the render seed with the tile ID
func tileSeed(seed int64, tileID int) int64 {
	return int64(uint64(seed) ^ (uint64(tileID)+1)*0x9E3779B97F4A7C15)
}
