package renderer

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ColorSource computes the color seen along a ray. remaining bounds the
// reflection and refraction depth.
type ColorSource interface {
	ColorAt(ray core.Ray, remaining int) core.Color
}

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// RenderOptions configures a render
type RenderOptions struct {
	Workers  int              // Parallel tile workers (0 = use CPU count)
	TileSize int              // Tile edge in pixels (0 = DefaultTileSize)
	MaxDepth int              // Recursion budget (0 = camera's MaxDepth)
	OnTile   func(TileResult) // Called once per finished tile, never concurrently
	Logger   core.Logger
}

// TileResult describes a finished tile
type TileResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	Bounds     image.Rectangle // Pixel bounds on the canvas
	TileNumber int             // Finished tiles so far, 1-based
	TotalTiles int
	Canvas     *Canvas // Canvas being rendered; only Bounds is final
}

// Image returns the finished pixels of the tile
func (r TileResult) Image() *image.RGBA {
	return r.Canvas.SubImage(r.Bounds)
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	X, Y   int             // Tile coordinates in the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image in
// row-major order
func NewTileGrid(width, height, tileSize int) []*Tile {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				X:      tileX,
				Y:      tileY,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}
	return tiles
}

// Render traces every pixel with the default options
func (c *Camera) Render(world ColorSource) *Canvas {
	// A background context never cancels, so the error is always nil
	canvas, _, _ := c.RenderContext(context.Background(), world, RenderOptions{})
	return canvas
}

// RenderContext traces every pixel, one tile per worker task. Each pixel is
// written exactly once into its own canvas cell. Cancelling ctx stops new
// tiles from starting; tiles already running finish. On cancellation the
// partial canvas is returned with ctx's error.
func (c *Camera) RenderContext(ctx context.Context, world ColorSource, opts RenderOptions) (*Canvas, RenderStats, error) {
	opts = c.withDefaults(opts)
	start := time.Now()

	canvas := NewCanvas(c.HSize, c.VSize)
	tiles := NewTileGrid(c.HSize, c.VSize, opts.TileSize)
	pool := NewWorkerPool(ctx, opts.Workers)

	stats := RenderStats{
		TotalPixels: c.HSize * c.VSize,
		TotalTiles:  len(tiles),
		Workers:     pool.NumWorkers(),
	}

	opts.Logger.Debugf("rendering %dx%d in %d tiles on %d workers",
		c.HSize, c.VSize, len(tiles), pool.NumWorkers())

	// Completion bookkeeping and callbacks run one at a time
	var mu sync.Mutex
	finish := func(tile *Tile) {
		mu.Lock()
		defer mu.Unlock()
		stats.add(tile)
		if opts.OnTile != nil {
			opts.OnTile(TileResult{
				TileX:      tile.X,
				TileY:      tile.Y,
				Bounds:     tile.Bounds,
				TileNumber: stats.CompletedTiles,
				TotalTiles: len(tiles),
				Canvas:     canvas,
			})
		}
	}

	for _, tile := range tiles {
		tile := tile
		submitted := pool.Submit(func() error {
			c.renderTile(world, canvas, tile, opts.MaxDepth)
			finish(tile)
			return nil
		})
		if !submitted {
			break
		}
	}

	err := pool.Wait()
	if err == nil {
		err = ctx.Err()
	}

	mu.Lock()
	stats.Duration = time.Since(start)
	result := stats
	mu.Unlock()

	if err != nil {
		opts.Logger.Warnf("render stopped after %d/%d tiles: %v", result.CompletedTiles, result.TotalTiles, err)
		return canvas, result, err
	}
	opts.Logger.Debugf("render finished in %v", result.Duration)
	return canvas, result, nil
}

func (c *Camera) renderTile(world ColorSource, canvas *Canvas, tile *Tile, maxDepth int) {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			ray := c.RayForPixel(x, y)
			canvas.WritePixel(x, y, world.ColorAt(ray, maxDepth))
		}
	}
}

func (c *Camera) withDefaults(opts RenderOptions) RenderOptions {
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultTileSize
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = c.MaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	return opts
}
