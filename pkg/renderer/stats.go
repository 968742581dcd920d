package renderer

import "time"

// RenderStats contains statistics about a finished or cancelled render
type RenderStats struct {
	TotalPixels    int           // Pixels on the canvas
	RenderedPixels int           // Pixels actually traced
	TotalTiles     int           // Tiles in the grid
	CompletedTiles int           // Tiles finished before the render stopped
	Workers        int           // Concurrent tile workers
	Duration       time.Duration // Wall time of the render
}

// add folds one finished tile into the totals
func (s *RenderStats) add(tile *Tile) {
	s.CompletedTiles++
	s.RenderedPixels += tile.Bounds.Dx() * tile.Bounds.Dy()
}

// Complete reports whether every tile was rendered
func (s RenderStats) Complete() bool {
	return s.TotalTiles > 0 && s.CompletedTiles == s.TotalTiles
}

// PixelsPerSecond returns the trace throughput, or 0 before any time elapsed
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.RenderedPixels) / s.Duration.Seconds()
}
