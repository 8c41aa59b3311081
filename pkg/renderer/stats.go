package renderer

import "time"

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose ray hit a sphere within range
	BackgroundPixels int           // Pixels that fell back to the background
	Duration         time.Duration // Wall time spent in the pixel loop
}

// HitRatio returns the fraction of pixels that hit an object
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
