package config

import "runtime"

// Config holds runtime tunables for the crop preview, the compressor and
// background work. It is populated from defaults and command-line flags or
// environment variables; nothing is persisted.
type Config struct {
	Debug bool

	// Crop preview geometry (display pixels)
	PreviewMaxW   int
	PreviewMaxH   int
	HandleSize    int
	EdgeTolerance int
	MinSelection  int

	// Compression search
	JPEGQuality      int
	MaxTrials        int
	FloorPx          int
	DefaultTargetPct int // default target as a percentage of the source size
	MinTargetKB      int

	// Output quality for crop/resize when the output format is lossy
	SaveQuality int

	// Workers bounds concurrent image normalization in images-to-PDF.
	Workers int
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		PreviewMaxW:      800,
		PreviewMaxH:      600,
		HandleSize:       10,
		EdgeTolerance:    8,
		MinSelection:     20,
		JPEGQuality:      85,
		MaxTrials:        10,
		FloorPx:          50,
		DefaultTargetPct: 50,
		MinTargetKB:      10,
		SaveQuality:      95,
		Workers:          runtime.NumCPU(),
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.PreviewMaxW < 100 {
		c.PreviewMaxW = d.PreviewMaxW
	}
	if c.PreviewMaxH < 100 {
		c.PreviewMaxH = d.PreviewMaxH
	}
	if c.HandleSize <= 0 {
		c.HandleSize = d.HandleSize
	}
	if c.EdgeTolerance <= 0 {
		c.EdgeTolerance = d.EdgeTolerance
	}
	if c.MinSelection <= 0 {
		c.MinSelection = d.MinSelection
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = d.JPEGQuality
	}
	if c.MaxTrials <= 0 {
		c.MaxTrials = d.MaxTrials
	}
	if c.FloorPx <= 0 {
		c.FloorPx = d.FloorPx
	}
	if c.DefaultTargetPct < 1 || c.DefaultTargetPct > 100 {
		c.DefaultTargetPct = d.DefaultTargetPct
	}
	if c.MinTargetKB <= 0 {
		c.MinTargetKB = d.MinTargetKB
	}
	if c.SaveQuality < 1 || c.SaveQuality > 100 {
		c.SaveQuality = d.SaveQuality
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	return nil
}

// DefaultTargetKB suggests a compression target for a source of sizeBytes.
func (c *Config) DefaultTargetKB(sizeBytes int64) int {
	kb := int(float64(sizeBytes) / 1024 * float64(c.DefaultTargetPct) / 100)
	return max(c.MinTargetKB, kb)
}
