package app

import "flag"

// WindowConfig holds the GUI-only command-line parameters.
type WindowConfig struct {
	Scale    int
	TPS      int
	HUDWidth int
}

// NewWindowConfig returns a WindowConfig populated with sensible defaults.
func NewWindowConfig() *WindowConfig {
	return &WindowConfig{Scale: 12, TPS: 60, HUDWidth: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *WindowConfig) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
}
