package systems

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/tether/components"
)

// Tint colors blended into upgraded segments.
var (
	goldTint     = colorful.Color{R: 1.0, G: 0.85, B: 0.3}
	platinumTint = colorful.Color{R: 0.92, G: 0.94, B: 0.98}
)

// EnhanceForLevel derives the display color of a segment from its base color
// and merge tier. Tier 1 is the base color; tiers 2 and 3 blend in fixed
// tints; tier 4 and beyond cycle hue procedurally.
func EnhanceForLevel(base components.Color, level int) components.Color {
	c := colorful.Color{R: float64(base.R), G: float64(base.G), B: float64(base.B)}

	switch {
	case level <= 1:
		return base
	case level == 2:
		c = c.BlendRgb(goldTint, 0.35)
	case level == 3:
		c = c.BlendRgb(platinumTint, 0.45)
	default:
		hue := math.Mod(float64(level)*60.0, 360.0)
		c = colorful.Hsl(hue, 0.8, 0.7)
	}

	c = c.Clamped()
	return components.Color{
		R: float32(c.R),
		G: float32(c.G),
		B: float32(c.B),
		A: base.A,
	}
}
