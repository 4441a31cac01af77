package components

// Color is a normalized RGBA color. Components are in [0, 1].
type Color struct {
	R, G, B, A float32
}

// basePalette provides segment base colors, indexed by option identity.
var basePalette = []Color{
	{R: 0.3, G: 0.5, B: 0.8, A: 1}, // blue
	{R: 0.8, G: 0.5, B: 0.3, A: 1}, // orange
	{R: 0.5, G: 0.8, B: 0.3, A: 1}, // green
	{R: 0.8, G: 0.3, B: 0.5, A: 1}, // pink
	{R: 0.5, G: 0.3, B: 0.8, A: 1}, // purple
}

// PaletteColor returns the base color for an option identity.
func PaletteColor(optionID int) Color {
	if optionID < 0 {
		optionID = -optionID
	}
	return basePalette[optionID%len(basePalette)]
}
