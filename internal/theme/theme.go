// Package theme tracks the light/dark flag and maps it to the overlay palette.
package theme

import "image/color"

// Palette holds the colors for every semantic role of the overlay
type Palette struct {
	BackgroundTop         color.RGBA
	BackgroundBottom      color.RGBA
	TextPrimary           color.RGBA
	TextSecondary         color.RGBA
	PlaceholderBackground color.RGBA
	PlaceholderBorder     color.RGBA
	PlaceholderIcon       color.RGBA
	ButtonBase            color.RGBA
	ButtonHover           color.RGBA
}

var (
	// Dark is the palette used while dark mode is on
	Dark = Palette{
		BackgroundTop:         rgb(30, 30, 35),
		BackgroundBottom:      rgb(15, 15, 20),
		TextPrimary:           rgb(240, 240, 245),
		TextSecondary:         rgb(160, 160, 170),
		PlaceholderBackground: rgb(40, 40, 45),
		PlaceholderBorder:     rgb(80, 80, 85),
		PlaceholderIcon:       rgb(100, 100, 105),
		ButtonBase:            rgb(50, 50, 55),
		ButtonHover:           rgb(70, 70, 75),
	}

	// Light is the palette used while dark mode is off
	Light = Palette{
		BackgroundTop:         rgb(245, 245, 250),
		BackgroundBottom:      rgb(230, 230, 240),
		TextPrimary:           rgb(20, 20, 25),
		TextSecondary:         rgb(80, 80, 90),
		PlaceholderBackground: rgb(220, 220, 230),
		PlaceholderBorder:     rgb(180, 180, 190),
		PlaceholderIcon:       rgb(150, 150, 160),
		ButtonBase:            rgb(210, 210, 220),
		ButtonHover:           rgb(190, 190, 200),
	}
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// State is the binary theme flag. The zero value is light mode.
type State struct {
	dark bool
}

// NewState creates a theme state with the given initial mode
func NewState(dark bool) *State {
	return &State{dark: dark}
}

// Toggle flips between dark and light
func (s *State) Toggle() {
	s.dark = !s.dark
}

// IsDark reports whether dark mode is on
func (s *State) IsDark() bool {
	return s.dark
}

// Palette returns the fixed palette for the current mode
func (s *State) Palette() Palette {
	if s.dark {
		return Dark
	}
	return Light
}
