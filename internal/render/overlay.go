package render

import (
	"image"
	"image/color"
	"math"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/genricoloni/tuner/internal/theme"
)

// Layout of the overlay in window pixels
const (
	ArtX    = 20
	ArtY    = 20
	ArtSize = 160

	TextX       = 205
	TitleY      = 50
	TitleSize   = 28
	ArtistY     = 85
	ArtistSize  = 20
	ButtonSize  = 40
	buttonInset = 55

	shadowOffset = 3
	glyphSize    = 60
	placeholder  = "♪"

	barCount   = 5
	barStride  = 8
	barWidth   = 5
	barBaseY   = 155
	barMinH    = 10
	barSwing   = 20
	barSpeed   = 3.0
	barPhase   = 0.5
	sunRadius  = 8
	rayInner   = 10
	rayOuter   = 14
	rayCount   = 8
	moonRadius = 10
)

var (
	// ClearColor is painted before anything else each frame
	ClearColor = color.RGBA{18, 18, 18, 255}

	shadowColor     = color.NRGBA{0, 0, 0, 100}
	artBorderColor  = color.NRGBA{255, 255, 255, 30}
	barColor        = color.RGBA{100, 200, 100, 255}
	sunColor        = color.RGBA{255, 220, 100, 255}
	moonColor       = color.RGBA{100, 120, 180, 255}
	darkButtonEdge  = color.RGBA{100, 100, 110, 255}
	lightButtonEdge = color.RGBA{160, 160, 170, 255}
)

// Frame is everything needed to draw one image of the overlay
type Frame struct {
	Width, Height int
	Title         string
	Artist        string
	Art           domain.Texture // nil when no artwork is adopted
	Backdrop      domain.Texture // optional blurred background
	Palette       theme.Palette
	Dark          bool
	Hover         bool
	Time          float64
}

// ButtonRect returns the theme toggle button for a window of the given size
func ButtonRect(width, height int) image.Rectangle {
	x := width - buttonInset
	y := height - buttonInset
	return image.Rect(x, y, x+ButtonSize, y+ButtonSize)
}

// InButton reports whether the pointer lies on the toggle button, edges included
func InButton(width, height int, p domain.Pointer) bool {
	r := ButtonRect(width, height)
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// DrawOverlay paints the full overlay onto c
func DrawOverlay(c Canvas, f Frame) {
	w, h := float32(f.Width), float32(f.Height)

	c.Fill(ClearColor)
	if f.Backdrop != nil {
		c.Texture(f.Backdrop, 0, 0, w, h)
	} else {
		c.VerticalGradient(0, 0, w, h, f.Palette.BackgroundTop, f.Palette.BackgroundBottom)
	}

	drawArt(c, f)

	c.Text(Truncate(f.Title, TitleLimit), TextX, TitleY, TitleSize, f.Palette.TextPrimary)
	c.Text(Truncate(f.Artist, ArtistLimit), TextX, ArtistY, ArtistSize, f.Palette.TextSecondary)

	drawEqualizer(c, f.Time)
	drawButton(c, f)
}

func drawArt(c Canvas, f Frame) {
	if f.Art == nil {
		c.FillRect(ArtX, ArtY, ArtSize, ArtSize, f.Palette.PlaceholderBackground)
		c.StrokeRect(ArtX, ArtY, ArtSize, ArtSize, 2, f.Palette.PlaceholderBorder)
		c.Text(placeholder, ArtX+glyphSize, ArtY+glyphSize, glyphSize, f.Palette.PlaceholderIcon)
		return
	}

	c.FillRect(ArtX+shadowOffset, ArtY+shadowOffset, ArtSize, ArtSize, shadowColor)
	c.Texture(f.Art, ArtX, ArtY, ArtSize, ArtSize)
	c.StrokeRect(ArtX, ArtY, ArtSize, ArtSize, 1, artBorderColor)
}

// drawEqualizer animates decorative bars below the text
func drawEqualizer(c Canvas, t float64) {
	for i := range barCount {
		bh := barMinH + math.Abs(math.Sin(t*barSpeed+float64(i)*barPhase))*barSwing
		x := float32(TextX + i*barStride)
		c.FillRect(x, float32(barBaseY-bh), barWidth, float32(bh), barColor)
	}
}

func drawButton(c Canvas, f Frame) {
	r := ButtonRect(f.Width, f.Height)
	x, y := float32(r.Min.X), float32(r.Min.Y)

	base := f.Palette.ButtonBase
	if f.Hover {
		base = f.Palette.ButtonHover
	}
	edge := lightButtonEdge
	if f.Dark {
		edge = darkButtonEdge
	}

	c.FillRect(x, y, ButtonSize, ButtonSize, base)
	c.StrokeRect(x, y, ButtonSize, ButtonSize, 2, edge)

	cx := x + ButtonSize/2
	cy := y + ButtonSize/2
	if f.Dark {
		drawSun(c, cx, cy)
		return
	}
	// Crescent: a second disc in the background color bites into the first
	c.FillCircle(cx-2, cy-2, moonRadius, moonColor)
	c.FillCircle(cx+3, cy-2, moonRadius, f.Palette.BackgroundTop)
}

func drawSun(c Canvas, cx, cy float32) {
	c.FillCircle(cx, cy, sunRadius, sunColor)
	for i := range rayCount {
		a := float64(i) * math.Pi / 4
		sin, cos := math.Sincos(a)
		c.Line(
			cx+float32(cos*rayInner), cy+float32(sin*rayInner),
			cx+float32(cos*rayOuter), cy+float32(sin*rayOuter),
			2, sunColor)
	}
}
