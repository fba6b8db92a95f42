package window

import (
	"image/color"

	"github.com/genricoloni/tuner/internal/domain"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// canvas implements render.Canvas on top of an ebiten screen image
type canvas struct {
	dst    *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

func newCanvas(source *text.GoTextFaceSource) *canvas {
	return &canvas{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}
}

func (c *canvas) Fill(col color.Color) {
	c.dst.Fill(col)
}

func (c *canvas) FillRect(x, y, w, h float32, col color.Color) {
	vector.DrawFilledRect(c.dst, x, y, w, h, col, false)
}

func (c *canvas) StrokeRect(x, y, w, h, width float32, col color.Color) {
	vector.StrokeRect(c.dst, x, y, w, h, width, col, false)
}

// VerticalGradient draws one row at a time
func (c *canvas) VerticalGradient(x, y, w, h float32, top, bottom color.Color) {
	rows := int(h)
	for i := range rows {
		t := float64(i) / float64(max(rows-1, 1))
		vector.DrawFilledRect(c.dst, x, y+float32(i), w, 1, lerp(top, bottom, t), false)
	}
}

func (c *canvas) Line(x0, y0, x1, y1, width float32, col color.Color) {
	vector.StrokeLine(c.dst, x0, y0, x1, y1, width, col, true)
}

func (c *canvas) FillCircle(cx, cy, r float32, col color.Color) {
	vector.DrawFilledCircle(c.dst, cx, cy, r, col, true)
}

func (c *canvas) Text(s string, x, y float32, size float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, s, c.face(size), op)
}

func (c *canvas) Texture(t domain.Texture, x, y, w, h float32) {
	tex, ok := t.(*texture)
	if !ok || tex.img == nil {
		return
	}
	b := tex.img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(tex.img, op)
}

func (c *canvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

func lerp(a, b color.Color, t float64) color.Color {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8((float64(x)*(1-t) + float64(y)*t) / 0x101)
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}
