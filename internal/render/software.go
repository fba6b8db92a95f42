package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/genricoloni/tuner/internal/domain"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// SoftwareCanvas rasterizes the overlay into an in-memory RGBA image
type SoftwareCanvas struct {
	img   *image.RGBA
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewSoftwareCanvas creates a width x height canvas using the Go regular font
func NewSoftwareCanvas(width, height int) (*SoftwareCanvas, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &SoftwareCanvas{
		img:   img,
		dc:    gg.NewContextForRGBA(img),
		font:  ttf,
		faces: make(map[float64]font.Face),
	}, nil
}

// Image returns the backing image; it is overwritten by the next frame
func (s *SoftwareCanvas) Image() *image.RGBA {
	return s.img
}

func (s *SoftwareCanvas) Fill(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *SoftwareCanvas) FillRect(x, y, w, h float32, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	s.dc.Fill()
}

func (s *SoftwareCanvas) StrokeRect(x, y, w, h, width float32, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(float64(width))
	s.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	s.dc.Stroke()
}

func (s *SoftwareCanvas) VerticalGradient(x, y, w, h float32, top, bottom color.Color) {
	g := gg.NewLinearGradient(float64(x), float64(y), float64(x), float64(y+h))
	g.AddColorStop(0, top)
	g.AddColorStop(1, bottom)
	s.dc.SetFillStyle(g)
	s.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	s.dc.Fill()
}

func (s *SoftwareCanvas) Line(x0, y0, x1, y1, width float32, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(float64(width))
	s.dc.DrawLine(float64(x0), float64(y0), float64(x1), float64(y1))
	s.dc.Stroke()
}

func (s *SoftwareCanvas) FillCircle(cx, cy, r float32, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(float64(cx), float64(cy), float64(r))
	s.dc.Fill()
}

// Text draws s with its top-left corner at (x, y); size is in pixels
func (s *SoftwareCanvas) Text(str string, x, y float32, size float64, c color.Color) {
	s.dc.SetFontFace(s.face(size))
	s.dc.SetColor(c)
	s.dc.DrawStringAnchored(str, float64(x), float64(y), 0, 1)
}

// Texture scales t into the destination rectangle. Textures from other
// backends are ignored.
func (s *SoftwareCanvas) Texture(t domain.Texture, x, y, w, h float32) {
	st, ok := t.(*SoftwareTexture)
	if !ok || st.img == nil {
		return
	}
	dst := image.Rect(int(x), int(y), int(x+w), int(y+h))
	xdraw.ApproxBiLinear.Scale(s.img, dst, st.img, st.img.Bounds(), xdraw.Over, nil)
}

func (s *SoftwareCanvas) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	// 72 DPI makes points equal pixels
	f := truetype.NewFace(s.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	s.faces[size] = f
	return f
}

// SoftwareTexture is an image kept in memory until released
type SoftwareTexture struct {
	img image.Image
}

func (t *SoftwareTexture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *SoftwareTexture) Release() {
	t.img = nil
}

// SoftwareGraphics creates in-memory textures
type SoftwareGraphics struct{}

func (SoftwareGraphics) NewTexture(img image.Image) (domain.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", domain.ErrResourceConstruction)
	}
	return &SoftwareTexture{img: img}, nil
}
