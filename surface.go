package dotfield

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the render target abstraction the engine draws dots onto.
// Implementations are not required to be safe for concurrent use; the engine
// calls them only from the frame-driving goroutine.
type Surface interface {
	DrawCircle(center Vec2, radius float64, c Color)
}

// ImageSurface renders dots onto an *ebiten.Image using antialiased filled
// circles.
type ImageSurface struct {
	dst *ebiten.Image
}

// NewImageSurface wraps an ebiten image as a Surface. The image is typically
// the screen passed to an ebiten.Game's Draw method.
func NewImageSurface(dst *ebiten.Image) *ImageSurface {
	return &ImageSurface{dst: dst}
}

// DrawCircle draws a filled, antialiased circle.
func (s *ImageSurface) DrawCircle(center Vec2, radius float64, c Color) {
	vector.DrawFilledCircle(s.dst,
		float32(center.X), float32(center.Y), float32(radius),
		c.toRGBA(), true)
}

// FillRect paints a solid rectangle. Used by the engine to erase a dirty
// region before its dots repaint.
func (s *ImageSurface) FillRect(r Rect, c Color) {
	sub := s.dst.SubImage(image.Rect(
		int(r.X), int(r.Y),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)).(*ebiten.Image)
	sub.Fill(c.toRGBA())
}

// toRGBA converts a Color to a premultiplied color.RGBA for submission.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R) * a * 255),
		G: uint8(clamp01(c.G) * a * 255),
		B: uint8(clamp01(c.B) * a * 255),
		A: uint8(a * 255),
	}
}
