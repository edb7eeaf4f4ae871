package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Viewport is a normalized rectangle inside the window, all components in
// [0,1].
type Viewport struct {
	X float64
	Y float64
	W float64
	H float64
}

// Camera renders the fixed-resolution world into a letterboxed region of the
// window. The viewport is recomputed only when the observed resolution
// changes; everything else is a cache hit.
type Camera struct {
	targetAspectW float64
	targetAspectH float64

	baseW int
	baseH int

	screenW  int
	screenH  int
	viewport Viewport

	off *ebiten.Image
}

func NewCamera(targetAspectW, targetAspectH float64, baseW, baseH int) *Camera {
	c := &Camera{
		targetAspectW: targetAspectW,
		targetAspectH: targetAspectH,
		baseW:         baseW,
		baseH:         baseH,
	}
	c.viewport = Viewport{W: 1, H: 1}
	return c
}

// Layout returns the letterboxed viewport for the given window size. With a
// window wider than the target aspect the view is pillarboxed (full height,
// bars at the sides); taller, it is letterboxed (full width, bars top and
// bottom).
func (c *Camera) Layout(screenW, screenH int) Viewport {
	if screenW <= 0 || screenH <= 0 {
		return c.viewport
	}
	if screenW == c.screenW && screenH == c.screenH {
		return c.viewport
	}
	c.screenW = screenW
	c.screenH = screenH
	c.viewport = computeViewport(c.targetAspectW, c.targetAspectH, float64(screenW), float64(screenH))
	return c.viewport
}

func computeViewport(targetW, targetH, screenW, screenH float64) Viewport {
	target := targetW / targetH
	screen := screenW / screenH

	vp := Viewport{W: 1, H: 1}
	if screen > target {
		vp.W = target / screen
		vp.X = (1 - vp.W) / 2
	} else if screen < target {
		vp.H = screen / target
		vp.Y = (1 - vp.H) / 2
	}
	return vp
}

// Render lets the caller draw the world into the base-resolution offscreen
// image, then blits it into the letterboxed region of the screen.
func (c *Camera) Render(screen *ebiten.Image, drawWorld func(world *ebiten.Image)) {
	if c.off == nil {
		c.off = ebiten.NewImage(c.baseW, c.baseH)
	}

	c.off.Clear()
	if drawWorld != nil {
		drawWorld(c.off)
	}

	bounds := screen.Bounds()
	sw := float64(bounds.Dx())
	sh := float64(bounds.Dy())
	vp := c.Layout(bounds.Dx(), bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(vp.W*sw/float64(c.baseW), vp.H*sh/float64(c.baseH))
	op.GeoM.Translate(vp.X*sw, vp.Y*sh)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(c.off, op)
}
