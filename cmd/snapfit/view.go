package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/snapfit/puzzle"
)

const (
	pickRadius = 0.6
	pieceSize  = 0.8
)

var (
	frameColor   = color.RGBA{200, 200, 195, 255}
	targetColor  = color.RGBA{120, 120, 120, 255}
	hoverColor   = color.RGBA{30, 30, 30, 255}
	axisColor    = color.RGBA{20, 20, 20, 255}
	snappedColor = color.RGBA{60, 170, 80, 255}
)

type rect struct {
	X, Y, W, H float32
}

func (r rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// view projects world space onto two panes: a top view (x right, z up the
// screen) and a side view (x right, y up the screen).
type view struct {
	Top, Side rect
	Scale     float32
}

func defaultView() view {
	return view{
		Top:   rect{X: 40, Y: 80, W: 580, H: 580},
		Side:  rect{X: 660, Y: 80, W: 580, H: 580},
		Scale: 45,
	}
}

func (v view) center(r rect) (float32, float32) {
	return r.X + r.W/2, r.Y + r.H/2
}

// TopToScreen maps world (x, z) into the top pane.
func (v view) TopToScreen(x, z float64) (float32, float32) {
	cx, cy := v.center(v.Top)
	return cx + float32(x)*v.Scale, cy - float32(z)*v.Scale
}

// TopToWorld inverts TopToScreen, failing outside the pane.
func (v view) TopToWorld(sx, sy float32) (x, z float64, ok bool) {
	if !v.Top.Contains(sx, sy) {
		return 0, 0, false
	}
	cx, cy := v.center(v.Top)
	return float64((sx - cx) / v.Scale), float64((cy - sy) / v.Scale), true
}

// SideToScreen maps world (x, y) into the side pane. y = 0 sits at the lower
// third of the pane.
func (v view) SideToScreen(x, y float64) (float32, float32) {
	cx, _ := v.center(v.Side)
	floor := v.Side.Y + v.Side.H*2/3
	return cx + float32(x)*v.Scale, floor - float32(y)*v.Scale
}

func (v view) DrawFrames(screen *ebiten.Image) {
	for _, r := range []rect{v.Top, v.Side} {
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, frameColor, false)
	}
	x0, floor := v.SideToScreen(-6, 0)
	x1, _ := v.SideToScreen(6, 0)
	vector.StrokeLine(screen, x0, floor, x1, floor, 1, frameColor, false)
	ebitenutil.DebugPrintAt(screen, "top (x, z)", int(v.Top.X)+6, int(v.Top.Y)+4)
	ebitenutil.DebugPrintAt(screen, "side (x, y)", int(v.Side.X)+6, int(v.Side.Y)+4)
}

// DrawPiece draws the correct pose as an outline and the live pose as a
// filled square with a tick along the piece's local x axis.
func (v view) DrawPiece(screen *ebiten.Image, st puzzle.PieceState, hovered bool) {
	fill := color.RGBA{st.Color[0], st.Color[1], st.Color[2], 255}
	size := float32(pieceSize) * v.Scale

	tx, ty := v.TopToScreen(st.Correct.Position.X(), st.Correct.Position.Z())
	vector.StrokeRect(screen, tx-size/2, ty-size/2, size, size, 1, targetColor, false)
	sx, sy := v.SideToScreen(st.Correct.Position.X(), st.Correct.Position.Y())
	vector.StrokeRect(screen, sx-size/2, sy-size/2, size, size, 1, targetColor, false)

	pos := st.Pose.Position
	tx, ty = v.TopToScreen(pos.X(), pos.Z())
	sx, sy = v.SideToScreen(pos.X(), pos.Y())
	vector.DrawFilledRect(screen, tx-size/2, ty-size/2, size, size, fill, false)
	vector.DrawFilledRect(screen, sx-size/2, sy-size/2, size, size, fill, false)

	if st.Snapped {
		vector.StrokeRect(screen, tx-size/2, ty-size/2, size, size, 3, snappedColor, false)
	}
	if hovered || st.Dragging {
		vector.StrokeRect(screen, tx-size/2-3, ty-size/2-3, size+6, size+6, 2, hoverColor, false)
	}

	axis := st.Pose.Orientation.Rotate(mgl64.Vec3{pieceSize / 2, 0, 0})
	ax, az := v.TopToScreen(pos.X()+axis.X(), pos.Z()+axis.Z())
	vector.StrokeLine(screen, tx, ty, ax, az, 2, axisColor, false)
	bx, by := v.SideToScreen(pos.X()+axis.X(), pos.Y()+axis.Y())
	vector.StrokeLine(screen, sx, sy, bx, by, 2, axisColor, false)

	ebitenutil.DebugPrintAt(screen, st.Name, int(tx-size/2), int(ty+size/2)+2)
}
