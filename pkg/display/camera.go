// Package display 在 ebiten 屏幕上呈现网格、拖拽预览和选区
package display

import "github.com/decker502/tilegrid/pkg/grid"

// Camera 世界坐标与屏幕坐标之间的平移和缩放
//
// screen = (world - Offset) * Zoom，Zoom <= 0 时按 1 处理。
type Camera struct {
	Offset grid.Vec2
	Zoom   float64
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// WorldToScreen 世界坐标转屏幕坐标
func (c Camera) WorldToScreen(p grid.Vec2) (x, y float32) {
	z := c.zoom()
	return float32((p.X - c.Offset.X) * z), float32((p.Y - c.Offset.Y) * z)
}

// ScreenToWorld 屏幕坐标转世界坐标，可直接作为 input.EbitenPointer.ToWorld
func (c Camera) ScreenToWorld(x, y float64) grid.Vec2 {
	z := c.zoom()
	return grid.Vec2{X: x/z + c.Offset.X, Y: y/z + c.Offset.Y}
}

// Rect 屏幕空间矩形
type Rect struct {
	X, Y, W, H float32
}

// CellRect 格子在屏幕上的矩形
func (c Camera) CellRect(m grid.Mapper, cell grid.Cell) Rect {
	lo, hi := m.CellRect(cell)
	x0, y0 := c.WorldToScreen(lo)
	x1, y1 := c.WorldToScreen(hi)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
