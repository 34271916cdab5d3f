package display

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tilegrid/pkg/grid"
)

// Classifier 根据节点当前状态决定格子颜色，返回 nil 表示不绘制
type Classifier func(n grid.Node) color.Color

// TileLayer 跟随网格通知维护每个格子的可视状态
//
// 节点新增或变化时重新分类，节点移除时丢弃对应的格子。
type TileLayer struct {
	grid     *grid.Grid
	classify Classifier
	tiles    map[grid.Cell]color.Color

	// GridLines 网格线颜色，nil 表示不画网格线
	GridLines color.Color

	added, removed, changed grid.ListenerID
	refreshes               int
}

// NewTileLayer 创建格子图层并订阅网格通知，已有节点立即分类
func NewTileLayer(g *grid.Grid, classify Classifier) *TileLayer {
	l := &TileLayer{
		grid:     g,
		classify: classify,
		tiles:    make(map[grid.Cell]color.Color, g.Width()*g.Height()),
	}
	g.Each(func(n grid.Node) bool {
		l.refresh(n)
		return true
	})

	events := g.Events()
	l.added = events.Added.Add(func(e grid.NodeEvent) { l.refresh(e.Node) })
	l.changed = events.Changed.Add(func(e grid.NodeEvent) { l.refresh(e.Node) })
	l.removed = events.Removed.Add(func(e grid.NodeEvent) { delete(l.tiles, e.Cell) })
	return l
}

// Close 取消订阅
func (l *TileLayer) Close() {
	events := l.grid.Events()
	events.Added.Remove(l.added)
	events.Changed.Remove(l.changed)
	events.Removed.Remove(l.removed)
}

// Len 当前跟踪的格子数
func (l *TileLayer) Len() int { return len(l.tiles) }

// Color 格子当前颜色
func (l *TileLayer) Color(c grid.Cell) (color.Color, bool) {
	clr, ok := l.tiles[c]
	return clr, ok
}

// Refreshes 重新分类的总次数
func (l *TileLayer) Refreshes() int { return l.refreshes }

func (l *TileLayer) refresh(n grid.Node) {
	l.tiles[n.Cell()] = l.classify(n)
	l.refreshes++
}

// Draw 绘制所有格子和可选的网格线
func (l *TileLayer) Draw(screen *ebiten.Image, cam Camera) {
	m := l.grid.Mapper()
	for c, clr := range l.tiles {
		if clr == nil {
			continue
		}
		r := cam.CellRect(m, c)
		vector.FillRect(screen, r.X, r.Y, r.W, r.H, clr, false)
	}
	if l.GridLines == nil {
		return
	}
	for y := 0; y < l.grid.Height(); y++ {
		for x := 0; x < l.grid.Width(); x++ {
			r := cam.CellRect(m, grid.Cell{X: x, Y: y})
			vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, l.GridLines, false)
		}
	}
}
