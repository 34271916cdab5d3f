package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/tilegrid/pkg/building"
	"github.com/decker502/tilegrid/pkg/grid"
)

// 地图符号
const (
	glyphFree     = '.'
	glyphBlocked  = '#'
	glyphSelected = '*'
	glyphEmpty    = ' '
)

// mapRenderer 把网格渲染成字符地图
type mapRenderer struct {
	grid      *grid.Grid
	selected  map[grid.Cell]bool
	structure map[building.Structure]rune
}

func newMapRenderer(g *grid.Grid) *mapRenderer {
	return &mapRenderer{
		grid:      g,
		selected:  map[grid.Cell]bool{},
		structure: map[building.Structure]rune{},
	}
}

func (r *mapRenderer) markSelected(cells []grid.Cell) {
	for _, c := range cells {
		r.selected[c] = true
	}
}

// glyphFor 建筑按首次出现顺序分配 A、B、C...
func (r *mapRenderer) glyphFor(s building.Structure) rune {
	if g, ok := r.structure[s]; ok {
		return g
	}
	g := rune('A' + len(r.structure)%26)
	r.structure[s] = g
	return g
}

func (r *mapRenderer) cell(x, y int) (rune, lipgloss.Style) {
	c := grid.Cell{X: x, Y: y}
	if r.selected[c] {
		return glyphSelected, styleSelected
	}
	n, ok := r.grid.Get(x, y)
	if !ok {
		return glyphEmpty, styleFree
	}
	if bn, ok := n.(building.BuildableNode); ok {
		if s := bn.Structure(); s != nil {
			return r.glyphFor(s), styleStructure
		}
		if !bn.IsBuildable() {
			return glyphBlocked, styleBlocked
		}
	}
	return glyphFree, styleFree
}

// Plain 不带样式的地图，每行一个网格行
func (r *mapRenderer) Plain() string {
	var b strings.Builder
	for y := 0; y < r.grid.Height(); y++ {
		for x := 0; x < r.grid.Width(); x++ {
			g, _ := r.cell(x, y)
			b.WriteRune(g)
		}
		if y < r.grid.Height()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Render 带样式和边框的地图
func (r *mapRenderer) Render() string {
	rows := make([]string, 0, r.grid.Height())
	for y := 0; y < r.grid.Height(); y++ {
		var b strings.Builder
		for x := 0; x < r.grid.Width(); x++ {
			g, style := r.cell(x, y)
			b.WriteString(style.Render(string(g)))
		}
		rows = append(rows, b.String())
	}
	return styleMap.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
