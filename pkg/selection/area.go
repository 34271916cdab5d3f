package selection

import "github.com/decker502/tilegrid/pkg/grid"

// ComputeArea 根据起点、终点和形状计算拖拽区域
//
// 结果每次都完整重算，不依赖上一次的结果；顺序是确定的：
// Area 行优先，Line 和 LShape 沿路径从起点走向终点。
// 起点等于终点时任何形状都退化为 {start}，拖拽中永远不会得到空区域。
func ComputeArea(start, end grid.Cell, shape Shape) []grid.Cell {
	switch shape {
	case SingleMove:
		return []grid.Cell{end}
	case SingleStay:
		return []grid.Cell{start}
	}
	if start == end {
		return []grid.Cell{start}
	}

	switch shape {
	case Line:
		return lineArea(start, end)
	case LShape:
		return lArea(start, end)
	default:
		return rectArea(start, end)
	}
}

func rectArea(start, end grid.Cell) []grid.Cell {
	loX, hiX := minmax(start.X, end.X)
	loY, hiY := minmax(start.Y, end.Y)

	cells := make([]grid.Cell, 0, (hiX-loX+1)*(hiY-loY+1))
	for y := loY; y <= hiY; y++ {
		for x := loX; x <= hiX; x++ {
			cells = append(cells, grid.Cell{X: x, Y: y})
		}
	}
	return cells
}

// horizontal X 跨度不小于 Y 跨度时以水平方向为主轴
func horizontal(start, end grid.Cell) bool {
	return abs(end.X-start.X) >= abs(end.Y-start.Y)
}

// lineArea 短轴吸附到起点的坐标
func lineArea(start, end grid.Cell) []grid.Cell {
	if horizontal(start, end) {
		return walk(nil, start, grid.Cell{X: end.X, Y: start.Y})
	}
	return walk(nil, start, grid.Cell{X: start.X, Y: end.Y})
}

// lArea 先沿主轴走到与终点对齐的拐角，再沿短轴走到终点
func lArea(start, end grid.Cell) []grid.Cell {
	corner := grid.Cell{X: start.X, Y: end.Y}
	if horizontal(start, end) {
		corner = grid.Cell{X: end.X, Y: start.Y}
	}

	cells := walk(nil, start, corner)
	if corner == end {
		return cells
	}
	// 拐角已经包含在第一段中
	return walk(cells[:len(cells)-1], corner, end)
}

// walk 追加从 from 到 to（含两端）的轴对齐线段
func walk(cells []grid.Cell, from, to grid.Cell) []grid.Cell {
	step := grid.Cell{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	for c := from; ; c = c.Add(step) {
		cells = append(cells, c)
		if c == to {
			return cells
		}
	}
}

// Clip 去掉不在网格范围内的格子，保持原顺序
func Clip(cells []grid.Cell, m grid.Mapper) []grid.Cell {
	clipped := cells[:0:0]
	for _, c := range cells {
		if m.InBounds(c) {
			clipped = append(clipped, c)
		}
	}
	return clipped
}

func minmax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
