package grid

// Position 某个物体在网格中的位置：所在节点加上小数网格坐标
//
// InGrid 是网格空间坐标（不是相对节点的偏移），例如 (2.5, 1) 表示第 2、3 列之间、第 1 行。
type Position struct {
	Node   Node
	InGrid Vec2
}

// NodePosition 返回节点格子本身对应的位置
func NodePosition(n Node) Position {
	return Position{Node: n, InGrid: Vec2{X: float64(n.X()), Y: float64(n.Y())}}
}

// World 通过节点所属网格换算出世界坐标
func (p Position) World() Vec2 {
	return p.Node.Grid().Mapper().FractionalToWorld(p.InGrid)
}

// NodeCell 节点格子坐标
func (p Position) NodeCell() Cell {
	return p.Node.Cell()
}
