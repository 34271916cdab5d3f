package grid

import "fmt"

// Node 网格中的一个格子节点
//
// 节点的坐标在创建后不可变，并且终生只属于一个网格。
// 具体的节点类型通常嵌入 BaseNode 获得这些方法。
type Node interface {
	X() int
	Y() int
	Cell() Cell
	Grid() *Grid
	Events() *NodeEvents
}

// NodeEvents 节点级别的通知
type NodeEvents struct {
	// Changed 节点状态变化（例如放置了建筑），网格会把它汇总到 Grid.Events().Changed
	Changed Listeners[Cell]
	// Removed 节点被网格移除（替换或 Teardown）
	Removed Listeners[Cell]
}

// BaseNode 可嵌入的节点实现
type BaseNode struct {
	grid   *Grid
	x, y   int
	events NodeEvents
}

// NewBaseNode 创建嵌入用的基础节点
//
// 参数:
//   - g: 所属网格（非拥有引用）
//   - x, y: 格子坐标
func NewBaseNode(g *Grid, x, y int) BaseNode {
	return BaseNode{grid: g, x: x, y: y}
}

func (n *BaseNode) X() int              { return n.x }
func (n *BaseNode) Y() int              { return n.y }
func (n *BaseNode) Cell() Cell          { return Cell{X: n.x, Y: n.y} }
func (n *BaseNode) Grid() *Grid         { return n.grid }
func (n *BaseNode) Events() *NodeEvents { return &n.events }

// NotifyChanged 触发节点的 Changed 通知
func (n *BaseNode) NotifyChanged() {
	n.events.Changed.Emit(n.Cell())
}

func (n *BaseNode) String() string {
	return fmt.Sprintf("Node(%d, %d)", n.x, n.y)
}

// NewBasicNode 最简单的格子工厂，只创建 BaseNode
func NewBasicNode(g *Grid, x, y int) Node {
	n := NewBaseNode(g, x, y)
	return &n
}
