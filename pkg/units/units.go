// Package units 网格单位的占用约定
//
// 只描述单位与格子之间的占用关系，不包含寻路算法。
package units

import "github.com/decker502/tilegrid/pkg/grid"

// WalkableNode 可被单位占用的格子
type WalkableNode interface {
	grid.Node
	Unit() Unit
	IsWalkable(u Unit) bool
	MovementCost(u Unit) float64
	// TrySetUnit 设置占用的单位；格子已被其他单位占用时返回 false，u 为 nil 时总是成功
	TrySetUnit(u Unit) bool
}

// Unit 站在某个格子上的单位
type Unit interface {
	CurrentNode() WalkableNode
	CanSetNode(target WalkableNode) bool
	TrySetNode(target WalkableNode) bool
}

// WalkableBase 可嵌入的 WalkableNode 实现
type WalkableBase struct {
	grid.BaseNode
	walkable bool
	cost     float64
	unit     Unit
}

// NewWalkableBase 创建嵌入用的可行走节点
//
// 参数:
//   - walkable: 地形是否可通行
//   - cost: 进入该格子的移动代价
func NewWalkableBase(g *grid.Grid, x, y int, walkable bool, cost float64) WalkableBase {
	return WalkableBase{
		BaseNode: grid.NewBaseNode(g, x, y),
		walkable: walkable,
		cost:     cost,
	}
}

// NewWalkableNode 格子工厂：全部可通行，代价为 1
func NewWalkableNode(g *grid.Grid, x, y int) grid.Node {
	n := NewWalkableBase(g, x, y, true, 1)
	return &n
}

func (n *WalkableBase) Unit() Unit { return n.unit }

// IsWalkable 地形可通行且未被其他单位占用
func (n *WalkableBase) IsWalkable(u Unit) bool {
	return n.walkable && (n.unit == nil || n.unit == u)
}

func (n *WalkableBase) MovementCost(Unit) float64 { return n.cost }

func (n *WalkableBase) TrySetUnit(u Unit) bool {
	if u != nil && n.unit != nil && n.unit != u {
		return false
	}
	if n.unit == u {
		return true
	}
	n.unit = u
	n.NotifyChanged()
	return true
}

// SetWalkable 修改地形可通行性
func (n *WalkableBase) SetWalkable(walkable bool) {
	if n.walkable == walkable {
		return
	}
	n.walkable = walkable
	n.NotifyChanged()
}

// SimpleUnit 只占用一个格子的单位
type SimpleUnit struct {
	Name    string
	current WalkableNode
}

// NewSimpleUnit 创建单位并尝试放到起始格子上，start 可以为 nil
func NewSimpleUnit(name string, start WalkableNode) *SimpleUnit {
	u := &SimpleUnit{Name: name}
	if start != nil && start.TrySetUnit(u) {
		u.current = start
	}
	return u
}

func (u *SimpleUnit) CurrentNode() WalkableNode { return u.current }

func (u *SimpleUnit) CanSetNode(target WalkableNode) bool {
	return target != nil && target.IsWalkable(u)
}

// TrySetNode 移动到目标格子；失败时保持在原格子
func (u *SimpleUnit) TrySetNode(target WalkableNode) bool {
	if !u.CanSetNode(target) {
		return false
	}
	if !target.TrySetUnit(u) {
		return false
	}
	if u.current != nil && u.current != target {
		u.current.TrySetUnit(nil)
	}
	u.current = target
	return true
}
