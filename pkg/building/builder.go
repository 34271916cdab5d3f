package building

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/grid"
)

// StructureEvent 建筑放置/移除通知
type StructureEvent struct {
	Structure Structure
	Anchor    grid.Cell
	// Footprint 本次操作实际涉及的格子
	Footprint []grid.Cell
}

// Events 建筑级别通知
type Events struct {
	Placed  grid.Listeners[StructureEvent]
	Removed grid.Listeners[StructureEvent]
}

// Builder 在网格上原子地放置和移除建筑
type Builder struct {
	grid   *grid.Grid
	events Events
	// placements 由本 Builder 放置且尚未完全释放的建筑及其锚点
	placements map[Structure]grid.Cell
	logger     *log.Logger
}

// NewBuilder 创建建筑放置器
//
// 参数:
//   - g: 目标网格，格子必须实现 BuildableNode
//   - logger: 日志器，nil 时使用默认日志器
func NewBuilder(g *grid.Grid, logger *log.Logger) *Builder {
	return &Builder{
		grid:       g,
		placements: make(map[Structure]grid.Cell),
		logger:     logging.Component(logger, "Builder"),
	}
}

func (b *Builder) Grid() *grid.Grid { return b.grid }

// Events 放置/移除通知
func (b *Builder) Events() *Events { return &b.events }

// AnchorOf 返回由本 Builder 放置的建筑的锚点
func (b *Builder) AnchorOf(s Structure) (grid.Cell, bool) {
	anchor, ok := b.placements[s]
	return anchor, ok
}

// CanPlace 只做检查不做修改：区域完整、每个格子可建造且与建筑兼容
//
// 格子认领阶段仍然可能被节点否决，因此 CanPlace 为 true 并不保证 TryPlace 成功。
func (b *Builder) CanPlace(s Structure, x, y int) bool {
	_, ok := b.footprint(s, x, y)
	return ok
}

// footprint 执行放置的检查阶段，返回行优先的格子节点
func (b *Builder) footprint(s Structure, x, y int) ([]BuildableNode, bool) {
	if s == nil || s.Width() < 1 || s.Height() < 1 {
		return nil, false
	}

	region := b.grid.GetRegion(x, y, s.Width(), s.Height())
	if len(region) < s.Width()*s.Height() {
		return nil, false
	}

	nodes := make([]BuildableNode, 0, len(region))
	for _, n := range region {
		bn, ok := n.(BuildableNode)
		if !ok || !bn.IsBuildable() || !s.CanBePlacedOn(bn) {
			return nil, false
		}
		nodes = append(nodes, bn)
	}
	return nodes, true
}

// TryPlace 尝试把建筑放置在以 (x, y) 为锚点的区域
//
// 流程:
//  1. 检查建筑尚未被放置、区域完整、可建造、兼容，任何一项失败直接返回 false，不做修改
//  2. 逐个认领格子；任何一个被否决时，已认领的格子静默回滚（不触发 Changed）
//  3. 全部认领成功后先调用建筑的 AfterPlacing，再调用每个格子的 AfterPlacingStructure
//
// 返回:
//   - bool: 只有整个区域都被认领且所有回调都已执行时为 true
func (b *Builder) TryPlace(s Structure, x, y int) bool {
	if anchor, placed := b.placements[s]; placed {
		b.logger.Warn("structure already placed", "structure", s, "anchor", anchor)
		return false
	}
	nodes, ok := b.footprint(s, x, y)
	if !ok {
		b.logger.Debug("placement rejected", "anchor", grid.Cell{X: x, Y: y})
		return false
	}

	for i, n := range nodes {
		if n.TryPlaceStructure(s) {
			continue
		}
		for _, claimed := range nodes[:i] {
			claimed.RemoveStructure(false)
		}
		b.logger.Debug("placement vetoed, rolled back", "cell", n.Cell(), "claimed", i)
		return false
	}

	anchor := nodes[0]
	s.AfterPlacing(anchor, b.grid)
	for _, n := range nodes {
		n.AfterPlacingStructure(anchor, b.grid)
	}

	b.placements[s] = anchor.Cell()
	b.events.Placed.Emit(StructureEvent{
		Structure: s,
		Anchor:    anchor.Cell(),
		Footprint: cellsOf(nodes),
	})
	return true
}

// TryRemove 只移除 (x, y) 格子上的建筑引用，并触发 Changed
//
// 多格子建筑的其余格子由节点/建筑自行处理；需要整体移除时使用 TryRemoveFootprint。
//
// 返回:
//   - bool: 格子不存在时为 false，否则为节点 RemoveStructure 的结果
func (b *Builder) TryRemove(x, y int) bool {
	n, ok := grid.GetAs[BuildableNode](b.grid, x, y)
	if !ok {
		return false
	}
	s := n.Structure()
	if !n.RemoveStructure(true) {
		return false
	}

	anchor := grid.Cell{X: x, Y: y}
	if a, recorded := b.placements[s]; recorded {
		anchor = a
		if !b.holdsAny(s, a) {
			delete(b.placements, s)
		}
	}
	b.events.Removed.Emit(StructureEvent{
		Structure: s,
		Anchor:    anchor,
		Footprint: []grid.Cell{{X: x, Y: y}},
	})
	return true
}

// TryRemoveFootprint 移除 (x, y) 所在建筑占据的全部格子，并调用一次 Structure.Remove
//
// 建筑必须由本 Builder 放置；否则退化为 TryRemove。
func (b *Builder) TryRemoveFootprint(x, y int) bool {
	n, ok := grid.GetAs[BuildableNode](b.grid, x, y)
	if !ok || n.Structure() == nil {
		return false
	}
	s := n.Structure()
	anchor, recorded := b.placements[s]
	if !recorded {
		return b.TryRemove(x, y)
	}

	var cleared []grid.Cell
	for _, node := range b.grid.GetRegion(anchor.X, anchor.Y, s.Width(), s.Height()) {
		bn, ok := node.(BuildableNode)
		if !ok || bn.Structure() != s {
			continue
		}
		if bn.RemoveStructure(true) {
			cleared = append(cleared, bn.Cell())
		}
	}

	delete(b.placements, s)
	s.Remove()
	b.events.Removed.Emit(StructureEvent{Structure: s, Anchor: anchor, Footprint: cleared})
	return len(cleared) > 0
}

// holdsAny 判断锚点区域内是否仍有格子持有该建筑
func (b *Builder) holdsAny(s Structure, anchor grid.Cell) bool {
	for _, node := range b.grid.GetRegion(anchor.X, anchor.Y, s.Width(), s.Height()) {
		if bn, ok := node.(BuildableNode); ok && bn.Structure() == s {
			return true
		}
	}
	return false
}

func cellsOf(nodes []BuildableNode) []grid.Cell {
	cells := make([]grid.Cell, len(nodes))
	for i, n := range nodes {
		cells[i] = n.Cell()
	}
	return cells
}
