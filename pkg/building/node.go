package building

import "github.com/decker502/tilegrid/pkg/grid"

// BuildableBase 可嵌入的 BuildableNode 实现
//
// 每个格子最多持有一个建筑；已有建筑时 TryPlaceStructure 返回 false。
type BuildableBase struct {
	grid.BaseNode
	buildable bool
	structure Structure
}

// NewBuildableBase 创建嵌入用的可建造节点
func NewBuildableBase(g *grid.Grid, x, y int, buildable bool) BuildableBase {
	return BuildableBase{
		BaseNode:  grid.NewBaseNode(g, x, y),
		buildable: buildable,
	}
}

// NewBuildableNode 格子工厂：所有格子都可建造
func NewBuildableNode(g *grid.Grid, x, y int) grid.Node {
	n := NewBuildableBase(g, x, y, true)
	return &n
}

// TerrainFactory 返回按地形决定可建造性的格子工厂
//
// 参数:
//   - buildable: 对每个坐标返回该格子是否可建造
func TerrainFactory(buildable func(x, y int) bool) grid.NodeFactory {
	return func(g *grid.Grid, x, y int) grid.Node {
		n := NewBuildableBase(g, x, y, buildable(x, y))
		return &n
	}
}

func (n *BuildableBase) IsBuildable() bool { return n.buildable }

// SetBuildable 修改地形可建造性并通知
func (n *BuildableBase) SetBuildable(buildable bool) {
	if n.buildable == buildable {
		return
	}
	n.buildable = buildable
	n.NotifyChanged()
}

func (n *BuildableBase) Structure() Structure { return n.structure }

func (n *BuildableBase) TryPlaceStructure(s Structure) bool {
	if s == nil || n.structure != nil {
		return false
	}
	n.structure = s
	return true
}

func (n *BuildableBase) AfterPlacingStructure(BuildableNode, *grid.Grid) {
	n.NotifyChanged()
}

func (n *BuildableBase) RemoveStructure(notify bool) bool {
	if n.structure == nil {
		return false
	}
	n.structure = nil
	if notify {
		n.NotifyChanged()
	}
	return true
}
