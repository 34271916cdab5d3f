// Package building 在网格上放置跨越多个格子的建筑
//
// 放置是原子的：要么建筑占据整个 W×H 区域，要么网格保持调用前的状态。
package building

import "github.com/decker502/tilegrid/pkg/grid"

// Structure 可放置的物体，占据以锚点格子为左上角的 Width×Height 区域
//
// Builder 用 Structure 作为 map 的键记录放置，因此实现类型必须可比较（通常是指针）。
type Structure interface {
	Width() int
	Height() int
	// CanBePlacedOn 建筑特定的格子兼容性检查
	CanBePlacedOn(n BuildableNode) bool
	// AfterPlacing 所有格子认领成功后调用一次，早于各格子的 AfterPlacingStructure
	AfterPlacing(anchor BuildableNode, g *grid.Grid)
	// Remove 建筑被整体移除时调用
	Remove()
}

// BuildableNode 可放置建筑的格子节点
type BuildableNode interface {
	grid.Node
	// IsBuildable 由地形决定，与是否已有建筑无关
	IsBuildable() bool
	Structure() Structure
	// TryPlaceStructure 认领格子，格子可以否决（例如已被占用）
	TryPlaceStructure(s Structure) bool
	// AfterPlacingStructure 放置完成后调用，实现必须触发节点的 Changed 通知
	AfterPlacingStructure(anchor BuildableNode, g *grid.Grid)
	// RemoveStructure 清除建筑引用；notify 为 false 时不触发 Changed（用于回滚）
	RemoveStructure(notify bool) bool
}
