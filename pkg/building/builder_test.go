package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/tilegrid/pkg/grid"
)

// vetoNode 认领阶段总是拒绝的格子，其余行为与 BuildableBase 相同
type vetoNode struct {
	BuildableBase
}

func (n *vetoNode) TryPlaceStructure(Structure) bool { return false }

// recordingStructure 记录回调顺序
type recordingStructure struct {
	*BasicStructure
	log *[]string
}

func (s *recordingStructure) AfterPlacing(anchor BuildableNode, g *grid.Grid) {
	*s.log = append(*s.log, "structure")
	s.BasicStructure.AfterPlacing(anchor, g)
}

type recordingNode struct {
	BuildableBase
	log *[]string
}

func (n *recordingNode) AfterPlacingStructure(anchor BuildableNode, g *grid.Grid) {
	*n.log = append(*n.log, "node")
	n.BuildableBase.AfterPlacingStructure(anchor, g)
}

func newTerrainGrid(t *testing.T, w, h int, blocked ...grid.Cell) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, TerrainFactory(func(x, y int) bool {
		for _, c := range blocked {
			if c.X == x && c.Y == y {
				return false
			}
		}
		return true
	}))
	require.NoError(t, err)
	return g
}

// snapshot 记录每个格子的建筑引用
func snapshot(g *grid.Grid) map[grid.Cell]Structure {
	out := map[grid.Cell]Structure{}
	g.Each(func(n grid.Node) bool {
		out[n.Cell()] = n.(BuildableNode).Structure()
		return true
	})
	return out
}

func countChanged(g *grid.Grid) *int {
	count := 0
	g.Events().Changed.Add(func(grid.NodeEvent) { count++ })
	return &count
}

func TestTryPlaceClaimsWholeFootprint(t *testing.T) {
	g := newTerrainGrid(t, 5, 5)
	b := NewBuilder(g, nil)
	changed := countChanged(g)

	var placed []StructureEvent
	b.Events().Placed.Add(func(e StructureEvent) { placed = append(placed, e) })

	s := NewBasicStructure("house", 2, 3)
	require.True(t, b.TryPlace(s, 1, 1))

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			n, _ := grid.GetAs[BuildableNode](g, x, y)
			inside := x >= 1 && x < 3 && y >= 1 && y < 4
			if inside {
				assert.Same(t, s, n.Structure(), "cell (%d, %d)", x, y)
			} else {
				assert.Nil(t, n.Structure(), "cell (%d, %d)", x, y)
			}
		}
	}

	assert.Equal(t, 6, *changed)
	anchor, ok := s.Anchor()
	assert.True(t, ok)
	assert.Equal(t, grid.Cell{X: 1, Y: 1}, anchor)

	require.Len(t, placed, 1)
	assert.Equal(t, grid.Cell{X: 1, Y: 1}, placed[0].Anchor)
	assert.Len(t, placed[0].Footprint, 6)

	recorded, ok := b.AnchorOf(s)
	assert.True(t, ok)
	assert.Equal(t, anchor, recorded)
}

func TestTryPlaceFailsWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		blocked []grid.Cell
		s       func() Structure
		x, y    int
	}{
		{"footprint leaves grid", nil, func() Structure { return NewBasicStructure("wide", 3, 1) }, 3, 0},
		{"negative anchor", nil, func() Structure { return NewBasicStructure("small", 1, 1) }, -1, 0},
		{"non-buildable cell", []grid.Cell{{X: 2, Y: 2}}, func() Structure { return NewBasicStructure("block", 2, 2) }, 1, 1},
		{"incompatible cell", nil, func() Structure {
			s := NewBasicStructure("picky", 2, 2)
			s.Allowed = func(n BuildableNode) bool { return n.X() != 1 }
			return s
		}, 0, 0},
		{"zero size", nil, func() Structure { return NewBasicStructure("flat", 0, 2) }, 0, 0},
		{"nil structure", nil, func() Structure { return nil }, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTerrainGrid(t, 4, 4, tt.blocked...)
			b := NewBuilder(g, nil)
			changed := countChanged(g)
			before := snapshot(g)

			assert.False(t, b.TryPlace(tt.s(), tt.x, tt.y))
			assert.Equal(t, before, snapshot(g))
			assert.Zero(t, *changed)
		})
	}
}

func TestTryPlaceRollsBackSilently(t *testing.T) {
	// (1, 1) 在认领阶段否决，此前已认领的格子必须被静默回滚
	g, err := grid.New(3, 3, func(g *grid.Grid, x, y int) grid.Node {
		if x == 1 && y == 1 {
			return &vetoNode{BuildableBase: NewBuildableBase(g, x, y, true)}
		}
		return NewBuildableNode(g, x, y)
	})
	require.NoError(t, err)

	b := NewBuilder(g, nil)
	changed := countChanged(g)
	placed := 0
	b.Events().Placed.Add(func(StructureEvent) { placed++ })

	s := NewBasicStructure("block", 2, 2)
	assert.False(t, b.TryPlace(s, 0, 0))

	for _, n := range g.GetRegion(0, 0, 3, 3) {
		assert.Nil(t, n.(BuildableNode).Structure(), "cell %v", n.Cell())
	}
	assert.Zero(t, *changed, "rollback must not fire changed")
	assert.Zero(t, placed)
	_, recorded := b.AnchorOf(s)
	assert.False(t, recorded)
	_, anchored := s.Anchor()
	assert.False(t, anchored)
}

func TestTryPlaceOnOccupiedCellRollsBack(t *testing.T) {
	g := newTerrainGrid(t, 4, 4)
	b := NewBuilder(g, nil)

	first := NewBasicStructure("first", 1, 1)
	require.True(t, b.TryPlace(first, 2, 2))
	before := snapshot(g)

	// 检查阶段通过（可建造性与占用无关），认领 (2, 2) 时被否决
	second := NewBasicStructure("second", 2, 2)
	assert.True(t, b.CanPlace(second, 1, 1))
	assert.False(t, b.TryPlace(second, 1, 1))
	assert.Equal(t, before, snapshot(g))
}

func TestAfterPlacingHookOrder(t *testing.T) {
	var calls []string
	g, err := grid.New(2, 2, func(g *grid.Grid, x, y int) grid.Node {
		return &recordingNode{BuildableBase: NewBuildableBase(g, x, y, true), log: &calls}
	})
	require.NoError(t, err)

	s := &recordingStructure{BasicStructure: NewBasicStructure("hook", 2, 2), log: &calls}
	require.True(t, NewBuilder(g, nil).TryPlace(s, 0, 0))

	assert.Equal(t, []string{"structure", "node", "node", "node", "node"}, calls)
}

func TestTryRemoveAnchorOnly(t *testing.T) {
	g := newTerrainGrid(t, 4, 4)
	b := NewBuilder(g, nil)
	s := NewBasicStructure("shed", 2, 1)
	require.True(t, b.TryPlace(s, 0, 0))

	changed := countChanged(g)
	var removed []StructureEvent
	b.Events().Removed.Add(func(e StructureEvent) { removed = append(removed, e) })

	assert.True(t, b.TryRemove(0, 0))
	anchorNode, _ := grid.GetAs[BuildableNode](g, 0, 0)
	other, _ := grid.GetAs[BuildableNode](g, 1, 0)
	assert.Nil(t, anchorNode.Structure())
	assert.Same(t, s, other.Structure(), "anchor-only removal leaves the rest of the footprint")
	assert.Equal(t, 1, *changed)
	require.Len(t, removed, 1)
	assert.Equal(t, []grid.Cell{{X: 0, Y: 0}}, removed[0].Footprint)

	assert.False(t, b.TryRemove(0, 0), "nothing left to remove")
	assert.False(t, b.TryRemove(9, 9), "missing node")

	// 最后一个格子释放后记录被清理
	assert.True(t, b.TryRemove(1, 0))
	_, recorded := b.AnchorOf(s)
	assert.False(t, recorded)
}

func TestTryRemoveFootprint(t *testing.T) {
	g := newTerrainGrid(t, 5, 5)
	b := NewBuilder(g, nil)

	removedCalls := 0
	s := NewBasicStructure("barn", 3, 2)
	s.OnRemove = func() { removedCalls++ }
	require.True(t, b.TryPlace(s, 1, 2))

	neighbour := NewBasicStructure("well", 1, 1)
	require.True(t, b.TryPlace(neighbour, 0, 2))

	var removed []StructureEvent
	b.Events().Removed.Add(func(e StructureEvent) { removed = append(removed, e) })

	// 从非锚点格子发起整体移除
	assert.True(t, b.TryRemoveFootprint(3, 3))
	for _, n := range g.GetRegion(1, 2, 3, 2) {
		assert.Nil(t, n.(BuildableNode).Structure(), "cell %v", n.Cell())
	}
	w, _ := grid.GetAs[BuildableNode](g, 0, 2)
	assert.Same(t, neighbour, w.Structure())

	assert.Equal(t, 1, removedCalls)
	require.Len(t, removed, 1)
	assert.Equal(t, grid.Cell{X: 1, Y: 2}, removed[0].Anchor)
	assert.ElementsMatch(t, []grid.Cell{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}}, removed[0].Footprint)

	assert.False(t, b.TryRemoveFootprint(3, 3))
	assert.False(t, b.TryRemoveFootprint(-1, 0))
}

func TestTryPlaceRejectsStructureAlreadyPlaced(t *testing.T) {
	g := newTerrainGrid(t, 6, 6)
	b := NewBuilder(g, nil)
	changed := countChanged(g)

	s := NewBasicStructure("house", 2, 2)
	require.True(t, b.TryPlace(s, 0, 0))
	before := snapshot(g)
	changedBefore := *changed

	assert.False(t, b.TryPlace(s, 3, 3))
	assert.Equal(t, before, snapshot(g))
	assert.Equal(t, changedBefore, *changed)
	anchor, ok := b.AnchorOf(s)
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, anchor)

	// 整体移除后同一个建筑可以重新放置
	require.True(t, b.TryRemoveFootprint(1, 1))
	for _, st := range snapshot(g) {
		assert.Nil(t, st)
	}
	assert.True(t, b.TryPlace(s, 3, 3))
}

func TestTryPlaceRejectsPartiallyRemovedStructure(t *testing.T) {
	g := newTerrainGrid(t, 6, 6)
	b := NewBuilder(g, nil)

	s := NewBasicStructure("house", 2, 1)
	require.True(t, b.TryPlace(s, 0, 0))
	require.True(t, b.TryRemove(0, 0))

	// (1, 0) 仍然持有建筑，记录保留
	assert.False(t, b.TryPlace(s, 3, 3))
	require.True(t, b.TryRemove(1, 0))
	assert.True(t, b.TryPlace(s, 3, 3))
}

func TestSetBuildableNotifies(t *testing.T) {
	g := newTerrainGrid(t, 2, 2)
	changed := countChanged(g)
	n, _ := grid.GetAs[*BuildableBase](g, 0, 0)

	n.SetBuildable(false)
	n.SetBuildable(false)
	assert.False(t, n.IsBuildable())
	assert.Equal(t, 1, *changed)
	assert.False(t, NewBuilder(g, nil).TryPlace(NewBasicStructure("x", 1, 1), 0, 0))
}
