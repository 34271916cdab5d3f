package units

import (
	"testing"

	"github.com/decker502/tilegrid/pkg/grid"
)

func newWalkGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(3, 3, func(g *grid.Grid, x, y int) grid.Node {
		n := NewWalkableBase(g, x, y, !(x == 1 && y == 1), float64(1+x))
		return &n
	})
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	return g
}

func node(t *testing.T, g *grid.Grid, x, y int) WalkableNode {
	t.Helper()
	n, ok := grid.GetAs[WalkableNode](g, x, y)
	if !ok {
		t.Fatalf("no walkable node at (%d, %d)", x, y)
	}
	return n
}

func TestSimpleUnitMoves(t *testing.T) {
	g := newWalkGrid(t)
	start := node(t, g, 0, 0)
	u := NewSimpleUnit("scout", start)

	if start.Unit() != u {
		t.Fatalf("start node unit = %v, want scout", start.Unit())
	}

	target := node(t, g, 2, 0)
	if !u.TrySetNode(target) {
		t.Fatalf("TrySetNode(2, 0) = false, want true")
	}
	if u.CurrentNode() != target {
		t.Errorf("CurrentNode() = %v, want (2, 0)", u.CurrentNode())
	}
	if start.Unit() != nil {
		t.Errorf("start node still occupied by %v", start.Unit())
	}
	if target.Unit() != u {
		t.Errorf("target node unit = %v, want scout", target.Unit())
	}
}

func TestSimpleUnitBlocked(t *testing.T) {
	g := newWalkGrid(t)
	a := NewSimpleUnit("a", node(t, g, 0, 0))
	b := NewSimpleUnit("b", node(t, g, 2, 2))

	tests := []struct {
		name   string
		target WalkableNode
	}{
		{"nil target", nil},
		{"terrain blocked", node(t, g, 1, 1)},
		{"occupied by other unit", node(t, g, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if a.TrySetNode(tt.target) {
				t.Errorf("TrySetNode() = true, want false")
			}
			if a.CurrentNode() != node(t, g, 0, 0) {
				t.Errorf("unit moved to %v", a.CurrentNode())
			}
		})
	}
	if b.CurrentNode().Cell() != (grid.Cell{X: 2, Y: 2}) {
		t.Errorf("b moved to %v", b.CurrentNode().Cell())
	}
}

func TestStartOnOccupiedNode(t *testing.T) {
	g := newWalkGrid(t)
	NewSimpleUnit("first", node(t, g, 0, 1))
	second := NewSimpleUnit("second", node(t, g, 0, 1))

	if second.CurrentNode() != nil {
		t.Errorf("second unit placed on occupied node")
	}
}

func TestOccupancyNotifiesGrid(t *testing.T) {
	g := newWalkGrid(t)
	var changed []grid.Cell
	g.Events().Changed.Add(func(e grid.NodeEvent) { changed = append(changed, e.Cell) })

	u := NewSimpleUnit("u", node(t, g, 0, 0))
	u.TrySetNode(node(t, g, 0, 1))

	// 起始占用、进入目标、离开起点
	want := []grid.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	if len(changed) != len(want) {
		t.Fatalf("changed = %v, want %v", changed, want)
	}
	for i := range want {
		if changed[i] != want[i] {
			t.Errorf("changed[%d] = %v, want %v", i, changed[i], want[i])
		}
	}
}

func TestMovementCost(t *testing.T) {
	g := newWalkGrid(t)
	if got := node(t, g, 2, 0).MovementCost(nil); got != 3 {
		t.Errorf("MovementCost(2, 0) = %v, want 3", got)
	}
}
