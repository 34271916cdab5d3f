package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/tilegrid/pkg/grid"
	"github.com/decker502/tilegrid/pkg/selection"
)

// scriptedPointer 按顺序返回预设的指针状态
type scriptedPointer struct {
	frames []PointerState
	next   int
}

func (p *scriptedPointer) Poll() PointerState {
	if p.next >= len(p.frames) {
		return PointerState{}
	}
	st := p.frames[p.next]
	p.next++
	return st
}

func at(x, y float64) grid.Vec2 { return grid.Vec2{X: x, Y: y} }

func newSelector(t *testing.T) *selection.Selector {
	t.Helper()
	g, err := grid.New(5, 5, grid.NewBasicNode, grid.WithCellSize(10))
	require.NoError(t, err)
	return selection.NewSelector(g, nil, selection.DefaultOptions(), nil)
}

func TestMouseSelectorPressHoldRelease(t *testing.T) {
	sel := newSelector(t)
	pointer := &scriptedPointer{frames: []PointerState{
		{Position: at(5, 5), JustPressed: true, Pressed: true},
		{Position: at(15, 5), Pressed: true},
		{Position: at(25, 15), Pressed: true},
		{Position: at(25, 15), JustReleased: true},
	}}
	ms := NewMouseSelector(sel, pointer)

	ms.Update()
	assert.True(t, sel.IsDragging())
	ms.Update()
	ms.Update()
	area, ok := sel.CurrentDragArea()
	require.True(t, ok)
	assert.Len(t, area, 6)

	ms.Update()
	assert.False(t, sel.IsDragging())
	got, ok := sel.CurrentSelection()
	require.True(t, ok)
	assert.ElementsMatch(t, area, got)

	hover, inside := ms.Hover()
	assert.Equal(t, grid.Cell{X: 2, Y: 1}, hover)
	assert.True(t, inside)
}

func TestMouseSelectorPressEndsPreviousSelection(t *testing.T) {
	sel := newSelector(t)
	pointer := &scriptedPointer{frames: []PointerState{
		{Position: at(5, 5), JustPressed: true, Pressed: true},
		{Position: at(5, 5), JustReleased: true},
		{Position: at(45, 45), JustPressed: true, Pressed: true},
	}}
	ms := NewMouseSelector(sel, pointer)

	ms.Update()
	ms.Update()
	require.True(t, sel.HasSelection())

	ms.Update()
	assert.False(t, sel.HasSelection())
	assert.True(t, sel.IsDragging())
}

func TestMouseSelectorUsesShape(t *testing.T) {
	sel := newSelector(t)
	pointer := &scriptedPointer{frames: []PointerState{
		{Position: at(5, 5), JustPressed: true, Pressed: true},
		{Position: at(35, 15), Pressed: true},
	}}
	ms := NewMouseSelector(sel, pointer)
	ms.SetShape(selection.Line)

	ms.Update()
	ms.Update()
	area, _ := sel.CurrentDragArea()
	assert.Equal(t, []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, area)
	assert.Equal(t, selection.Line, ms.Shape())
}

func TestMouseSelectorIdleFrames(t *testing.T) {
	sel := newSelector(t)
	ms := NewMouseSelector(sel, &scriptedPointer{})

	ms.Update()
	assert.False(t, sel.IsDragging())
	assert.False(t, sel.HasSelection())

	hover, inside := ms.Hover()
	assert.Equal(t, grid.Cell{}, hover)
	assert.True(t, inside)
}

func TestEbitenPointerWorldTransform(t *testing.T) {
	p := NewEbitenPointer(func(x, y float64) grid.Vec2 { return grid.Vec2{X: x/2 + 100, Y: y / 2} })
	assert.Equal(t, at(105, 20), p.world(10, 40))

	p.ToWorld = nil
	assert.Equal(t, at(10, 40), p.world(10, 40))
}
