package input

import (
	"github.com/decker502/tilegrid/pkg/grid"
	"github.com/decker502/tilegrid/pkg/selection"
)

// MouseSelector 每帧把指针状态驱动到 Selector
//
// 按下：结束当前选区并以当前形状开始拖拽；按住：更新拖拽；释放：结束拖拽。
type MouseSelector struct {
	selector *selection.Selector
	pointer  PointerSource
	shape    selection.Shape

	hover   grid.Cell
	hoverOK bool
}

// NewMouseSelector 创建指针选择驱动，初始形状取选择器的默认形状
func NewMouseSelector(sel *selection.Selector, pointer PointerSource) *MouseSelector {
	return &MouseSelector{
		selector: sel,
		pointer:  pointer,
		shape:    sel.Options().DefaultShape,
	}
}

func (m *MouseSelector) Selector() *selection.Selector { return m.selector }
func (m *MouseSelector) Shape() selection.Shape        { return m.shape }

// SetShape 修改之后开始的拖拽所用的形状
func (m *MouseSelector) SetShape(shape selection.Shape) {
	m.shape = shape
	m.selector.SetDefaultShape(shape)
}

// Hover 最近一帧指针所在的格子，以及它是否在网格内
func (m *MouseSelector) Hover() (grid.Cell, bool) {
	return m.hover, m.hoverOK
}

// Update 每帧调用一次
func (m *MouseSelector) Update() {
	if m.selector == nil || m.pointer == nil {
		return
	}

	st := m.pointer.Poll()
	m.hover, m.hoverOK = m.selector.Grid().Mapper().WorldToCell(st.Position)

	switch {
	case st.JustPressed:
		m.selector.EndSelection()
		m.selector.StartDragWithShape(m.hover, m.shape)
	case st.Pressed:
		m.selector.UpdateDrag(m.hover)
	case st.JustReleased:
		m.selector.EndDrag()
	}
}
