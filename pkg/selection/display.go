package selection

import "github.com/decker502/tilegrid/pkg/grid"

// Display 拖拽预览与选区的呈现协作者
//
// Selector 在对应的状态转换处同步调用这些方法；传入的切片是副本，实现可以保留。
type Display interface {
	StartDragPreviews(start grid.Cell, g *grid.Grid)
	UpdateDragPreviews(area []grid.Cell, g *grid.Grid)
	EndSelectionDrag(selection []grid.Cell, g *grid.Grid)
	CancelSelectionDrag()
	EndCurrentSelection(ended []grid.Cell)
}

// NopDisplay 什么都不做的 Display
type NopDisplay struct{}

func (NopDisplay) StartDragPreviews(grid.Cell, *grid.Grid)    {}
func (NopDisplay) UpdateDragPreviews([]grid.Cell, *grid.Grid) {}
func (NopDisplay) EndSelectionDrag([]grid.Cell, *grid.Grid)   {}
func (NopDisplay) CancelSelectionDrag()                       {}
func (NopDisplay) EndCurrentSelection([]grid.Cell)            {}
