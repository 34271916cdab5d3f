package selection

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/grid"
)

// Options 选择器配置
type Options struct {
	DefaultShape Shape `yaml:"defaultShape" toml:"defaultShape"`
	// AllowSelection 为 false 时 StartDrag 被拒绝
	AllowSelection bool `yaml:"allowSelection" toml:"allowSelection"`
	// ClipToGrid 为 true 时拖拽区域去掉网格外的格子（此时区域可能为空）
	ClipToGrid bool `yaml:"clipToGrid" toml:"clipToGrid"`
}

// DefaultOptions 默认配置：矩形选区、允许选择、不裁剪
func DefaultOptions() Options {
	return Options{
		DefaultShape:   Area,
		AllowSelection: true,
	}
}

// ChangeEvent 已提交选区发生变化
type ChangeEvent struct {
	Selection []grid.Cell
	// Ended 为 true 表示选区被结束（Selection 是被结束的内容）
	Ended bool
}

// Selector 拖拽选择状态机
//
// 拖拽状态（Idle/Dragging）与是否存在选区相互独立：
// 选区存在时可以开始新的拖拽，拖拽结束时并入已有选区。
type Selector struct {
	grid    *grid.Grid
	display Display
	opts    Options
	logger  *log.Logger

	dragging bool
	start    grid.Cell
	current  grid.Cell
	shape    Shape
	area     []grid.Cell

	hasSelection bool
	selection    mapset.Set[grid.Cell]

	changed grid.Listeners[ChangeEvent]
}

// NewSelector 创建选择器
//
// 参数:
//   - g: 目标网格，用于世界坐标换算和裁剪
//   - display: 呈现协作者，nil 时使用 NopDisplay
//   - opts: 配置
//   - logger: 日志器，nil 时使用默认日志器
func NewSelector(g *grid.Grid, display Display, opts Options, logger *log.Logger) *Selector {
	if display == nil {
		display = NopDisplay{}
	}
	return &Selector{
		grid:      g,
		display:   display,
		opts:      opts,
		logger:    logging.Component(logger, "Selector"),
		shape:     opts.DefaultShape,
		selection: mapset.New[grid.Cell](),
	}
}

func (s *Selector) Grid() *grid.Grid   { return s.grid }
func (s *Selector) Options() Options   { return s.opts }
func (s *Selector) IsDragging() bool   { return s.dragging }
func (s *Selector) HasSelection() bool { return s.hasSelection }

// Shape 当前拖拽使用的形状；未拖拽时为默认形状
func (s *Selector) Shape() Shape { return s.shape }

// SetDefaultShape 修改默认形状，不影响进行中的拖拽
func (s *Selector) SetDefaultShape(shape Shape) {
	s.opts.DefaultShape = shape
	if !s.dragging {
		s.shape = shape
	}
}

func (s *Selector) SetAllowSelection(allow bool) { s.opts.AllowSelection = allow }
func (s *Selector) SetClipToGrid(clip bool)      { s.opts.ClipToGrid = clip }

// Changed 选区提交或结束时的通知
func (s *Selector) Changed() *grid.Listeners[ChangeEvent] { return &s.changed }

// StartDrag 以默认形状开始拖拽
func (s *Selector) StartDrag(start grid.Cell) bool {
	return s.StartDragWithShape(start, s.opts.DefaultShape)
}

// StartDragWorld 以世界坐标开始拖拽，起点可以在网格外
func (s *Selector) StartDragWorld(p grid.Vec2) bool {
	c, _ := s.grid.Mapper().WorldToCell(p)
	return s.StartDrag(c)
}

// StartDragWithShape 开始拖拽
//
// 已在拖拽时先取消旧的拖拽（通知 Display），再以 start 开始新的拖拽。
//
// 返回:
//   - bool: AllowSelection 为 false 时返回 false
func (s *Selector) StartDragWithShape(start grid.Cell, shape Shape) bool {
	if !s.opts.AllowSelection {
		s.logger.Info("start drag ignored, selection not allowed", "cell", start)
		return false
	}
	if s.dragging {
		s.logger.Warn("starting a new drag while dragging, cancelling the previous one", "previous", s.start)
		s.CancelDrag()
	}

	s.dragging = true
	s.start = start
	s.current = start
	s.shape = shape
	s.area = s.compute(start)
	s.display.StartDragPreviews(start, s.grid)
	return true
}

// UpdateDrag 把拖拽终点移动到 c 并返回新的区域副本
//
// 未拖拽时返回空；c 与上次相同时直接返回缓存区域，不通知 Display。
func (s *Selector) UpdateDrag(c grid.Cell) []grid.Cell {
	if !s.dragging {
		return nil
	}
	if c == s.current {
		return slices.Clone(s.area)
	}

	s.current = c
	s.area = s.compute(c)
	s.display.UpdateDragPreviews(slices.Clone(s.area), s.grid)
	return slices.Clone(s.area)
}

// UpdateDragWorld 以世界坐标更新拖拽
func (s *Selector) UpdateDragWorld(p grid.Vec2) []grid.Cell {
	c, _ := s.grid.Mapper().WorldToCell(p)
	return s.UpdateDrag(c)
}

// EndDrag 结束拖拽，把区域并入选区
//
// 返回:
//   - []grid.Cell: 并入后的完整选区（行优先排序的新副本）；未拖拽时为空
func (s *Selector) EndDrag() []grid.Cell {
	if !s.dragging {
		return []grid.Cell{}
	}
	for _, c := range s.area {
		s.selection.Put(c)
	}
	s.resetDrag()
	s.hasSelection = true

	sel := s.sortedSelection()
	s.display.EndSelectionDrag(slices.Clone(sel), s.grid)
	s.changed.Emit(ChangeEvent{Selection: slices.Clone(sel)})
	return sel
}

// CancelDrag 放弃进行中的拖拽，不影响已提交的选区
//
// 返回:
//   - bool: 没有进行中的拖拽时返回 false
func (s *Selector) CancelDrag() bool {
	if !s.dragging {
		return false
	}
	s.display.CancelSelectionDrag()
	s.resetDrag()
	return true
}

// EndSelection 结束当前选区
//
// 返回:
//   - []grid.Cell: 被结束的选区
//   - bool: 没有选区时返回 false
func (s *Selector) EndSelection() ([]grid.Cell, bool) {
	if !s.hasSelection {
		return nil, false
	}
	ended := s.sortedSelection()
	s.selection = mapset.New[grid.Cell]()
	s.hasSelection = false

	s.display.EndCurrentSelection(slices.Clone(ended))
	s.changed.Emit(ChangeEvent{Selection: slices.Clone(ended), Ended: true})
	return ended, true
}

// CurrentSelection 当前选区副本
func (s *Selector) CurrentSelection() ([]grid.Cell, bool) {
	if !s.hasSelection {
		return nil, false
	}
	return s.sortedSelection(), true
}

// IsSelected 格子是否在当前选区中
func (s *Selector) IsSelected(c grid.Cell) bool {
	return s.hasSelection && s.selection.Has(c)
}

// CurrentDragArea 进行中拖拽的区域副本
func (s *Selector) CurrentDragArea() ([]grid.Cell, bool) {
	if !s.dragging {
		return nil, false
	}
	return slices.Clone(s.area), true
}

func (s *Selector) compute(end grid.Cell) []grid.Cell {
	area := ComputeArea(s.start, end, s.shape)
	if s.opts.ClipToGrid {
		area = Clip(area, s.grid.Mapper())
	}
	return area
}

func (s *Selector) resetDrag() {
	s.dragging = false
	s.start = grid.Cell{}
	s.current = grid.Cell{}
	s.shape = s.opts.DefaultShape
	s.area = nil
}

func (s *Selector) sortedSelection() []grid.Cell {
	cells := make([]grid.Cell, 0, s.selection.Size())
	s.selection.Each(func(c grid.Cell) {
		cells = append(cells, c)
	})
	slices.SortFunc(cells, CompareCells)
	return cells
}

// CompareCells 行优先比较，用于排序
func CompareCells(a, b grid.Cell) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
