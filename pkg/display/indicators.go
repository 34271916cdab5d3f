package display

import (
	"image/color"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/zyedidia/generic/mapset"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/grid"
)

// IndicatorStyle 指示框样式
type IndicatorStyle struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float32
}

// DefaultDragStyle 拖拽预览：半透明黄色
func DefaultDragStyle() IndicatorStyle {
	return IndicatorStyle{
		Fill:        color.RGBA{255, 255, 200, 90},
		Stroke:      color.RGBA{255, 220, 80, 255},
		StrokeWidth: 2,
	}
}

// DefaultSelectionStyle 已提交选区：半透明蓝色
func DefaultSelectionStyle() IndicatorStyle {
	return IndicatorStyle{
		Fill:        color.RGBA{80, 140, 255, 80},
		Stroke:      color.RGBA{60, 80, 120, 255},
		StrokeWidth: 1,
	}
}

// Indicator 一个格子上的指示框（世界坐标）
type Indicator struct {
	Cell     grid.Cell
	Min, Max grid.Vec2
}

// IndicatorDisplay 实现 selection.Display，为拖拽区域和选区维护指示框
//
// 拖拽更新时如果格子集合与上一次相同就跳过重建。
type IndicatorDisplay struct {
	DragStyle      IndicatorStyle
	SelectionStyle IndicatorStyle

	drag      []Indicator
	selection []Indicator
	lastDrag  mapset.Set[grid.Cell]
	rebuilds  int

	logger *log.Logger
}

// NewIndicatorDisplay 创建指示框显示器
func NewIndicatorDisplay(logger *log.Logger) *IndicatorDisplay {
	return &IndicatorDisplay{
		DragStyle:      DefaultDragStyle(),
		SelectionStyle: DefaultSelectionStyle(),
		lastDrag:       mapset.New[grid.Cell](),
		logger:         logging.Component(logger, "Indicators"),
	}
}

func (d *IndicatorDisplay) StartDragPreviews(start grid.Cell, g *grid.Grid) {
	d.UpdateDragPreviews([]grid.Cell{start}, g)
}

func (d *IndicatorDisplay) UpdateDragPreviews(area []grid.Cell, g *grid.Grid) {
	if d.sameAsLastDrag(area) {
		return
	}
	d.drag = buildIndicators(area, g.Mapper())
	d.lastDrag = mapset.New[grid.Cell]()
	for _, c := range area {
		d.lastDrag.Put(c)
	}
	d.rebuilds++
}

func (d *IndicatorDisplay) EndSelectionDrag(selection []grid.Cell, g *grid.Grid) {
	d.selection = buildIndicators(selection, g.Mapper())
	d.clearDrag()
	d.logger.Debug("selection committed", "cells", len(selection))
}

func (d *IndicatorDisplay) CancelSelectionDrag() {
	d.clearDrag()
}

func (d *IndicatorDisplay) EndCurrentSelection(ended []grid.Cell) {
	d.selection = nil
	d.logger.Debug("selection ended", "cells", len(ended))
}

// DragIndicators 当前拖拽预览（副本）
func (d *IndicatorDisplay) DragIndicators() []Indicator {
	return slices.Clone(d.drag)
}

// SelectionIndicators 当前选区指示框（副本）
func (d *IndicatorDisplay) SelectionIndicators() []Indicator {
	return slices.Clone(d.selection)
}

// Rebuilds 拖拽预览被重建的次数
func (d *IndicatorDisplay) Rebuilds() int {
	return d.rebuilds
}

// Draw 先画选区再画拖拽预览
func (d *IndicatorDisplay) Draw(screen *ebiten.Image, cam Camera) {
	drawIndicators(screen, cam, d.selection, d.SelectionStyle)
	drawIndicators(screen, cam, d.drag, d.DragStyle)
}

func (d *IndicatorDisplay) clearDrag() {
	d.drag = nil
	d.lastDrag = mapset.New[grid.Cell]()
}

func (d *IndicatorDisplay) sameAsLastDrag(area []grid.Cell) bool {
	if d.drag == nil {
		return false
	}
	distinct := mapset.New[grid.Cell]()
	for _, c := range area {
		if !d.lastDrag.Has(c) {
			return false
		}
		distinct.Put(c)
	}
	return distinct.Size() == d.lastDrag.Size()
}

func buildIndicators(cells []grid.Cell, m grid.Mapper) []Indicator {
	out := make([]Indicator, 0, len(cells))
	for _, c := range cells {
		lo, hi := m.CellRect(c)
		out = append(out, Indicator{Cell: c, Min: lo, Max: hi})
	}
	return out
}

func drawIndicators(screen *ebiten.Image, cam Camera, indicators []Indicator, style IndicatorStyle) {
	for _, ind := range indicators {
		x0, y0 := cam.WorldToScreen(ind.Min)
		x1, y1 := cam.WorldToScreen(ind.Max)
		if style.Fill != nil {
			vector.FillRect(screen, x0, y0, x1-x0, y1-y0, style.Fill, false)
		}
		if style.Stroke != nil && style.StrokeWidth > 0 {
			vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, style.StrokeWidth, style.Stroke, false)
		}
	}
}
