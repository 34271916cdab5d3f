// Package app 提供网格演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// 操作：
//   - 左键拖拽：按当前形状选择格子
//   - 右键：在指针所在格子放置 2x2 建筑
//   - Delete：移除指针所在建筑的全部格子
//   - Tab：切换选择形状
//   - G：切换网格线
//   - C：切换选区裁剪
//   - Esc：取消拖拽或清除选区
//   - F11：切换全屏
package app

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/building"
	"github.com/decker502/tilegrid/pkg/config"
	"github.com/decker502/tilegrid/pkg/display"
	"github.com/decker502/tilegrid/pkg/grid"
	"github.com/decker502/tilegrid/pkg/input"
	"github.com/decker502/tilegrid/pkg/selection"
	"github.com/decker502/tilegrid/pkg/settings"
)

// 逻辑屏幕尺寸
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// 网格占屏幕的比例，其余留白
const fitRatio = 0.9

// 右键放置的建筑尺寸
const (
	structureWidth  = 2
	structureHeight = 2
)

var (
	colorBackground = color.RGBA{R: 30, G: 32, B: 36, A: 255}
	colorBuildable  = color.RGBA{R: 86, G: 140, B: 72, A: 255}
	colorBlocked    = color.RGBA{R: 110, G: 52, B: 48, A: 255}
	colorStructure  = color.RGBA{R: 150, G: 112, B: 70, A: 255}
	colorGridLines  = color.RGBA{R: 0, G: 0, B: 0, A: 90}
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用调试日志
	Verbose bool
	// ConfigPath 网格配置文件（YAML/TOML），为空则使用默认配置
	ConfigPath string
	// Settings 偏好管理器，为 nil 时打开名为 "tilegrid" 的 gdata 存储
	Settings *settings.Manager
}

// App 演示程序，实现 ebiten.Game 接口
type App struct {
	logger *log.Logger

	grid      *grid.Grid
	builder   *building.Builder
	selector  *selection.Selector
	mouse     *input.MouseSelector
	camera    display.Camera
	tiles     *display.TileLayer
	overlay   *display.IndicatorDisplay
	settings  *settings.Manager
	placed    int
	verbose   bool
	lastError string

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化演示程序
func NewApp(cfg Config) (*App, error) {
	gridCfg := config.DefaultGridConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadGridConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("网格配置加载失败: %w", err)
		}
		gridCfg = *loaded
	}

	level := gridCfg.Level()
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger := logging.New(os.Stderr, level)
	logging.SetDefault(logger)

	g, err := gridCfg.BuildGrid(gridCfg.TerrainFactory(), logger)
	if err != nil {
		return nil, fmt.Errorf("网格创建失败: %w", err)
	}
	logger.Info("Grid ready", "width", g.Width(), "height", g.Height(), "cellSize", g.CellSize())

	prefs := cfg.Settings
	if prefs == nil {
		prefs = settings.Open("tilegrid", logger)
	}

	a := &App{
		logger:   logging.Component(logger, "App"),
		grid:     g,
		builder:  building.NewBuilder(g, logger),
		overlay:  display.NewIndicatorDisplay(logger),
		settings: prefs,
		verbose:  cfg.Verbose,
	}
	a.camera = fitCamera(g.Mapper(), WindowWidth, WindowHeight)

	// 没有已保存的偏好时沿用配置文件中的选择设置
	prefs.Seed(gridCfg.Selection)
	a.selector = selection.NewSelector(g, a.overlay, gridCfg.Selection, logger)
	prefs.Apply(a.selector)
	a.mouse = input.NewMouseSelector(a.selector, input.NewEbitenPointer(a.camera.ScreenToWorld))

	a.tiles = display.NewTileLayer(g, classifyTile)
	if prefs.Preferences().ShowGridLines {
		a.tiles.GridLines = colorGridLines
	}

	a.builder.Events().Placed.Add(func(e building.StructureEvent) {
		a.logger.Debug("Structure placed", "structure", e.Structure, "anchor", e.Anchor)
	})
	a.builder.Events().Removed.Add(func(e building.StructureEvent) {
		a.logger.Debug("Structure removed", "anchor", e.Anchor, "cells", len(e.Footprint))
	})
	a.selector.Changed().Add(func(e selection.ChangeEvent) {
		a.logger.Debug("Selection changed", "cells", len(e.Selection), "ended", e.Ended)
	})

	return a, nil
}

// fitCamera 让网格居中并按比例填满屏幕
func fitCamera(m grid.Mapper, screenW, screenH int) display.Camera {
	worldW := float64(m.Width()) * m.CellSize()
	worldH := float64(m.Height()) * m.CellSize()
	zoom := math.Min(float64(screenW)/worldW, float64(screenH)/worldH) * fitRatio

	viewW := float64(screenW) / zoom
	viewH := float64(screenH) / zoom
	return display.Camera{
		Offset: m.Origin().Sub(grid.Vec2{X: (viewW - worldW) / 2, Y: (viewH - worldH) / 2}),
		Zoom:   zoom,
	}
}

func classifyTile(n grid.Node) color.Color {
	bn, ok := n.(building.BuildableNode)
	if !ok {
		return nil
	}
	switch {
	case bn.Structure() != nil:
		return colorStructure
	case !bn.IsBuildable():
		return colorBlocked
	default:
		return colorBuildable
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.mouse.Update()
	hover, inGrid := a.mouse.Hover()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		a.CycleShape()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		a.ToggleGridLines()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.ToggleClipToGrid()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.ClearSelection()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if inGrid {
			a.RemoveAt(hover)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && inGrid {
		a.PlaceAt(hover)
	}
	return nil
}

// PlaceAt 以 c 为锚点放置一个 2x2 建筑
func (a *App) PlaceAt(c grid.Cell) bool {
	a.placed++
	s := building.NewBasicStructure(fmt.Sprintf("house-%d", a.placed), structureWidth, structureHeight)
	if !a.builder.TryPlace(s, c.X, c.Y) {
		a.lastError = fmt.Sprintf("cannot place %dx%d at %s", structureWidth, structureHeight, c)
		return false
	}
	a.lastError = ""
	return true
}

// RemoveAt 移除 c 所在建筑占据的全部格子
func (a *App) RemoveAt(c grid.Cell) bool {
	if !a.builder.TryRemoveFootprint(c.X, c.Y) {
		a.lastError = fmt.Sprintf("nothing to remove at %s", c)
		return false
	}
	a.lastError = ""
	return true
}

// CycleShape 切换到下一个选择形状并保存偏好
func (a *App) CycleShape() selection.Shape {
	next := a.mouse.Shape().Next()
	a.mouse.SetShape(next)
	a.settings.SetSelectionShape(next)
	a.savePreferences()
	return next
}

// ToggleGridLines 切换网格线并保存偏好
func (a *App) ToggleGridLines() bool {
	show := a.tiles.GridLines == nil
	if show {
		a.tiles.GridLines = colorGridLines
	} else {
		a.tiles.GridLines = nil
	}
	a.settings.SetShowGridLines(show)
	a.savePreferences()
	return show
}

// ToggleClipToGrid 切换选区裁剪并保存偏好
func (a *App) ToggleClipToGrid() bool {
	clip := !a.selector.Options().ClipToGrid
	a.selector.SetClipToGrid(clip)
	a.settings.SetClipToGrid(clip)
	a.savePreferences()
	return clip
}

// ClearSelection 拖拽中则取消拖拽，否则结束当前选区
func (a *App) ClearSelection() {
	if a.selector.CancelDrag() {
		return
	}
	a.selector.EndSelection()
}

func (a *App) savePreferences() {
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("Failed to save preferences", "err", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.tiles.Draw(screen, a.camera)
	a.overlay.Draw(screen, a.camera)
	ebitenutil.DebugPrintAt(screen, a.statusLine(), 8, 4)
}

func (a *App) statusLine() string {
	hover, ok := a.mouse.Hover()
	cell := "-"
	if ok {
		cell = hover.String()
	}
	sel, _ := a.selector.CurrentSelection()
	line := fmt.Sprintf("shape: %s  cell: %s  selected: %d  [Tab] shape [G] grid [C] clip [RMB] place [Del] remove",
		a.mouse.Shape(), cell, len(sel))
	if a.lastError != "" {
		line += "\n" + a.lastError
	}
	return line
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Grid 返回演示网格
func (a *App) Grid() *grid.Grid {
	return a.grid
}

// Selector 返回选择器
func (a *App) Selector() *selection.Selector {
	return a.selector
}

// Close 取消订阅并拆除网格
func (a *App) Close() {
	a.tiles.Close()
	a.grid.Teardown()
}

// IsVerbose 返回是否启用了调试日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
