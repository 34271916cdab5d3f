package app

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/tilegrid/pkg/building"
	"github.com/decker502/tilegrid/pkg/config"
	"github.com/decker502/tilegrid/pkg/grid"
	"github.com/decker502/tilegrid/pkg/selection"
	"github.com/decker502/tilegrid/pkg/settings"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.Settings == nil {
		cfg.Settings = settings.NewManager(nil, nil)
	}
	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func structureAt(t *testing.T, g *grid.Grid, x, y int) building.Structure {
	t.Helper()
	n, ok := grid.GetAs[building.BuildableNode](g, x, y)
	require.True(t, ok)
	return n.Structure()
}

func TestNewAppDefaults(t *testing.T) {
	a := newTestApp(t, Config{})

	assert.Equal(t, 10, a.Grid().Width())
	assert.Equal(t, 8, a.Grid().Height())
	assert.Equal(t, selection.Area, a.mouse.Shape())
	assert.NotNil(t, a.tiles.GridLines)
	assert.Equal(t, 80, a.tiles.Len())

	w, h := a.Layout(1920, 1080)
	assert.Equal(t, WindowWidth, w)
	assert.Equal(t, WindowHeight, h)
}

func TestNewAppLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.toml")
	cfg := config.DefaultGridConfig()
	cfg.Width, cfg.Height = 5, 4
	cfg.Blocked = []grid.Cell{{X: 0, Y: 0}}
	require.NoError(t, cfg.Save(path))

	a := newTestApp(t, Config{ConfigPath: path})
	assert.Equal(t, 5, a.Grid().Width())
	assert.False(t, a.PlaceAt(grid.Cell{X: 0, Y: 0}))
	assert.True(t, a.PlaceAt(grid.Cell{X: 1, Y: 0}))
}

func TestNewAppUsesConfigSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	cfg := config.DefaultGridConfig()
	cfg.Selection.DefaultShape = selection.Line
	cfg.Selection.ClipToGrid = true
	require.NoError(t, cfg.Save(path))

	a := newTestApp(t, Config{ConfigPath: path})
	assert.Equal(t, selection.Line, a.mouse.Shape())
	assert.Equal(t, selection.Line, a.Selector().Shape())
	assert.True(t, a.Selector().Options().ClipToGrid)
}

func TestNewAppStoredPreferencesOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	cfg := config.DefaultGridConfig()
	cfg.Selection.DefaultShape = selection.Line
	require.NoError(t, cfg.Save(path))

	prefs := settings.NewManager(nil, nil)
	prefs.SetSelectionShape(selection.LShape)

	a := newTestApp(t, Config{ConfigPath: path, Settings: prefs})
	assert.Equal(t, selection.LShape, a.mouse.Shape())
}

func TestNewAppBadConfig(t *testing.T) {
	_, err := NewApp(Config{ConfigPath: filepath.Join(t.TempDir(), "grid.ini"), Settings: settings.NewManager(nil, nil)})
	assert.Error(t, err)
}

func TestFitCameraCentersGrid(t *testing.T) {
	m, err := grid.NewMapper(10, 5, 1, grid.Vec2{}, grid.Vec2{X: 0.5, Y: 0.5})
	require.NoError(t, err)

	cam := fitCamera(m, 800, 600)
	assert.InDelta(t, 72, cam.Zoom, 1e-9)

	x0, y0 := cam.WorldToScreen(grid.Vec2{})
	x1, y1 := cam.WorldToScreen(grid.Vec2{X: 10, Y: 5})
	assert.InDelta(t, 800-float64(x1), float64(x0), 1e-3)
	assert.InDelta(t, 600-float64(y1), float64(y0), 1e-3)
}

func TestPlaceAndRemove(t *testing.T) {
	a := newTestApp(t, Config{})
	g := a.Grid()

	require.True(t, a.PlaceAt(grid.Cell{X: 2, Y: 2}))
	s := structureAt(t, g, 3, 3)
	require.NotNil(t, s)
	assert.Equal(t, colorStructure, mustColor(t, a, grid.Cell{X: 3, Y: 3}))

	assert.False(t, a.PlaceAt(grid.Cell{X: 3, Y: 3}))
	assert.NotEmpty(t, a.lastError)

	// 从非锚点格子移除整个建筑
	require.True(t, a.RemoveAt(grid.Cell{X: 3, Y: 2}))
	assert.Empty(t, a.lastError)
	for _, c := range []grid.Cell{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}} {
		assert.Nil(t, structureAt(t, g, c.X, c.Y), c.String())
		assert.Equal(t, colorBuildable, mustColor(t, a, c))
	}
	assert.False(t, a.RemoveAt(grid.Cell{X: 2, Y: 2}))
}

func mustColor(t *testing.T, a *App, c grid.Cell) color.Color {
	t.Helper()
	clr, ok := a.tiles.Color(c)
	require.True(t, ok)
	return clr
}

func TestCycleShapeUpdatesPreferences(t *testing.T) {
	a := newTestApp(t, Config{})

	assert.Equal(t, selection.Line, a.CycleShape())
	assert.Equal(t, selection.Line, a.mouse.Shape())
	assert.Equal(t, selection.Line, a.Selector().Shape())
	assert.Equal(t, selection.Line, a.settings.Preferences().SelectionShape)
}

func TestToggles(t *testing.T) {
	a := newTestApp(t, Config{})

	assert.False(t, a.ToggleGridLines())
	assert.Nil(t, a.tiles.GridLines)
	assert.False(t, a.settings.Preferences().ShowGridLines)
	assert.True(t, a.ToggleGridLines())

	assert.True(t, a.ToggleClipToGrid())
	assert.True(t, a.Selector().Options().ClipToGrid)
	assert.True(t, a.settings.Preferences().ClipToGrid)
}

func TestClearSelection(t *testing.T) {
	a := newTestApp(t, Config{})
	sel := a.Selector()

	require.True(t, sel.StartDrag(grid.Cell{X: 1, Y: 1}))
	sel.UpdateDrag(grid.Cell{X: 2, Y: 2})
	a.ClearSelection()
	assert.False(t, sel.IsDragging())
	assert.False(t, sel.HasSelection())

	sel.StartDrag(grid.Cell{X: 0, Y: 0})
	sel.UpdateDrag(grid.Cell{X: 1, Y: 0})
	sel.EndDrag()
	require.True(t, sel.HasSelection())
	a.ClearSelection()
	assert.False(t, sel.HasSelection())
}

func TestStatusLine(t *testing.T) {
	a := newTestApp(t, Config{})
	assert.Contains(t, a.statusLine(), "shape: area")

	a.PlaceAt(grid.Cell{X: 9, Y: 7})
	assert.Contains(t, a.statusLine(), "cannot place 2x2 at (9, 7)")
}
