// Package settings 持久化网格交互偏好（默认选择形状、裁剪、网格线）
//
// 只保存偏好，不保存网格状态。
package settings

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/selection"
)

// Preferences 用户偏好
type Preferences struct {
	SelectionShape selection.Shape `yaml:"selectionShape"` // 拖拽默认形状
	ClipToGrid     bool            `yaml:"clipToGrid"`     // 拖拽区域是否裁剪到网格内
	ShowGridLines  bool            `yaml:"showGridLines"`  // 是否显示网格线
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *Preferences {
	return &Preferences{
		SelectionShape: selection.Area,
		ClipToGrid:     false,
		ShowGridLines:  true,
	}
}

// 存储路径常量
const (
	preferencesObject   = "preferences"
	preferencesProperty = "selector"
)

// Manager 偏好管理器
// 负责偏好的加载、保存和内存管理
type Manager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	prefs        *Preferences
	// customized 偏好来自存储或被用户修改过；为 false 时 Seed 可以覆盖
	customized bool
	logger     *log.Logger
}

// NewManager 创建偏好管理器并尝试加载已保存的偏好
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - logger: 日志器，nil 时使用默认日志器
//
// 返回：
//   - *Manager: 偏好管理器，加载失败时使用默认偏好
func NewManager(gdataManager *gdata.Manager, logger *log.Logger) *Manager {
	m := &Manager{
		gdataManager: gdataManager,
		prefs:        DefaultPreferences(),
		logger:       logging.Component(logger, "Settings"),
	}
	if err := m.Load(); err != nil {
		// 加载失败不是致命错误
		m.logger.Warn("failed to load preferences, using defaults", "err", err)
	}
	return m
}

// Open 按应用名打开 gdata 存储并创建管理器；存储不可用时进入降级模式
func Open(appName string, logger *log.Logger) *Manager {
	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logging.Component(logger, "Settings").Warn("persistent storage unavailable", "err", err)
		gm = nil
	}
	return NewManager(gm, logger)
}

// Persistent 是否具备持久化能力
func (m *Manager) Persistent() bool {
	return m.gdataManager != nil
}

// Load 从 gdata 加载偏好
//
// 降级模式或尚未保存过时使用默认偏好。
//
// 返回：
//   - error: 读取或反序列化失败时返回错误（此时已回退到默认偏好）
func (m *Manager) Load() error {
	m.customized = false
	if m.gdataManager == nil || !m.gdataManager.ObjectPropExists(preferencesObject, preferencesProperty) {
		m.prefs = DefaultPreferences()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.prefs = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	m.prefs = loaded
	m.customized = true
	m.logger.Debug("preferences loaded")
	return nil
}

// Save 保存偏好到 gdata，降级模式下直接返回 nil
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	m.logger.Debug("preferences saved")
	return nil
}

// Preferences 当前偏好的副本
func (m *Manager) Preferences() Preferences {
	return *m.prefs
}

// SetSelectionShape 修改默认形状，需要调用 Save 持久化
func (m *Manager) SetSelectionShape(shape selection.Shape) {
	m.prefs.SelectionShape = shape
	m.customized = true
}

// SetClipToGrid 修改裁剪开关，需要调用 Save 持久化
func (m *Manager) SetClipToGrid(clip bool) {
	m.prefs.ClipToGrid = clip
	m.customized = true
}

// SetShowGridLines 修改网格线开关，需要调用 Save 持久化
func (m *Manager) SetShowGridLines(show bool) {
	m.prefs.ShowGridLines = show
	m.customized = true
}

// Customized 偏好是否来自存储或被修改过
func (m *Manager) Customized() bool {
	return m.customized
}

// Seed 用网格配置中的选择设置作为偏好的初始值
//
// 只在没有已保存偏好、也没有被修改过时生效，返回是否生效。
func (m *Manager) Seed(opts selection.Options) bool {
	if m.customized {
		return false
	}
	m.prefs.SelectionShape = opts.DefaultShape
	m.prefs.ClipToGrid = opts.ClipToGrid
	return true
}

// Apply 把偏好应用到选择器
func (m *Manager) Apply(sel *selection.Selector) {
	sel.SetDefaultShape(m.prefs.SelectionShape)
	sel.SetClipToGrid(m.prefs.ClipToGrid)
}
