package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/building"
	"github.com/decker502/tilegrid/pkg/grid"
	"github.com/decker502/tilegrid/pkg/selection"
)

// GridConfig 网格配置
// 可以从 YAML 或 TOML 文件加载，未出现的字段保留默认值
type GridConfig struct {
	Width       int                    `yaml:"width" toml:"width"`             // 列数
	Height      int                    `yaml:"height" toml:"height"`           // 行数
	CellSize    float64                `yaml:"cellSize" toml:"cellSize"`       // 每格世界尺寸
	Origin      grid.Vec2              `yaml:"origin" toml:"origin"`           // 格子 (0,0) 左上角的世界坐标
	Pivot       grid.Vec2              `yaml:"pivot" toml:"pivot"`             // 格子内锚点，[0,1]
	OutOfBounds grid.OutOfBoundsPolicy `yaml:"outOfBounds" toml:"outOfBounds"` // 越界上报策略
	LogLevel    string                 `yaml:"logLevel" toml:"logLevel"`       // 日志级别

	// Blocked 不可建造的格子
	Blocked []grid.Cell `yaml:"blocked,omitempty" toml:"blocked,omitempty"`

	Selection selection.Options `yaml:"selection" toml:"selection"`
}

// DefaultGridConfig 返回默认配置：10x8，格子尺寸 1，枢轴在格子中心
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Width:       10,
		Height:      8,
		CellSize:    1,
		Pivot:       grid.Vec2{X: 0.5, Y: 0.5},
		OutOfBounds: grid.OutOfBoundsIgnore,
		LogLevel:    "info",
		Selection:   selection.DefaultOptions(),
	}
}

// Format 配置文件格式
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath 根据扩展名判断格式
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// LoadGridConfig 从文件加载网格配置并校验
//
// 参数:
//   - path: 配置文件路径，扩展名决定格式
//
// 返回:
//   - *GridConfig: 合并了默认值的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGridConfig(path string) (*GridConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid config file %s: %w", path, err)
	}
	cfg, err := ParseGridConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseGridConfig 解析配置内容并校验
func ParseGridConfig(data []byte, format Format) (*GridConfig, error) {
	cfg := DefaultGridConfig()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse grid config YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse grid config TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal 按格式序列化配置
func (c *GridConfig) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("failed to encode grid config TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

// Save 按扩展名写入配置文件
func (c *GridConfig) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write grid config file %s: %w", path, err)
	}
	return nil
}

// Validate 校验配置，错误包装 grid.ErrInvalidConfiguration
func (c *GridConfig) Validate() error {
	if _, err := grid.NewMapper(c.Width, c.Height, c.CellSize, c.Origin, c.Pivot); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", grid.ErrInvalidConfiguration, err)
	}
	if s := c.Selection.DefaultShape; s < selection.SingleMove || s > selection.LShape {
		return fmt.Errorf("%w: unknown selection shape %d", grid.ErrInvalidConfiguration, int(s))
	}
	for _, b := range c.Blocked {
		if b.X < 0 || b.X >= c.Width || b.Y < 0 || b.Y >= c.Height {
			return fmt.Errorf("%w: blocked cell %v outside %dx%d grid", grid.ErrInvalidConfiguration, b, c.Width, c.Height)
		}
	}
	return nil
}

// Level 解析后的日志级别，非法时返回 info
func (c *GridConfig) Level() log.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GridOptions 转换为 grid.New 的选项
func (c *GridConfig) GridOptions(logger *log.Logger) []grid.Option {
	return []grid.Option{
		grid.WithCellSize(c.CellSize),
		grid.WithOrigin(c.Origin),
		grid.WithPivot(c.Pivot),
		grid.WithOutOfBoundsPolicy(c.OutOfBounds),
		grid.WithLogger(logger),
	}
}

// BuildGrid 用给定格子工厂构造网格
func (c *GridConfig) BuildGrid(factory grid.NodeFactory, logger *log.Logger, extra ...grid.Option) (*grid.Grid, error) {
	opts := append(c.GridOptions(logger), extra...)
	return grid.New(c.Width, c.Height, factory, opts...)
}

// TerrainFactory Blocked 中的格子不可建造，其余可建造
func (c *GridConfig) TerrainFactory() grid.NodeFactory {
	blocked := mapset.New[grid.Cell]()
	for _, b := range c.Blocked {
		blocked.Put(b)
	}
	return building.TerrainFactory(func(x, y int) bool {
		return !blocked.Has(grid.Cell{X: x, Y: y})
	})
}
