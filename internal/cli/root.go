// Package cli 实现 gridtool 命令行工具
//
// gridtool 在不启动图形界面的情况下检查网格配置：坐标换算、拖拽选区预览和建筑放置。
// 所有命令都支持 --config 指定 YAML/TOML 网格配置，--verbose 打开调试日志。
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/config"
	"github.com/decker502/tilegrid/pkg/grid"
)

// app 命令共享的运行时状态，在 PersistentPreRunE 中填充
type app struct {
	configPath string
	verbose    bool
	plain      bool

	cfg *config.GridConfig
}

// Execute 运行 gridtool 根命令
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd 构建根命令及全部子命令
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "gridtool",
		Short:        "Inspect tile grids: coordinate conversion, drag selections, structure placement",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "grid config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "print maps without colors or borders")

	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newSelectCmd(a))
	root.AddCommand(newPlaceCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultGridConfig()
	if a.configPath != "" {
		loaded, err := config.LoadGridConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	a.cfg = &cfg

	level := cfg.Level()
	if a.verbose {
		level = log.DebugLevel
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))

	logger.Debug("Config loaded", "path", a.configPath, "width", cfg.Width, "height", cfg.Height, "cellSize", cfg.CellSize)
	return nil
}

// buildGrid 按配置创建带地形的网格
func (a *app) buildGrid(logger *log.Logger) (*grid.Grid, error) {
	g, err := a.cfg.BuildGrid(a.cfg.TerrainFactory(), logger)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	return g, nil
}

func (a *app) renderMap(r *mapRenderer) string {
	if a.plain {
		return r.Plain()
	}
	return r.Render()
}

