package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/tilegrid/pkg/grid"
)

// parseCell 解析 "x,y" 形式的格子坐标
func parseCell(s string) (grid.Cell, error) {
	x, y, err := splitPair(s, ",")
	if err != nil {
		return grid.Cell{}, err
	}
	cx, err := strconv.Atoi(x)
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	cy, err := strconv.Atoi(y)
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid cell %q: %w", s, err)
	}
	return grid.Cell{X: cx, Y: cy}, nil
}

// parseSize 解析 "WxH" 形式的建筑尺寸
func parseSize(s string) (int, int, error) {
	w, h, err := splitPair(strings.ToLower(s), "x")
	if err != nil {
		return 0, 0, err
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

func parseFloats(xs, ys string) (grid.Vec2, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return grid.Vec2{}, fmt.Errorf("invalid x %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return grid.Vec2{}, fmt.Errorf("invalid y %q: %w", ys, err)
	}
	return grid.Vec2{X: x, Y: y}, nil
}

func splitPair(s, sep string) (string, string, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return "", "", fmt.Errorf("invalid pair %q: expected two values separated by %q", s, sep)
	}
	return strings.TrimSpace(a), strings.TrimSpace(b), nil
}
