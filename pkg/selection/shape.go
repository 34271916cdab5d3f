// Package selection 把指针拖拽转换为格子集合
//
// Selector 维护一次进行中的拖拽和一个已提交的选区；
// 拖拽区域在每次更新时按形状完整重算，由 Display 协作者负责呈现。
package selection

import (
	"fmt"
	"strings"
)

// Shape 拖拽区域的形状策略
type Shape int

const (
	// SingleMove 单个格子，跟随指针
	SingleMove Shape = iota
	// SingleStay 单个格子，固定在拖拽起点
	SingleStay
	// Area 起点与终点构成的完整矩形
	Area
	// Line 沿主轴吸附的一格宽直线
	Line
	// LShape 从起点出发、在靠近终点的拐角转弯的 L 形路径
	LShape
)

var shapeNames = []string{"single-move", "single-stay", "area", "line", "l-shape"}

// Shapes 所有形状，按定义顺序
func Shapes() []Shape {
	return []Shape{SingleMove, SingleStay, Area, Line, LShape}
}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Next 循环切换到下一个形状
func (s Shape) Next() Shape {
	return Shape((int(s) + 1) % len(shapeNames))
}

// ParseShape 解析形状名，接受 "l-shape"、"lshape"、"L_Shape" 等写法
func ParseShape(name string) (Shape, error) {
	normalized := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(name))
	for i, n := range shapeNames {
		if strings.ReplaceAll(n, "-", "") == normalized {
			return Shape(i), nil
		}
	}
	if normalized == "single" {
		return SingleMove, nil
	}
	return Area, fmt.Errorf("unknown selection shape %q", name)
}

func (s Shape) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(shapeNames) {
		return nil, fmt.Errorf("unknown selection shape %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
