package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration 网格参数非法（宽高或格子尺寸不为正，枢轴超出 [0,1]）
	ErrInvalidConfiguration = errors.New("grid: invalid configuration")
	// ErrOutOfBounds 坐标超出网格范围
	ErrOutOfBounds = errors.New("grid: coordinates out of bounds")
	// ErrNilNode 格子工厂返回了 nil
	ErrNilNode = errors.New("grid: cell factory returned nil node")
)

// OutOfBoundsError 描述一次越界访问，仅在 OutOfBoundsPanic 策略下作为 panic 值抛出
type OutOfBoundsError struct {
	Op     string // 触发越界的操作名，如 "Get"
	X, Y   int
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("grid: %s(%d, %d) out of bounds (grid is %dx%d)", e.Op, e.X, e.Y, e.Width, e.Height)
}

// Is 使 errors.Is(err, ErrOutOfBounds) 成立
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
