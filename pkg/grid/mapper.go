package grid

import (
	"fmt"
	"math"
)

// snapEpsilon 在取整之前把非常接近整数的商吸附到整数上
// 例如 origin=0.1, cellSize=0.3 时，格子 3 的世界坐标 (0.1+3*0.3)-0.1 除以 0.3 会得到 2.9999999999999996
const snapEpsilon = 1e-9

// Mapper 格子坐标与世界坐标之间的换算
//
// 只依赖五个参数：宽、高、格子尺寸、原点、枢轴。零值不可用，请使用 NewMapper 创建。
type Mapper struct {
	width    int
	height   int
	cellSize float64
	origin   Vec2
	pivot    Vec2
}

// NewMapper 创建坐标换算器
//
// 参数:
//   - width, height: 网格的列数和行数，必须 > 0
//   - cellSize: 每个格子的世界尺寸，必须 > 0
//   - origin: 格子 (0,0) 在枢轴 (0,0) 处的世界坐标
//   - pivot: 格子内锚点，每个分量位于 [0,1]
//
// 返回:
//   - Mapper: 换算器
//   - error: 参数非法时返回包装了 ErrInvalidConfiguration 的错误
func NewMapper(width, height int, cellSize float64, origin, pivot Vec2) (Mapper, error) {
	if width <= 0 || height <= 0 {
		return Mapper{}, fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidConfiguration, width, height)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return Mapper{}, fmt.Errorf("%w: cell size must be positive and finite, got %v", ErrInvalidConfiguration, cellSize)
	}
	if err := validatePivot(pivot); err != nil {
		return Mapper{}, err
	}
	return Mapper{
		width:    width,
		height:   height,
		cellSize: cellSize,
		origin:   origin,
		pivot:    pivot,
	}, nil
}

func validatePivot(p Vec2) error {
	if !(p.X >= 0 && p.X <= 1) || !(p.Y >= 0 && p.Y <= 1) {
		return fmt.Errorf("%w: pivot must lie in [0,1]x[0,1], got %v", ErrInvalidConfiguration, p)
	}
	return nil
}

func (m Mapper) Width() int        { return m.width }
func (m Mapper) Height() int       { return m.height }
func (m Mapper) CellSize() float64 { return m.cellSize }
func (m Mapper) Origin() Vec2      { return m.origin }
func (m Mapper) Pivot() Vec2       { return m.pivot }

// WithPivot 返回只替换了枢轴的换算器
func (m Mapper) WithPivot(p Vec2) (Mapper, error) {
	if err := validatePivot(p); err != nil {
		return m, err
	}
	m.pivot = p
	return m, nil
}

// InBounds 判断格子是否位于 [0,width)x[0,height)
func (m Mapper) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// WorldToCell 将世界坐标转换为格子坐标
//
// 枢轴不参与计算：同一个世界点无论枢轴如何设置都落在同一个格子里。
// 越界时仍然返回计算出的格子，由调用方决定截断还是丢弃。
//
// 返回:
//   - Cell: 世界点所在的格子
//   - bool: 格子是否在网格范围内
func (m Mapper) WorldToCell(p Vec2) (Cell, bool) {
	c := Cell{
		X: floorSnapped((p.X - m.origin.X) / m.cellSize),
		Y: floorSnapped((p.Y - m.origin.Y) / m.cellSize),
	}
	return c, m.InBounds(c)
}

// floorSnapped 距离整数不足 snapEpsilon 的商先吸附到该整数再取整，
// 因此格子上边界以内 1e-9 的点归入下一个格子
func floorSnapped(q float64) int {
	if r := math.Round(q); math.Abs(q-r) < snapEpsilon {
		return int(r)
	}
	return int(math.Floor(q))
}

// CellToWorld 返回格子锚点（枢轴）的世界坐标，对任意整数格子都有定义
func (m Mapper) CellToWorld(c Cell) Vec2 {
	return m.FractionalToWorld(Vec2{X: float64(c.X), Y: float64(c.Y)})
}

// FractionalToWorld 将小数网格坐标转换为世界坐标，公式与 CellToWorld 相同
func (m Mapper) FractionalToWorld(g Vec2) Vec2 {
	return Vec2{
		X: m.origin.X + (g.X+m.pivot.X)*m.cellSize,
		Y: m.origin.Y + (g.Y+m.pivot.Y)*m.cellSize,
	}
}

// WorldDistance 把以格子为单位的距离换算为世界距离
func (m Mapper) WorldDistance(cells float64) float64 {
	return cells * m.cellSize
}

// CellRect 返回格子在世界空间中的左上角和右下角
func (m Mapper) CellRect(c Cell) (min, max Vec2) {
	min = Vec2{
		X: m.origin.X + float64(c.X)*m.cellSize,
		Y: m.origin.Y + float64(c.Y)*m.cellSize,
	}
	max = Vec2{X: min.X + m.cellSize, Y: min.Y + m.cellSize}
	return min, max
}
