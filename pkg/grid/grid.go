package grid

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/decker502/tilegrid/internal/logging"
)

// NodeFactory 为每个格子创建节点，构造网格时每个 (x, y) 恰好调用一次
type NodeFactory func(g *Grid, x, y int) Node

// Grid 固定尺寸的二维节点存储
//
// Grid 独占节点槽位；节点的 Changed 通知会被汇总到网格级别的 Changed 流。
// 没有内部锁，所有调用应来自同一个逻辑所有者（通常是每帧 Update）。
type Grid struct {
	mapper Mapper
	nodes  []Node
	subs   []ListenerID // 每个槽位上对节点 Changed 的订阅
	count  int

	events Events
	policy OutOfBoundsPolicy
	logger *log.Logger
}

type options struct {
	cellSize float64
	origin   Vec2
	pivot    Vec2
	policy   OutOfBoundsPolicy
	logger   *log.Logger
	onAdded  []func(NodeEvent)
}

// Option 网格构造选项
type Option func(*options)

// WithCellSize 设置格子尺寸（默认 1）
func WithCellSize(size float64) Option {
	return func(o *options) { o.cellSize = size }
}

// WithOrigin 设置格子 (0,0) 在枢轴 (0,0) 处的世界坐标（默认原点）
func WithOrigin(origin Vec2) Option {
	return func(o *options) { o.origin = origin }
}

// WithPivot 设置格子内锚点（默认 (0.5, 0.5) 即格子中心）
func WithPivot(pivot Vec2) Option {
	return func(o *options) { o.pivot = pivot }
}

// WithOutOfBoundsPolicy 设置越界上报策略（默认 OutOfBoundsIgnore）
func WithOutOfBoundsPolicy(p OutOfBoundsPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger 设置日志器，网格会在其上加 "Grid" 前缀
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithNodeAddedListener 在填充格子之前订阅 Added，从而收到构造期间的通知
func WithNodeAddedListener(fn func(NodeEvent)) Option {
	return func(o *options) { o.onAdded = append(o.onAdded, fn) }
}

// New 创建网格并用 factory 填充每个格子
//
// 遍历顺序为 x 外层、y 内层。每个节点安装后立即触发一次 Added 通知。
//
// 参数:
//   - width, height: 列数和行数，必须 > 0
//   - factory: 格子工厂，必须为每个坐标返回一个非 nil 且坐标匹配的节点
//   - opts: 构造选项
//
// 返回:
//   - *Grid: 网格实例
//   - error: 参数非法时返回包装了 ErrInvalidConfiguration 的错误，工厂返回 nil 时返回 ErrNilNode
func New(width, height int, factory NodeFactory, opts ...Option) (*Grid, error) {
	o := options{
		cellSize: 1,
		pivot:    Vec2{X: 0.5, Y: 0.5},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: nil cell factory", ErrInvalidConfiguration)
	}

	mapper, err := NewMapper(width, height, o.cellSize, o.origin, o.pivot)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		mapper: mapper,
		nodes:  make([]Node, width*height),
		subs:   make([]ListenerID, width*height),
		policy: o.policy,
		logger: logging.Component(o.logger, "Grid"),
	}
	for _, fn := range o.onAdded {
		g.events.Added.Add(fn)
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			n := factory(g, x, y)
			if n == nil {
				return nil, fmt.Errorf("%w: cell (%d, %d)", ErrNilNode, x, y)
			}
			if n.X() != x || n.Y() != y {
				return nil, fmt.Errorf("%w: factory returned node (%d, %d) for cell (%d, %d)",
					ErrInvalidConfiguration, n.X(), n.Y(), x, y)
			}
			if n.Grid() != g {
				return nil, fmt.Errorf("%w: factory returned node (%d, %d) bound to another grid",
					ErrInvalidConfiguration, x, y)
			}
			g.install(g.index(x, y), n)
		}
	}

	g.logger.Debug("grid created", "width", width, "height", height, "cellSize", o.cellSize)
	return g, nil
}

func (g *Grid) Width() int        { return g.mapper.width }
func (g *Grid) Height() int       { return g.mapper.height }
func (g *Grid) CellSize() float64 { return g.mapper.cellSize }
func (g *Grid) Origin() Vec2      { return g.mapper.origin }
func (g *Grid) Pivot() Vec2       { return g.mapper.pivot }

// Mapper 返回当前坐标换算器（值拷贝）
func (g *Grid) Mapper() Mapper { return g.mapper }

// Events 网格级别通知，订阅者同步收到 Added/Removed/Changed
func (g *Grid) Events() *Events { return &g.events }

// Count 当前非空槽位数量
func (g *Grid) Count() int { return g.count }

// OutOfBoundsPolicy 当前越界上报策略
func (g *Grid) OutOfBoundsPolicy() OutOfBoundsPolicy { return g.policy }

// SetOutOfBoundsPolicy 修改越界上报策略
func (g *Grid) SetOutOfBoundsPolicy(p OutOfBoundsPolicy) { g.policy = p }

// SetPivot 修改枢轴，只影响格子到世界的换算
func (g *Grid) SetPivot(p Vec2) error {
	m, err := g.mapper.WithPivot(p)
	if err != nil {
		return err
	}
	g.mapper = m
	return nil
}

// InBounds 判断坐标是否位于网格内
func (g *Grid) InBounds(x, y int) bool {
	return g.mapper.InBounds(Cell{X: x, Y: y})
}

// WorldToCell 世界坐标转格子坐标，越界时按策略上报
func (g *Grid) WorldToCell(p Vec2) (Cell, bool) {
	c, ok := g.mapper.WorldToCell(p)
	if !ok {
		g.reportOutOfBounds("WorldToCell", c.X, c.Y)
	}
	return c, ok
}

// CellToWorld 格子坐标转世界坐标；越界时仍返回数学上一致的结果并按策略上报
func (g *Grid) CellToWorld(c Cell) Vec2 {
	if !g.mapper.InBounds(c) {
		g.reportOutOfBounds("CellToWorld", c.X, c.Y)
	}
	return g.mapper.CellToWorld(c)
}

// FractionalToWorld 小数网格坐标转世界坐标
func (g *Grid) FractionalToWorld(p Vec2) Vec2 {
	return g.mapper.FractionalToWorld(p)
}

// Get 按坐标取节点
//
// 返回:
//   - Node: 节点，越界或空槽位时为 nil
//   - bool: 是否找到
func (g *Grid) Get(x, y int) (Node, bool) {
	if !g.InBounds(x, y) {
		g.reportOutOfBounds("Get", x, y)
		return nil, false
	}
	n := g.nodes[g.index(x, y)]
	return n, n != nil
}

// GetAs 按坐标取节点并断言为具体类型
func GetAs[T Node](g *Grid, x, y int) (T, bool) {
	var zero T
	n, ok := g.Get(x, y)
	if !ok {
		return zero, false
	}
	t, ok := n.(T)
	return t, ok
}

// NodeAtWorld 取世界坐标所在格子的节点
func (g *Grid) NodeAtWorld(p Vec2) (Node, bool) {
	c, ok := g.WorldToCell(p)
	if !ok {
		return nil, false
	}
	return g.Get(c.X, c.Y)
}

// Set 替换槽位中的节点
//
// 旧节点先被取消订阅并触发 Removed，然后安装新节点并触发 Added。
// node 为 nil 时只清空槽位。
//
// 返回:
//   - bool: 越界、节点坐标与槽位不符或节点属于其他网格时返回 false，且不做任何修改
func (g *Grid) Set(x, y int, node Node) bool {
	if !g.InBounds(x, y) {
		g.reportOutOfBounds("Set", x, y)
		return false
	}
	if node != nil && (node.X() != x || node.Y() != y) {
		g.logger.Error("node coordinates do not match slot",
			"node", node.Cell(), "slot", Cell{X: x, Y: y})
		return false
	}
	if node != nil && node.Grid() != g {
		g.logger.Error("node belongs to another grid", "node", node.Cell())
		return false
	}

	idx := g.index(x, y)
	if g.nodes[idx] == node {
		return true
	}
	if g.nodes[idx] != nil {
		g.detach(idx)
	}
	if node != nil {
		g.install(idx, node)
	}
	return true
}

// GetRegion 返回 [x, x+w) x [y, y+h) 内的所有节点，行优先
//
// 越界部分和空槽位被静默跳过，区域与网格边界部分重叠是正常情况。
func (g *Grid) GetRegion(x, y, w, h int) []Node {
	if w <= 0 || h <= 0 {
		return nil
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, g.Width()), min(y+h, g.Height())
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	region := make([]Node, 0, (x1-x0)*(y1-y0))
	for iy := y0; iy < y1; iy++ {
		for ix := x0; ix < x1; ix++ {
			if n := g.nodes[g.index(ix, iy)]; n != nil {
				region = append(region, n)
			}
		}
	}
	return region
}

// Nodes 按给定顺序返回格子列表对应的节点，跳过越界和空槽位
func (g *Grid) Nodes(cells []Cell) []Node {
	nodes := make([]Node, 0, len(cells))
	for _, c := range cells {
		if !g.InBounds(c.X, c.Y) {
			continue
		}
		if n := g.nodes[g.index(c.X, c.Y)]; n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Each 行优先遍历所有非空节点，fn 返回 false 时停止
func (g *Grid) Each(fn func(Node) bool) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			n := g.nodes[g.index(x, y)]
			if n == nil {
				continue
			}
			if !fn(n) {
				return
			}
		}
	}
}

// ManhattanDistance 两个节点之间的曼哈顿距离
func (g *Grid) ManhattanDistance(a, b Node) int {
	return ManhattanDistance(a.Cell(), b.Cell())
}

// Teardown 移除所有节点，每个节点触发一次 Removed
//
// 再次调用时槽位已空，不会产生任何通知。
func (g *Grid) Teardown() {
	if g.count == 0 {
		return
	}
	removed := g.count
	for idx := range g.nodes {
		if g.nodes[idx] != nil {
			g.detach(idx)
		}
	}
	g.logger.Debug("grid torn down", "removed", removed)
}

func (g *Grid) index(x, y int) int {
	assertInBounds(g, x, y)
	return y*g.mapper.width + x
}

func (g *Grid) install(idx int, n Node) {
	g.nodes[idx] = n
	g.subs[idx] = n.Events().Changed.Add(func(c Cell) {
		g.events.Changed.Emit(NodeEvent{Kind: NodeChanged, Cell: c, Node: n})
	})
	g.count++
	g.events.Added.Emit(NodeEvent{Kind: NodeAdded, Cell: n.Cell(), Node: n})
}

// detach 取消订阅并清空槽位，然后依次触发节点级和网格级 Removed
func (g *Grid) detach(idx int) {
	old := g.nodes[idx]
	old.Events().Changed.Remove(g.subs[idx])
	g.nodes[idx] = nil
	g.subs[idx] = 0
	g.count--

	old.Events().Removed.Emit(old.Cell())
	g.events.Removed.Emit(NodeEvent{Kind: NodeRemoved, Cell: old.Cell(), Node: old})
}
