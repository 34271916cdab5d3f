package building

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/decker502/tilegrid/pkg/grid"
)

// BasicStructure 通用矩形建筑
type BasicStructure struct {
	ID   uuid.UUID
	Name string
	W, H int

	// Allowed 可选的格子兼容性检查，nil 表示任何可建造格子都可以
	Allowed func(BuildableNode) bool
	// OnRemove 可选的移除回调
	OnRemove func()

	anchor grid.Cell
	placed bool
}

// NewBasicStructure 创建一个带随机 ID 的矩形建筑
func NewBasicStructure(name string, w, h int) *BasicStructure {
	return &BasicStructure{
		ID:   uuid.New(),
		Name: name,
		W:    w,
		H:    h,
	}
}

func (s *BasicStructure) Width() int  { return s.W }
func (s *BasicStructure) Height() int { return s.H }

func (s *BasicStructure) CanBePlacedOn(n BuildableNode) bool {
	if s.Allowed == nil {
		return true
	}
	return s.Allowed(n)
}

func (s *BasicStructure) AfterPlacing(anchor BuildableNode, _ *grid.Grid) {
	s.anchor = anchor.Cell()
	s.placed = true
}

func (s *BasicStructure) Remove() {
	s.placed = false
	if s.OnRemove != nil {
		s.OnRemove()
	}
}

// Anchor 放置时的锚点格子；未放置时返回 false
func (s *BasicStructure) Anchor() (grid.Cell, bool) {
	return s.anchor, s.placed
}

func (s *BasicStructure) String() string {
	return fmt.Sprintf("%s[%dx%d %s]", s.Name, s.W, s.H, s.ID.String()[:8])
}
