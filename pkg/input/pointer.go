// Package input 把鼠标/触摸输入转换为网格选择操作
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/tilegrid/pkg/grid"
)

// PointerState 单帧的指针状态（世界坐标）
type PointerState struct {
	Position     grid.Vec2
	JustPressed  bool
	Pressed      bool
	JustReleased bool
}

// PointerSource 每帧提供一次指针状态
type PointerSource interface {
	Poll() PointerState
}

// EbitenPointer 基于 ebiten 的指针，同时支持鼠标左键和触摸
//
// 触摸优先：按下时跟踪第一个新触摸点，直到它释放为止。
// 触摸释放的那一帧已经拿不到位置，使用最后一次记录的位置。
type EbitenPointer struct {
	// ToWorld 屏幕坐标转世界坐标，nil 时两者相同
	ToWorld func(screenX, screenY float64) grid.Vec2
	// Button 鼠标按键，默认左键
	Button ebiten.MouseButton

	touchID   ebiten.TouchID
	touching  bool
	lastTouch grid.Vec2
}

// NewEbitenPointer 创建 ebiten 指针
func NewEbitenPointer(toWorld func(screenX, screenY float64) grid.Vec2) *EbitenPointer {
	return &EbitenPointer{
		ToWorld: toWorld,
		Button:  ebiten.MouseButtonLeft,
	}
}

// Poll 读取当前帧的输入，每帧只应调用一次
func (p *EbitenPointer) Poll() PointerState {
	if st, ok := p.pollTouch(); ok {
		return st
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		Position:     p.world(x, y),
		JustPressed:  inpututil.IsMouseButtonJustPressed(p.Button),
		Pressed:      ebiten.IsMouseButtonPressed(p.Button),
		JustReleased: inpututil.IsMouseButtonJustReleased(p.Button),
	}
}

func (p *EbitenPointer) pollTouch() (PointerState, bool) {
	if !p.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return PointerState{}, false
		}
		p.touchID = ids[0]
		p.touching = true
		x, y := ebiten.TouchPosition(p.touchID)
		p.lastTouch = p.world(x, y)
		return PointerState{Position: p.lastTouch, JustPressed: true, Pressed: true}, true
	}

	if inpututil.IsTouchJustReleased(p.touchID) {
		p.touching = false
		return PointerState{Position: p.lastTouch, JustReleased: true}, true
	}
	x, y := ebiten.TouchPosition(p.touchID)
	p.lastTouch = p.world(x, y)
	return PointerState{Position: p.lastTouch, Pressed: true}, true
}

func (p *EbitenPointer) world(x, y int) grid.Vec2 {
	if p.ToWorld == nil {
		return grid.Vec2{X: float64(x), Y: float64(y)}
	}
	return p.ToWorld(float64(x), float64(y))
}
