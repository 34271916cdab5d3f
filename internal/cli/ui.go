package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("36")  // 主色
	colorGreen  = lipgloss.Color("35")  // 成功 / 可建造
	colorYellow = lipgloss.Color("220") // 选区
	colorRed    = lipgloss.Color("167") // 失败 / 不可建造
	colorBrown  = lipgloss.Color("137") // 建筑
	colorDim    = lipgloss.Color("240") // 次要文本
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailure = lipgloss.NewStyle().Foreground(colorRed)

	styleFree      = lipgloss.NewStyle().Foreground(colorDim)
	styleBlocked   = lipgloss.NewStyle().Foreground(colorRed)
	styleSelected  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleStructure = lipgloss.NewStyle().Bold(true).Foreground(colorBrown)

	styleMap = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconFailure = "✗"
)

func okLine(ok bool, msg string) string {
	if ok {
		return styleSuccess.Render(iconSuccess) + " " + msg
	}
	return styleFailure.Render(iconFailure) + " " + msg
}
