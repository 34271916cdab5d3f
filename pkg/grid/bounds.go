package grid

import (
	"fmt"
	"strings"
)

// OutOfBoundsPolicy 越界访问的上报方式
//
// 除 OutOfBoundsPanic 外，越界访问都只返回哨兵值（nil/false），不会中断调用方。
type OutOfBoundsPolicy int

const (
	OutOfBoundsIgnore OutOfBoundsPolicy = iota // 静默（默认）
	OutOfBoundsInfo
	OutOfBoundsWarn
	OutOfBoundsLogError
	OutOfBoundsPanic // panic(*OutOfBoundsError)
)

var policyNames = map[OutOfBoundsPolicy]string{
	OutOfBoundsIgnore:   "none",
	OutOfBoundsInfo:     "info",
	OutOfBoundsWarn:     "warning",
	OutOfBoundsLogError: "error",
	OutOfBoundsPanic:    "panic",
}

func (p OutOfBoundsPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("OutOfBoundsPolicy(%d)", int(p))
}

// ParseOutOfBoundsPolicy 解析配置中的策略名（大小写不敏感）
func ParseOutOfBoundsPolicy(s string) (OutOfBoundsPolicy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "none", "ignore":
		return OutOfBoundsIgnore, nil
	case "warn":
		return OutOfBoundsWarn, nil
	}
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return OutOfBoundsIgnore, fmt.Errorf("%w: unknown out-of-bounds policy %q", ErrInvalidConfiguration, s)
}

func (p OutOfBoundsPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *OutOfBoundsPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseOutOfBoundsPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// reportOutOfBounds 按策略上报一次越界访问
func (g *Grid) reportOutOfBounds(op string, x, y int) {
	if g.policy == OutOfBoundsIgnore {
		return
	}
	switch g.policy {
	case OutOfBoundsInfo:
		g.logger.Info("out of bounds", "op", op, "x", x, "y", y)
	case OutOfBoundsWarn:
		g.logger.Warn("out of bounds", "op", op, "x", x, "y", y)
	case OutOfBoundsLogError:
		g.logger.Error("out of bounds", "op", op, "x", x, "y", y)
	case OutOfBoundsPanic:
		panic(&OutOfBoundsError{Op: op, X: x, Y: y, Width: g.Width(), Height: g.Height()})
	}
}
