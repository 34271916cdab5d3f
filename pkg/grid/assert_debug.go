//go:build tilegrid_debug

package grid

import "fmt"

func assertInBounds(g *Grid, x, y int) {
	if !g.mapper.InBounds(Cell{X: x, Y: y}) {
		panic(fmt.Sprintf("grid: internal index (%d, %d) escaped bounds check", x, y))
	}
}
