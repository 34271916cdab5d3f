package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/building"
	"github.com/decker502/tilegrid/pkg/grid"
)

func newPlaceCmd(a *app) *cobra.Command {
	var (
		size      string
		anchors   []string
		removals  []string
		footprint bool
	)

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place structures on the configured grid and print the result",
		Example: `  gridtool place --size 2x2 --at 0,0 --at 1,1 --at 3,0
  gridtool place --size 3x1 --at 2,2 --remove 3,2 --footprint`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h, err := parseSize(size)
			if err != nil {
				return err
			}

			logger := logging.FromContext(cmd.Context())
			g, err := a.buildGrid(logger)
			if err != nil {
				return err
			}
			defer g.Teardown()

			b := building.NewBuilder(g, logger)
			out := cmd.OutOrStdout()

			for i, s := range anchors {
				c, err := parseCell(s)
				if err != nil {
					return err
				}
				st := building.NewBasicStructure(fmt.Sprintf("structure-%d", i+1), w, h)
				ok := b.TryPlace(st, c.X, c.Y)
				fmt.Fprintln(out, okLine(ok, fmt.Sprintf("place %dx%d at %s", w, h, c)))
			}

			for _, s := range removals {
				c, err := parseCell(s)
				if err != nil {
					return err
				}
				var ok bool
				if footprint {
					ok = b.TryRemoveFootprint(c.X, c.Y)
				} else {
					ok = b.TryRemove(c.X, c.Y)
				}
				fmt.Fprintln(out, okLine(ok, fmt.Sprintf("remove at %s", c)))
			}

			fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("%d of %d cells occupied", occupied(g), g.Width()*g.Height())))
			fmt.Fprintln(out, a.renderMap(newMapRenderer(g)))
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "1x1", "structure footprint (WxH)")
	cmd.Flags().StringArrayVar(&anchors, "at", nil, "anchor cell (x,y) of a structure to place, repeatable")
	cmd.Flags().StringArrayVar(&removals, "remove", nil, "cell (x,y) to clear after placing, repeatable")
	cmd.Flags().BoolVar(&footprint, "footprint", false, "remove the whole structure instead of only the given cell")
	return cmd
}

func occupied(g *grid.Grid) int {
	n := 0
	g.Each(func(node grid.Node) bool {
		if bn, ok := node.(building.BuildableNode); ok && bn.Structure() != nil {
			n++
		}
		return true
	})
	return n
}
