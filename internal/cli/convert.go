package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/grid"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert between world and cell coordinates",
	}
	cmd.AddCommand(newToCellCmd(a))
	cmd.AddCommand(newToWorldCmd(a))
	return cmd
}

func newToCellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "to-cell <x> <y>",
		Short: "Map a world position to the cell containing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseFloats(args[0], args[1])
			if err != nil {
				return err
			}
			m, err := a.mapper()
			if err != nil {
				return err
			}
			c, ok := m.WorldToCell(p)
			status := "in bounds"
			if !ok {
				status = "out of bounds"
				logging.FromContext(cmd.Context()).Warn("World position outside grid", "world", p, "cell", c)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okLine(ok, fmt.Sprintf("world %s -> cell %s %s", p, c, styleDim.Render(status))))
			return nil
		},
	}
}

func newToWorldCmd(a *app) *cobra.Command {
	var fractional bool
	cmd := &cobra.Command{
		Use:   "to-world <x> <y>",
		Short: "Map a cell (or fractional grid position) to its world anchor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.mapper()
			if err != nil {
				return err
			}
			if fractional {
				p, err := parseFloats(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), okLine(true, fmt.Sprintf("grid %s -> world %s", p, m.FractionalToWorld(p))))
				return nil
			}
			c, err := parseCell(args[0] + "," + args[1])
			if err != nil {
				return err
			}
			ok := m.InBounds(c)
			if !ok {
				logging.FromContext(cmd.Context()).Warn("Cell outside grid", "cell", c)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okLine(ok, fmt.Sprintf("cell %s -> world %s", c, m.CellToWorld(c))))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&fractional, "fractional", "f", false, "treat arguments as fractional grid coordinates")
	return cmd
}

func (a *app) mapper() (grid.Mapper, error) {
	return grid.NewMapper(a.cfg.Width, a.cfg.Height, a.cfg.CellSize, a.cfg.Origin, a.cfg.Pivot)
}
