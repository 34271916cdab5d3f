package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/tilegrid/internal/logging"
	"github.com/decker502/tilegrid/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage grid config files",
	}
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init <path>",
		Short: "Write the default grid config (.yaml, .yml or .toml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultGridConfig()
			if err := cfg.Save(args[0]); err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("Config written", "path", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), okLine(true, "wrote "+args[0]))
			return nil
		},
	}
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective grid config",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Marshal(config.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(config.FormatYAML), "output format (yaml or toml)")
	return cmd
}
