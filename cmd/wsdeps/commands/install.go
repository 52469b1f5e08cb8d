package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wsdeps/internal/adapters/config"
	"go.trai.ch/wsdeps/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the system dependencies of the workspace",
		Long: `Install initializes the rosdep database when needed, refreshes its index,
scans the workspace (or the packages up to --packages-up-to) and resolves
every dependency key in a single rosdep invocation. Transient files are
removed afterwards whether or not the install succeeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := config.ReadParams(cmd.Flags())
			if err != nil {
				return err
			}
			reportPath, _ := cmd.Flags().GetString("report")
			return c.app.Install(cmd.Context(), params, app.InstallOptions{Report: reportPath})
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().String("report", "", "Write a JSON run report to this file (- for stdout)")
	return cmd
}
