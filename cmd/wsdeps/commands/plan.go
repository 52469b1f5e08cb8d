package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/wsdeps/internal/adapters/config"
	"go.trai.ch/wsdeps/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the packages and keys an install would resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := config.ReadParams(cmd.Flags())
			if err != nil {
				return err
			}
			order, _ := cmd.Flags().GetBool("order")
			jsonOut, _ := cmd.Flags().GetBool("json")
			return c.app.Plan(cmd.Context(), params, app.PlanOptions{
				Order: order,
				JSON:  jsonOut,
				Out:   cmd.OutOrStdout(),
			})
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().Bool("order", false, "Print the scanned packages in dependency order")
	return cmd
}
