package main

import (
	"github.com/foodhub/foodhub/internal/wizard"
	"github.com/spf13/cobra"
)

func newExploreCommand(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Pick filters interactively and print the dashboard",
		Long: `Pick filters interactively and print the dashboard.

Each filter is a searchable multi-select built from the values in the
dataset. Leave a filter empty to place no constraint on it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			svc, err := loadService(cmd.Context(), cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}

			req, err := wizard.RunExploreWizard(cmd.InOrStdin(), cmd.ErrOrStderr(), svc.Options(), svc.DefaultTopN())
			if err != nil {
				return err
			}

			d, err := svc.Build(cmd.Context(), *req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), asJSON, d, printDashboard)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of tables")
	return cmd
}
