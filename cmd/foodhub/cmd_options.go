package main

import (
	"github.com/spf13/cobra"
)

func newOptionsCommand(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the values each filter offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			svc, err := loadService(cmd.Context(), cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), asJSON, svc.Options(), printOptions)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of a list")
	return cmd
}
