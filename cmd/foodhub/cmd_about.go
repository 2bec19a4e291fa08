package main

import (
	"github.com/foodhub/foodhub/internal/about"
	"github.com/spf13/cobra"
)

func newAboutCommand() *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show the introduction to the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !asHTML {
				_, err := out.Write(about.Markdown())
				return err
			}
			page, err := about.Intro()
			if err != nil {
				return err
			}
			_, err = out.Write([]byte(page.HTML))
			return err
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the introduction as HTML")
	return cmd
}
