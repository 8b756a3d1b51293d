package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/larder/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the dependencies declared in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("chdir")

			return c.app.Install(cmd.Context(), app.InstallOptions{
				Dir: dir,
			})
		},
	}
}
