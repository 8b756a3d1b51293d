package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/larder/internal/app"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [packages...]",
		Short: "Unlock packages and re-resolve them to the newest satisfying versions",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("chdir")

			return c.app.Update(cmd.Context(), args, app.UpdateOptions{
				Dir: dir,
			})
		},
	}
}
